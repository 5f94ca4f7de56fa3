package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/text/language"

	"folio/internal/domain"
	"folio/internal/httputil"
)

// handleError converts domain errors to HTTP responses. Server-side
// failures are logged with the request; the client only sees a generic
// detail.
func handleError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var (
		httpErr  domain.HTTPError
		tooLarge *http.MaxBytesError
	)

	switch {
	case errors.As(err, &tooLarge):
		httputil.RespondError(w, http.StatusRequestEntityTooLarge, "request body too large")
	case errors.As(err, &httpErr):
		status := httpErr.StatusCode()
		if status >= http.StatusInternalServerError {
			respondServerError(w, r, logger, status, err)
			return
		}
		var extras map[string]any
		if p, ok := httpErr.(problemExtender); ok {
			extras = p.ProblemExtras()
		}
		httputil.RespondErrorWithExtras(w, status, httpErr.Error(), extras)
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	default:
		respondServerError(w, r, logger, http.StatusInternalServerError, err)
	}
}

// problemExtender is implemented by errors that add members to the problem
// body, such as the id of a conflicting resource.
type problemExtender interface {
	ProblemExtras() map[string]any
}

func respondServerError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, status int, err error) {
	logger.Error("request failed",
		"status", status,
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	detail := "internal server error"
	if status == http.StatusBadGateway {
		detail = "upstream service unavailable"
	}
	httputil.RespondError(w, status, detail)
}

// requestLanguage picks the content language: ?lang= first, then the
// primary Accept-Language entry. Empty means the server default.
func requestLanguage(r *http.Request) string {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return lang
	}
	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil || len(tags) == 0 {
		return ""
	}
	base, confidence := tags[0].Base()
	if confidence == language.No {
		return ""
	}
	return base.String()
}

// handleBodyError reports an unreadable request body: 413 when it was cut
// off by the size limit, 400 otherwise
func handleBodyError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		httputil.RespondError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
}
