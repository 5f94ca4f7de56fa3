package handler

import (
	"log/slog"
	"net/http"

	"folio/internal/config"
	"folio/internal/domain/services"
	"folio/internal/httputil"
)

// MediaHandler forwards admin uploads to the media host
type MediaHandler struct {
	uploader services.MediaUploader
	logger   *slog.Logger
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(uploader services.MediaUploader, logger *slog.Logger) *MediaHandler {
	return &MediaHandler{
		uploader: uploader,
		logger:   logger,
	}
}

// Upload accepts one multipart file and returns its hosted URL
// POST /api/admin/media (multipart: file, folder)
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadBytes)
	// Parts above 32 MB spill to temp files
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		handleBodyError(w, err)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "multipart field \"file\" is required")
		return
	}
	defer file.Close()

	result, err := h.uploader.Upload(r.Context(), services.UploadRequest{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Folder:      r.FormValue("folder"),
		Body:        file,
	})
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, result)
}
