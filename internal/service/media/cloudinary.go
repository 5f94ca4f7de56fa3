// Package media talks to the Cloudinary-compatible media host that stores
// project images, videos and documents.
package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"folio/internal/domain"
	"folio/internal/domain/services"
)

const (
	// DefaultBaseURL is the public Cloudinary API endpoint
	DefaultBaseURL = "https://api.cloudinary.com"
	// DefaultFolder groups uploads when the caller names none
	DefaultFolder = "portfolio"
	// DefaultTimeout bounds a single upload, videos included
	DefaultTimeout = 2 * time.Minute
)

// Config holds the media host settings.
type Config struct {
	BaseURL      string
	CloudName    string
	UploadPreset string
	Timeout      time.Duration
}

// CloudinaryClient implements services.MediaUploader with unsigned uploads.
type CloudinaryClient struct {
	baseURL    string
	cloudName  string
	preset     string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ services.MediaUploader = (*CloudinaryClient)(nil)

// NewCloudinaryClient creates a media host client.
func NewCloudinaryClient(cfg Config, logger *slog.Logger) *CloudinaryClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &CloudinaryClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		cloudName:  cfg.CloudName,
		preset:     cfg.UploadPreset,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// ResourceType picks the upload endpoint from a declared content type.
func ResourceType(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "video/"):
		return "video"
	case strings.HasPrefix(contentType, "image/"):
		return "image"
	default:
		return "raw"
	}
}

// Upload sends the file as multipart form data and returns its secure URL.
func (c *CloudinaryClient) Upload(ctx context.Context, req services.UploadRequest) (*services.UploadResult, error) {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.Filename, validation.Required),
		validation.Field(&req.Body, validation.Required),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if c.cloudName == "" || c.preset == "" {
		return nil, c.upstream(fmt.Errorf("media host is not configured"))
	}

	folder := req.Folder
	if folder == "" {
		folder = DefaultFolder
	}
	resourceType := ResourceType(req.ContentType)

	// Buffered so a failed read of the source is reported before anything
	// is sent.
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("file", req.Filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, req.Body); err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	fields := [][2]string{
		{"upload_preset", c.preset},
		{"folder", folder},
	}
	for _, f := range fields {
		if err := form.WriteField(f[0], f[1]); err != nil {
			return nil, fmt.Errorf("write form field %s: %w", f[0], err)
		}
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("close form: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1_1/%s/%s/upload", c.baseURL, c.cloudName, resourceType)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", form.FormDataContentType())
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, c.upstream(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, c.upstream(fmt.Errorf("read response: %w", err))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, c.upstream(fmt.Errorf("status %d: %s", resp.StatusCode, apiErrorMessage(body)))
	}

	var parsed uploadResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, c.upstream(fmt.Errorf("parse response: %w", err))
	}
	if parsed.SecureURL == "" {
		return nil, c.upstream(fmt.Errorf("response has no secure_url"))
	}

	c.logger.Info("media uploaded",
		"filename", req.Filename,
		"resource_type", resourceType,
		"url", parsed.SecureURL,
	)

	return &services.UploadResult{URL: parsed.SecureURL, ResourceType: resourceType}, nil
}

func (c *CloudinaryClient) upstream(err error) error {
	c.logger.Warn("media upload failed", "error", err)
	return &domain.UpstreamError{Collaborator: "media host", Op: "upload", Err: err}
}

// apiErrorMessage extracts the host's error message, falling back to the
// raw body.
func apiErrorMessage(body []byte) string {
	var e struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil && e.Error.Message != "" {
		return e.Error.Message
	}
	return strings.TrimSpace(string(body))
}

// uploadResponse is the subset of the host's upload reply we read
type uploadResponse struct {
	SecureURL    string `json:"secure_url"`
	ResourceType string `json:"resource_type"`
	PublicID     string `json:"public_id"`
}
