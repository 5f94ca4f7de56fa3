package services

import (
	"context"
	"io"
)

// UploadRequest describes one file to push to the media host.
type UploadRequest struct {
	Filename    string
	ContentType string
	Folder      string
	Body        io.Reader
}

// UploadResult is the hosted location of an uploaded file.
type UploadResult struct {
	URL          string `json:"url"`
	ResourceType string `json:"resource_type"`
}

// MediaUploader stores files with the external media host. A failed upload
// is reported as *domain.UpstreamError and is never retried.
type MediaUploader interface {
	Upload(ctx context.Context, req UploadRequest) (*UploadResult, error)
}
