package portfolio

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"folio/internal/domain"
	"folio/internal/domain/models/content"
)

// Category is the fixed set of project categories.
type Category string

const (
	CategoryCoding       Category = "Coding"
	CategoryLocalization Category = "Localization"
	CategoryPhotography  Category = "Photography"

	// CategoryAll is a filter value only; records never carry it.
	CategoryAll Category = "All"
)

// Categories lists the record categories in display order.
var Categories = []Category{CategoryCoding, CategoryLocalization, CategoryPhotography}

// Valid reports whether c is a record category.
func (c Category) Valid() bool {
	return slices.Contains(Categories, c)
}

// Status is the publication state of a record.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// ProjectRecord is a portfolio project as the application sees it.
type ProjectRecord struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Category     Category      `json:"category"`
	Tags         []string      `json:"tags"`
	Status       Status        `json:"status"`
	Content      *content.Body `json:"content"`
	CoverURL     *string       `json:"cover_url,omitempty"`
	IsRecentWork bool          `json:"is_recent_work"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`

	// ContentParseFailed is set when stored content could not be parsed.
	// Content is nil in that case, ContentErr holds the cause and
	// RawContent the stored bytes. Saving without new content writes
	// RawContent back as it was.
	ContentParseFailed bool            `json:"content_parse_failed,omitempty"`
	ContentErr         error           `json:"-"`
	RawContent         json.RawMessage `json:"-"`
}

// RawRecord is a record in storage form. Content is whatever the store
// holds: a JSON object, a JSON string containing an object, or nothing.
type RawRecord struct {
	ID           string
	Title        string
	Description  string
	Category     string
	Tags         []string
	Status       string
	Content      json.RawMessage
	CoverURL     *string
	IsRecentWork bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ReplaceContent sets new content and drops any unreadable stored content.
func (r *ProjectRecord) ReplaceContent(body *content.Body) {
	r.Content = body
	r.ContentParseFailed = false
	r.ContentErr = nil
	r.RawContent = nil
}

// IsPublished reports whether the record is visible on the public side.
func (r *ProjectRecord) IsPublished() bool {
	return r.Status == StatusPublished
}

// Publish moves the record to Published. Title and description must be
// non-blank.
func (r *ProjectRecord) Publish(now time.Time) error {
	if err := r.ValidateForPublish(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPublishValidationFailed, err)
	}
	r.Status = StatusPublished
	r.Touch(now)
	return nil
}

// Unpublish moves the record back to Draft.
func (r *ProjectRecord) Unpublish(now time.Time) {
	r.Status = StatusDraft
	r.Touch(now)
}

// Touch refreshes the updated timestamp.
func (r *ProjectRecord) Touch(now time.Time) {
	r.UpdatedAt = now
}

// ValidateForPublish checks the publish gate without changing the record.
func (r *ProjectRecord) ValidateForPublish() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.By(notBlank)),
		validation.Field(&r.Description, validation.By(notBlank)),
	)
}

// Normalize applies the record-level rules that hold for every write:
// tags are cleaned and only Photography records may be flagged as recent
// work.
func (r *ProjectRecord) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Tags = NormalizeTags(r.Tags)
	if r.Category != CategoryPhotography {
		r.IsRecentWork = false
	}
}

// Clone returns a deep copy of the record.
func (r *ProjectRecord) Clone() *ProjectRecord {
	if r == nil {
		return nil
	}
	out := *r
	out.Tags = slices.Clone(r.Tags)
	out.Content = r.Content.Clone()
	if r.CoverURL != nil {
		cover := *r.CoverURL
		out.CoverURL = &cover
	}
	return &out
}

// NormalizeTags trims tags, drops blanks and duplicates, and keeps the
// first-seen order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func notBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("cannot be blank")
	}
	return nil
}
