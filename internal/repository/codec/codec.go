// Package codec converts project records between their in-memory form and
// the form kept by the persistence store.
//
// Stored content comes in several shapes written by different versions of
// the admin tools. The shape is classified once here so nothing above the
// repository has to care.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"

	"folio/internal/domain"
	"folio/internal/domain/models/content"
	"folio/internal/domain/models/portfolio"
)

// Shape tags the stored form of a content column.
type Shape int

const (
	// Absent: no content stored (SQL NULL, JSON null, or an empty string).
	Absent Shape = iota
	// RawString: a JSON string whose value is itself JSON text.
	RawString
	// NativeObject: the content is stored as a nested JSON value.
	NativeObject
)

func (s Shape) String() string {
	switch s {
	case RawString:
		return "raw_string"
	case NativeObject:
		return "native_object"
	default:
		return "absent"
	}
}

// StoredContent is the classified content column.
type StoredContent struct {
	Shape  Shape
	Text   string          // RawString payload
	Object json.RawMessage // NativeObject payload
}

// Classify inspects a stored content value.
func Classify(raw json.RawMessage) StoredContent {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return StoredContent{Shape: Absent}
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			// Not even a valid JSON string; keep the bytes so decoding
			// records the failure.
			return StoredContent{Shape: RawString, Text: string(trimmed)}
		}
		if len(bytes.TrimSpace([]byte(s))) == 0 {
			return StoredContent{Shape: Absent}
		}
		return StoredContent{Shape: RawString, Text: s}
	}
	return StoredContent{Shape: NativeObject, Object: trimmed}
}

// Body decodes the classified content. Absent content yields a nil body and
// no error.
func (c StoredContent) Body() (*content.Body, error) {
	var (
		body *content.Body
		err  error
	)
	switch c.Shape {
	case Absent:
		return nil, nil
	case RawString:
		body, err = content.DecodeBody([]byte(c.Text))
	case NativeObject:
		body, err = content.DecodeBody(c.Object)
	}
	if err != nil {
		return nil, fmt.Errorf("%w (%s): %v", domain.ErrDeserializeParseFailure, c.Shape, err)
	}
	return body, nil
}

// Serialize converts a record to storage form. Content is always written as
// a native JSON object; nil or empty content is written as absent, unless
// the record carries unreadable content, which is written back unchanged.
func Serialize(r *portfolio.ProjectRecord) (*portfolio.RawRecord, error) {
	raw := &portfolio.RawRecord{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		Category:     string(r.Category),
		Tags:         slices.Clone(r.Tags),
		Status:       string(r.Status),
		CoverURL:     cloneString(r.CoverURL),
		IsRecentWork: r.IsRecentWork,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if raw.Tags == nil {
		raw.Tags = []string{}
	}
	switch {
	case !r.Content.IsEmpty():
		data, err := json.Marshal(r.Content)
		if err != nil {
			return nil, fmt.Errorf("encode content of %s: %w", r.ID, err)
		}
		raw.Content = data
	case r.ContentParseFailed:
		// Unreadable content is kept as stored until it is replaced.
		raw.Content = slices.Clone(r.RawContent)
	}
	return raw, nil
}

// Deserialize converts a stored record. It never fails: content that cannot
// be parsed leaves Content nil and is reported through ContentParseFailed
// and ContentErr.
func Deserialize(raw *portfolio.RawRecord) *portfolio.ProjectRecord {
	r := &portfolio.ProjectRecord{
		ID:           raw.ID,
		Title:        raw.Title,
		Description:  raw.Description,
		Category:     portfolio.Category(raw.Category),
		Tags:         slices.Clone(raw.Tags),
		Status:       portfolio.Status(raw.Status),
		CoverURL:     cloneString(raw.CoverURL),
		IsRecentWork: raw.IsRecentWork,
		CreatedAt:    raw.CreatedAt,
		UpdatedAt:    raw.UpdatedAt,
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
	body, err := Classify(raw.Content).Body()
	if err != nil {
		r.ContentParseFailed = true
		r.ContentErr = err
		r.RawContent = slices.Clone(raw.Content)
		return r
	}
	r.Content = body
	return r
}

// DeserializeAll converts a listing. Records with unreadable content are
// kept and logged.
func DeserializeAll(logger *slog.Logger, raws []*portfolio.RawRecord) []*portfolio.ProjectRecord {
	records := make([]*portfolio.ProjectRecord, 0, len(raws))
	for _, raw := range raws {
		r := Deserialize(raw)
		if r.ContentParseFailed {
			logger.Warn("project content unreadable, serving without content",
				"id", r.ID,
				"error", r.ContentErr,
			)
		}
		records = append(records, r)
	}
	return records
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
