package httputil

import (
	"bytes"
	"encoding/json"
)

// Patch is a JSON merge-patch field (RFC 7396). A *T alone cannot tell an
// omitted key from an explicit null, so Set records that the key was seen.
type Patch[T any] struct {
	Set   bool
	Value *T
}

// UnmarshalJSON is only invoked for keys present in the document
func (p *Patch[T]) UnmarshalJSON(data []byte) error {
	p.Set = true
	p.Value = nil
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	p.Value = &v
	return nil
}

// OrZero folds an explicit null into the zero value. It returns nil when the
// key was omitted.
func (p Patch[T]) OrZero() *T {
	if !p.Set {
		return nil
	}
	if p.Value != nil {
		return p.Value
	}
	var zero T
	return &zero
}
