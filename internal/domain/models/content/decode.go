package content

import (
	"encoding/json"
	"errors"
	"fmt"
)

// errNotObject is returned when a document is valid JSON but not an object.
var errNotObject = errors.New("content is not a JSON object")

// Decode parses a JSON document leniently. Records written by older editor
// versions may hold pieces we no longer understand: children that are not
// objects, attrs that are not maps, text that is not a string. Those pieces
// are dropped; unknown kinds are kept as-is. Only invalid JSON is an error.
func Decode(data []byte) (*Node, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, errNotObject
	}
	return FromMap(m), nil
}

// FromMap converts a generic JSON object into a node tree, dropping
// malformed pieces.
func FromMap(m map[string]any) *Node {
	if m == nil {
		return nil
	}
	kind, _ := m["type"].(string)
	n := &Node{Type: Kind(kind)}

	if attrs, ok := m["attrs"].(map[string]any); ok && len(attrs) > 0 {
		n.Attrs = cloneMap(attrs)
	}
	if text, ok := m["text"].(string); ok {
		n.Text = text
	}
	if marks, ok := m["marks"].([]any); ok {
		for _, raw := range marks {
			mm, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			markType, _ := mm["type"].(string)
			if markType == "" {
				continue
			}
			mark := Mark{Type: markType}
			if attrs, ok := mm["attrs"].(map[string]any); ok && len(attrs) > 0 {
				mark.Attrs = cloneMap(attrs)
			}
			n.Marks = append(n.Marks, mark)
		}
	}
	if children, ok := m["content"].([]any); ok {
		for _, raw := range children {
			cm, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			n.Content = append(n.Content, FromMap(cm))
		}
	}
	return n
}

// Localized maps a language key ("en", "zh", ...) to a document root.
type Localized map[string]*Node

// Body is the content of a record: either a single bare document (the legacy
// shape) or a set of per-language documents.
type Body struct {
	Single    *Node
	Localized Localized
}

// SingleBody wraps a bare document.
func SingleBody(doc *Node) *Body {
	return &Body{Single: doc}
}

// LocalizedBody wraps per-language documents.
func LocalizedBody(docs Localized) *Body {
	return &Body{Localized: docs}
}

// IsEmpty reports whether the body holds no document at all.
func (b *Body) IsEmpty() bool {
	if b == nil {
		return true
	}
	if b.Single != nil {
		return false
	}
	for _, doc := range b.Localized {
		if doc != nil {
			return false
		}
	}
	return true
}

// Languages returns the language keys that hold a document.
func (b *Body) Languages() []string {
	if b == nil {
		return nil
	}
	langs := make([]string, 0, len(b.Localized))
	for lang, doc := range b.Localized {
		if doc != nil {
			langs = append(langs, lang)
		}
	}
	return langs
}

// Clone deep-copies the body.
func (b *Body) Clone() *Body {
	if b == nil {
		return nil
	}
	out := &Body{Single: b.Single.Clone()}
	if b.Localized != nil {
		out.Localized = make(Localized, len(b.Localized))
		for lang, doc := range b.Localized {
			out.Localized[lang] = doc.Clone()
		}
	}
	return out
}

// MarshalJSON writes a bare document as the node itself and localized
// content as a language map.
func (b *Body) MarshalJSON() ([]byte, error) {
	if b == nil {
		return []byte("null"), nil
	}
	if b.Single != nil {
		return json.Marshal(b.Single)
	}
	if b.Localized == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]*Node(b.Localized))
}

// UnmarshalJSON accepts both content shapes, see DecodeBody.
func (b *Body) UnmarshalJSON(data []byte) error {
	decoded, err := DecodeBody(data)
	if err != nil {
		return err
	}
	if decoded == nil {
		*b = Body{}
		return nil
	}
	*b = *decoded
	return nil
}

// DecodeBody parses either content shape. An object whose "type" field is a
// string is a bare document; any other object is a language map whose
// non-object values are skipped. JSON null yields a nil body.
func DecodeBody(data []byte) (*Body, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	if v == nil {
		return nil, nil
	}
	return BodyFromValue(v)
}

// BodyFromValue classifies an already-decoded JSON value.
func BodyFromValue(v any) (*Body, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, errNotObject
	}
	if _, isDoc := m["type"].(string); isDoc {
		return SingleBody(FromMap(m)), nil
	}
	docs := make(Localized, len(m))
	for lang, raw := range m {
		dm, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		docs[lang] = FromMap(dm)
	}
	return LocalizedBody(docs), nil
}
