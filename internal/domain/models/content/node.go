package content

import (
	"fmt"
	"reflect"
	"strings"

	"folio/internal/domain"
)

// Node is one element of a structured content document.
// Leaf kinds carry their payload in Attrs (media) or Text (text runs).
type Node struct {
	Type    Kind           `json:"type"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Content []*Node        `json:"content,omitempty"`
	Text    string         `json:"text,omitempty"`
	Marks   []Mark         `json:"marks,omitempty"`
}

// Mark is inline formatting applied to a text run (bold, italic, link, ...).
type Mark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// NewNode constructs a node after checking the kind and its required attributes.
// For text runs the "text" attribute becomes the node's Text.
func NewNode(kind Kind, attrs map[string]any, children []*Node) (*Node, error) {
	spec, ok := DefaultSchema().Lookup(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidNodeKind, kind)
	}
	if len(children) > 0 && !spec.Container {
		return nil, fmt.Errorf("%w: %q cannot have children", domain.ErrInvalidNodeKind, kind)
	}

	n := &Node{Type: kind}
	for _, key := range spec.Required {
		v, _ := attrs[key].(string)
		if v == "" {
			return nil, fmt.Errorf("%w: %s.%s", domain.ErrMissingRequiredAttribute, kind, key)
		}
	}

	for k, v := range attrs {
		if kind == KindText && k == "text" {
			n.Text, _ = v.(string)
			continue
		}
		if n.Attrs == nil {
			n.Attrs = make(map[string]any, len(attrs))
		}
		n.Attrs[k] = cloneValue(v)
	}

	for _, child := range children {
		if child == nil {
			continue
		}
		n.Content = append(n.Content, child.Clone())
	}

	return n, nil
}

// NewText returns a text run.
func NewText(s string) *Node {
	return &Node{Type: KindText, Text: s}
}

// NewDoc returns an empty document root.
func NewDoc(children ...*Node) *Node {
	doc := &Node{Type: KindDoc}
	for _, c := range children {
		if c != nil {
			doc.Content = append(doc.Content, c)
		}
	}
	return doc
}

// StringAttr returns a string attribute, or "" when absent or not a string.
func (n *Node) StringAttr(key string) string {
	if n == nil {
		return ""
	}
	s, _ := n.Attrs[key].(string)
	return s
}

// IntAttr returns a numeric attribute as int. JSON numbers decode as float64.
func (n *Node) IntAttr(key string) (int, bool) {
	if n == nil {
		return 0, false
	}
	switch v := n.Attrs[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}

// Clone returns a deep copy sharing no maps or slices with n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{Type: n.Type, Text: n.Text}
	if n.Attrs != nil {
		out.Attrs = cloneMap(n.Attrs)
	}
	if n.Content != nil {
		out.Content = make([]*Node, 0, len(n.Content))
		for _, c := range n.Content {
			out.Content = append(out.Content, c.Clone())
		}
	}
	if n.Marks != nil {
		out.Marks = make([]Mark, len(n.Marks))
		for i, m := range n.Marks {
			out.Marks[i] = Mark{Type: m.Type}
			if m.Attrs != nil {
				out.Marks[i].Attrs = cloneMap(m.Attrs)
			}
		}
	}
	return out
}

// Equal reports whether two trees are structurally equal. Numeric attribute
// values compare by value regardless of their Go type.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type != b.Type || a.Text != b.Text {
		return false
	}
	if !valuesEqual(mapOrNil(a.Attrs), mapOrNil(b.Attrs)) {
		return false
	}
	if len(a.Marks) != len(b.Marks) {
		return false
	}
	for i := range a.Marks {
		if a.Marks[i].Type != b.Marks[i].Type ||
			!valuesEqual(mapOrNil(a.Marks[i].Attrs), mapOrNil(b.Marks[i].Attrs)) {
			return false
		}
	}
	if len(a.Content) != len(b.Content) {
		return false
	}
	for i := range a.Content {
		if !Equal(a.Content[i], b.Content[i]) {
			return false
		}
	}
	return true
}

// Validate reports the first well-formedness violation in the tree.
func (n *Node) Validate() error {
	return validateNode(n, string(KindDoc))
}

func validateNode(n *Node, path string) error {
	if n == nil {
		return fmt.Errorf("%w: nil node at %s", domain.ErrInvalidNodeKind, path)
	}
	spec, ok := DefaultSchema().Lookup(n.Type)
	if !ok {
		return fmt.Errorf("%w: %q at %s", domain.ErrInvalidNodeKind, n.Type, path)
	}
	if len(n.Content) > 0 && !spec.Container {
		return fmt.Errorf("%w: %q cannot have children (at %s)", domain.ErrInvalidNodeKind, n.Type, path)
	}
	for _, key := range spec.Required {
		if n.Type == KindText {
			if n.Text == "" {
				return fmt.Errorf("%w: text at %s", domain.ErrMissingRequiredAttribute, path)
			}
			continue
		}
		if n.StringAttr(key) == "" {
			return fmt.Errorf("%w: %s.%s at %s", domain.ErrMissingRequiredAttribute, n.Type, key, path)
		}
	}
	for i, c := range n.Content {
		if err := validateNode(c, fmt.Sprintf("%s/%d", path, i)); err != nil {
			return err
		}
	}
	return nil
}

// PlainText concatenates the text runs below n. Block boundaries are not
// marked; use the content service renderers for formatted output.
func (n *Node) PlainText() string {
	var b strings.Builder
	collectText(&b, n)
	return b.String()
}

func collectText(b *strings.Builder, n *Node) {
	if n == nil {
		return
	}
	if n.Type == KindText {
		b.WriteString(n.Text)
		return
	}
	for _, c := range n.Content {
		collectText(b, c)
	}
}

func mapOrNil(m map[string]any) map[string]any {
	if len(m) == 0 {
		return nil
	}
	return m
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

func valuesEqual(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}
	switch ta := a.(type) {
	case map[string]any:
		tb, ok := b.(map[string]any)
		if !ok || len(ta) != len(tb) {
			return false
		}
		for k, va := range ta {
			vb, ok := tb[k]
			if !ok || !valuesEqual(va, vb) {
				return false
			}
		}
		return true
	case []any:
		tb, ok := b.([]any)
		if !ok || len(ta) != len(tb) {
			return false
		}
		for i := range ta {
			if !valuesEqual(ta[i], tb[i]) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	}
	return 0, false
}
