package content

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed schema.yaml
var schemaFile []byte

// Kind identifies the type of a content node. Values follow the TipTap JSON
// node names so stored documents round-trip with the editor untouched.
type Kind string

const (
	KindDoc            Kind = "doc"
	KindParagraph      Kind = "paragraph"
	KindHeading        Kind = "heading"
	KindBlockquote     Kind = "blockquote"
	KindCodeBlock      Kind = "codeBlock"
	KindBulletList     Kind = "bulletList"
	KindOrderedList    Kind = "orderedList"
	KindListItem       Kind = "listItem"
	KindHorizontalRule Kind = "horizontalRule"
	KindHardBreak      Kind = "hardBreak"
	KindText           Kind = "text"
	KindImage          Kind = "image"
	KindVideo          Kind = "video"
	KindYoutube        Kind = "youtube"
)

// KindSpec describes how a node kind behaves.
type KindSpec struct {
	Container bool     `yaml:"container"`
	Media     bool     `yaml:"media"`
	Text      bool     `yaml:"text"`
	Required  []string `yaml:"required"`
}

// Schema is the set of recognized node kinds.
type Schema struct {
	Kinds map[Kind]KindSpec `yaml:"kinds"`
}

// LoadSchema parses a YAML kind schema.
func LoadSchema(data []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal kind schema: %w", err)
	}
	if len(s.Kinds) == 0 {
		return nil, fmt.Errorf("kind schema defines no kinds")
	}
	return &s, nil
}

var defaultSchema = sync.OnceValue(func() *Schema {
	s, err := LoadSchema(schemaFile)
	if err != nil {
		panic(fmt.Sprintf("embedded content schema: %v", err))
	}
	return s
})

// DefaultSchema returns the embedded kind schema.
func DefaultSchema() *Schema {
	return defaultSchema()
}

// Lookup returns the spec for a kind and whether the kind is recognized.
func (s *Schema) Lookup(k Kind) (KindSpec, bool) {
	spec, ok := s.Kinds[k]
	return spec, ok
}

// Known reports whether k is a recognized kind.
func (k Kind) Known() bool {
	_, ok := DefaultSchema().Lookup(k)
	return ok
}

// IsMedia reports whether k carries an image or video payload.
func (k Kind) IsMedia() bool {
	spec, ok := DefaultSchema().Lookup(k)
	return ok && spec.Media
}

// IsTextBlock reports whether the block editor can set text on kind k.
func (k Kind) IsTextBlock() bool {
	spec, ok := DefaultSchema().Lookup(k)
	return ok && spec.Text
}
