// Package editor implements block-level editing of a content document.
//
// A session treats every top-level child of the document root as an
// addressable block. It is driven by one caller at a time and is not safe
// for concurrent use.
package editor

import (
	"fmt"
	"slices"

	"folio/internal/domain"
	"folio/internal/domain/models/content"
)

// Block is the editor's view of one top-level node.
type Block struct {
	Kind  content.Kind            `json:"kind"`
	Text  string                  `json:"text"`
	Media *content.MediaReference `json:"media,omitempty"`
}

// Payload is the initial data for a new block. Media blocks take a
// pre-uploaded reference; the session never talks to the media host.
type Payload struct {
	Text  string
	Media *content.MediaReference
	Attrs map[string]any
}

// Observer receives the block sequence after each mutation.
type Observer func([]Block)

type subscription struct {
	id int
	fn Observer
}

// Session holds a document being edited.
type Session struct {
	doc       *content.Node
	observers []subscription
	nextID    int
}

// NewSession starts editing a copy of root. A nil root starts an empty
// document.
func NewSession(root *content.Node) *Session {
	doc := root.Clone()
	if doc == nil {
		doc = content.NewDoc()
	}
	doc.Content = slices.DeleteFunc(doc.Content, func(n *content.Node) bool { return n == nil })
	return &Session{doc: doc}
}

// Len returns the number of blocks.
func (s *Session) Len() int {
	return len(s.doc.Content)
}

// Blocks returns the current block sequence.
func (s *Session) Blocks() []Block {
	blocks := make([]Block, len(s.doc.Content))
	for i, n := range s.doc.Content {
		blocks[i] = toBlock(n)
	}
	return blocks
}

// Document returns a deep copy of the edited document.
func (s *Session) Document() *content.Node {
	return s.doc.Clone()
}

// Subscribe registers an observer and returns a function that removes it.
func (s *Session) Subscribe(fn Observer) (cancel func()) {
	s.nextID++
	id := s.nextID
	s.observers = append(s.observers, subscription{id: id, fn: fn})
	return func() {
		s.observers = slices.DeleteFunc(s.observers, func(sub subscription) bool { return sub.id == id })
	}
}

// InsertBlock appends a block and returns its index.
func (s *Session) InsertBlock(kind content.Kind, p Payload) (int, error) {
	node, err := newBlock(kind, p)
	if err != nil {
		return 0, err
	}
	s.doc.Content = append(s.doc.Content, node)
	s.notify()
	return len(s.doc.Content) - 1, nil
}

// UpdateBlockText replaces the text of a text-bearing block. List blocks are
// reset to a single item holding the text.
func (s *Session) UpdateBlockText(index int, text string) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	block := s.doc.Content[index]
	if !block.Type.IsTextBlock() {
		return fmt.Errorf("%w: cannot set text on %q", domain.ErrUnsupportedBlockKind, block.Type)
	}
	block.Content = textChildren(block.Type, text)
	s.notify()
	return nil
}

// RemoveBlock deletes a block; later blocks shift down by one.
func (s *Session) RemoveBlock(index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	s.doc.Content = slices.Delete(s.doc.Content, index, index+1)
	s.notify()
	return nil
}

// MoveBlock removes the block at from and reinserts it at to. Moving index 0
// to 2 in [A B C D] gives [B C A D].
func (s *Session) MoveBlock(from, to int) error {
	if err := s.checkIndex(from); err != nil {
		return err
	}
	if err := s.checkIndex(to); err != nil {
		return err
	}
	if from == to {
		return nil
	}
	node := s.doc.Content[from]
	s.doc.Content = slices.Delete(s.doc.Content, from, from+1)
	s.doc.Content = slices.Insert(s.doc.Content, to, node)
	s.notify()
	return nil
}

func (s *Session) checkIndex(i int) error {
	if i < 0 || i >= len(s.doc.Content) {
		return fmt.Errorf("%w: %d not in [0, %d)", domain.ErrIndexOutOfRange, i, len(s.doc.Content))
	}
	return nil
}

func (s *Session) notify() {
	if len(s.observers) == 0 {
		return
	}
	blocks := s.Blocks()
	// Observers may cancel themselves while being notified.
	for _, sub := range slices.Clone(s.observers) {
		sub.fn(slices.Clone(blocks))
	}
}

func newBlock(kind content.Kind, p Payload) (*content.Node, error) {
	if kind.IsMedia() {
		if p.Media == nil {
			return nil, fmt.Errorf("%w: %s block needs a media reference", domain.ErrMissingRequiredAttribute, kind)
		}
		ref := *p.Media
		ref.Kind = kind
		return content.MediaNode(ref)
	}

	switch kind {
	case content.KindDoc, content.KindText, content.KindHardBreak:
		return nil, fmt.Errorf("%w: %q is not a block", domain.ErrUnsupportedBlockKind, kind)
	}
	if !kind.Known() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidNodeKind, kind)
	}
	if p.Text != "" && !kind.IsTextBlock() {
		return nil, fmt.Errorf("%w: %q does not hold text", domain.ErrUnsupportedBlockKind, kind)
	}

	attrs := p.Attrs
	if kind == content.KindHeading {
		if _, ok := attrs["level"]; !ok {
			attrs = make(map[string]any, len(p.Attrs)+1)
			for k, v := range p.Attrs {
				attrs[k] = v
			}
			attrs["level"] = 2
		}
	}
	return content.NewNode(kind, attrs, textChildren(kind, p.Text))
}

// textChildren builds the minimal subtree that holds text for a block kind.
func textChildren(kind content.Kind, text string) []*content.Node {
	if text == "" {
		return nil
	}
	run := content.NewText(text)
	paragraph := &content.Node{Type: content.KindParagraph, Content: []*content.Node{run}}
	switch kind {
	case content.KindParagraph, content.KindHeading, content.KindCodeBlock:
		return []*content.Node{run}
	case content.KindBlockquote, content.KindListItem:
		return []*content.Node{paragraph}
	case content.KindBulletList, content.KindOrderedList:
		return []*content.Node{{Type: content.KindListItem, Content: []*content.Node{paragraph}}}
	}
	return nil
}

func toBlock(n *content.Node) Block {
	b := Block{Kind: n.Type}
	if n.Type.IsMedia() {
		b.Media = &content.MediaReference{Kind: n.Type, Src: n.StringAttr("src"), Alt: n.StringAttr("alt")}
		return b
	}
	b.Text = n.PlainText()
	return b
}
