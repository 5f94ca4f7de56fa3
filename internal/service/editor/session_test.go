package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/domain"
	"folio/internal/domain/models/content"
)

func kinds(blocks []Block) []content.Kind {
	out := make([]content.Kind, len(blocks))
	for i, b := range blocks {
		out[i] = b.Kind
	}
	return out
}

func texts(blocks []Block) []string {
	out := make([]string, len(blocks))
	for i, b := range blocks {
		out[i] = b.Text
	}
	return out
}

func fourBlocks(t *testing.T) *Session {
	t.Helper()
	s := NewSession(nil)
	for _, text := range []string{"A", "B", "C", "D"} {
		_, err := s.InsertBlock(content.KindParagraph, Payload{Text: text})
		require.NoError(t, err)
	}
	return s
}

func TestSession_EndToEnd(t *testing.T) {
	s := NewSession(nil)

	idx, err := s.InsertBlock(content.KindHeading, Payload{})
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Equal(t, []Block{{Kind: content.KindHeading, Text: ""}}, s.Blocks())

	require.NoError(t, s.UpdateBlockText(0, "Intro"))
	assert.Equal(t, []Block{{Kind: content.KindHeading, Text: "Intro"}}, s.Blocks())

	idx, err = s.InsertBlock(content.KindImage, Payload{Media: &content.MediaReference{Src: "http://x/1.png"}})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Len(t, s.Blocks(), 2)

	require.NoError(t, s.MoveBlock(1, 0))
	assert.Equal(t, content.KindImage, s.Blocks()[0].Kind)
	assert.Equal(t, "http://x/1.png", s.Blocks()[0].Media.Src)

	require.NoError(t, s.RemoveBlock(0))
	assert.Equal(t, []Block{{Kind: content.KindHeading, Text: "Intro"}}, s.Blocks())
}

func TestSession_MoveBlockSpliceSemantics(t *testing.T) {
	s := fourBlocks(t)

	require.NoError(t, s.MoveBlock(0, 2))
	assert.Equal(t, []string{"B", "C", "A", "D"}, texts(s.Blocks()))

	require.NoError(t, s.MoveBlock(3, 0))
	assert.Equal(t, []string{"D", "B", "C", "A"}, texts(s.Blocks()))
}

func TestSession_MoveBlockRoundTrip(t *testing.T) {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			s := fourBlocks(t)
			original := s.Blocks()

			require.NoError(t, s.MoveBlock(i, j))
			require.NoError(t, s.MoveBlock(j, i))

			assert.Equal(t, original, s.Blocks(), "move(%d,%d) then move(%d,%d)", i, j, j, i)
		}
	}
}

func TestSession_IndexErrors(t *testing.T) {
	s := fourBlocks(t)

	tests := []struct {
		name string
		call func() error
	}{
		{"update negative", func() error { return s.UpdateBlockText(-1, "x") }},
		{"update past end", func() error { return s.UpdateBlockText(4, "x") }},
		{"remove past end", func() error { return s.RemoveBlock(4) }},
		{"move bad from", func() error { return s.MoveBlock(9, 0) }},
		{"move bad to", func() error { return s.MoveBlock(0, 4) }},
		{"move same bad index", func() error { return s.MoveBlock(5, 5) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Equal(t, []string{"A", "B", "C", "D"}, texts(s.Blocks()))
		})
	}
}

func TestSession_UpdateBlockTextOnMedia(t *testing.T) {
	s := NewSession(nil)
	_, err := s.InsertBlock(content.KindVideo, Payload{Media: &content.MediaReference{Src: "http://x/v.mp4"}})
	require.NoError(t, err)
	_, err = s.InsertBlock(content.KindHorizontalRule, Payload{})
	require.NoError(t, err)

	assert.ErrorIs(t, s.UpdateBlockText(0, "caption"), domain.ErrUnsupportedBlockKind)
	assert.ErrorIs(t, s.UpdateBlockText(1, "rule"), domain.ErrUnsupportedBlockKind)
}

func TestSession_InsertBlockErrors(t *testing.T) {
	tests := []struct {
		name    string
		kind    content.Kind
		payload Payload
		wantErr error
	}{
		{"unknown kind", content.Kind("table"), Payload{}, domain.ErrInvalidNodeKind},
		{"media without reference", content.KindImage, Payload{}, domain.ErrMissingRequiredAttribute},
		{"media without src", content.KindImage, Payload{Media: &content.MediaReference{Alt: "x"}}, domain.ErrMissingRequiredAttribute},
		{"doc is not a block", content.KindDoc, Payload{}, domain.ErrUnsupportedBlockKind},
		{"text run is not a block", content.KindText, Payload{Text: "x"}, domain.ErrUnsupportedBlockKind},
		{"text on rule", content.KindHorizontalRule, Payload{Text: "x"}, domain.ErrUnsupportedBlockKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(nil)
			_, err := s.InsertBlock(tt.kind, tt.payload)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, s.Len())
		})
	}
}

func TestSession_TextBlockShapes(t *testing.T) {
	s := NewSession(nil)
	for _, kind := range []content.Kind{
		content.KindParagraph, content.KindHeading, content.KindCodeBlock,
		content.KindBlockquote, content.KindBulletList, content.KindOrderedList,
	} {
		_, err := s.InsertBlock(kind, Payload{Text: "t"})
		require.NoError(t, err)
	}

	doc := s.Document()
	require.NoError(t, doc.Validate())
	assert.Equal(t, []string{"t", "t", "t", "t", "t", "t"}, texts(s.Blocks()))

	level, ok := doc.Content[1].IntAttr("level")
	assert.True(t, ok)
	assert.Equal(t, 2, level)

	list := doc.Content[4]
	require.Len(t, list.Content, 1)
	assert.Equal(t, content.KindListItem, list.Content[0].Type)

	require.NoError(t, s.UpdateBlockText(4, ""))
	assert.Empty(t, s.Document().Content[4].Content)
}

func TestSession_DoesNotAliasInput(t *testing.T) {
	root := content.NewDoc(&content.Node{Type: content.KindParagraph, Content: []*content.Node{content.NewText("orig")}})

	s := NewSession(root)
	require.NoError(t, s.UpdateBlockText(0, "changed"))
	_, err := s.InsertBlock(content.KindParagraph, Payload{Text: "new"})
	require.NoError(t, err)

	assert.Len(t, root.Content, 1)
	assert.Equal(t, "orig", root.Content[0].PlainText())

	doc := s.Document()
	doc.Content = nil
	assert.Equal(t, 2, s.Len(), "Document returns a copy")
}

func TestSession_Subscribe(t *testing.T) {
	s := NewSession(nil)

	var got [][]content.Kind
	cancel := s.Subscribe(func(blocks []Block) {
		got = append(got, kinds(blocks))
	})

	_, err := s.InsertBlock(content.KindParagraph, Payload{Text: "a"})
	require.NoError(t, err)
	_, err = s.InsertBlock(content.KindImage, Payload{Media: &content.MediaReference{Src: "http://x/1.png"}})
	require.NoError(t, err)
	require.NoError(t, s.MoveBlock(0, 0))
	require.NoError(t, s.MoveBlock(1, 0))
	assert.Error(t, s.RemoveBlock(7))

	assert.Equal(t, [][]content.Kind{
		{content.KindParagraph},
		{content.KindParagraph, content.KindImage},
		{content.KindImage, content.KindParagraph},
	}, got, "one notification per successful mutation")

	cancel()
	require.NoError(t, s.RemoveBlock(0))
	assert.Len(t, got, 3)
}

func TestSession_ObserverMayCancelItself(t *testing.T) {
	s := NewSession(nil)

	calls := 0
	var cancel func()
	cancel = s.Subscribe(func([]Block) {
		calls++
		cancel()
	})
	other := 0
	s.Subscribe(func([]Block) { other++ })

	_, err := s.InsertBlock(content.KindParagraph, Payload{})
	require.NoError(t, err)
	_, err = s.InsertBlock(content.KindParagraph, Payload{})
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, other)
}

func TestSession_Apply(t *testing.T) {
	s := NewSession(nil)

	err := s.Apply([]BlockOp{
		{Op: OpInsert, Kind: content.KindHeading, Text: "Title"},
		{Op: OpInsert, Kind: content.KindParagraph, Text: "body"},
		{Op: OpInsert, Kind: content.KindImage, Media: &content.MediaReference{Src: "http://x/1.png"}},
		{Op: OpMove, Index: 2, To: 1},
		{Op: OpUpdateText, Index: 2, Text: "edited"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Title", "", "edited"}, texts(s.Blocks()))

	err = s.Apply([]BlockOp{
		{Op: OpRemove, Index: 0},
		{Op: OpRemove, Index: 10},
		{Op: OpRemove, Index: 0},
	})
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
	assert.Equal(t, 2, s.Len(), "ops before the failure stay applied")

	assert.ErrorIs(t, s.Apply([]BlockOp{{Op: "rename"}}), domain.ErrValidation)
	assert.ErrorIs(t, s.Apply([]BlockOp{{Op: OpInsert}}), domain.ErrValidation)
	assert.ErrorIs(t, s.Apply([]BlockOp{{Op: OpRemove, Index: -1}}), domain.ErrValidation)
}
