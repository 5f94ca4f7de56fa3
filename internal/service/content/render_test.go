package content

import (
	"testing"

	"github.com/stretchr/testify/assert"

	models "folio/internal/domain/models/content"
)

func heading(level int, text string) *models.Node {
	return &models.Node{
		Type:    models.KindHeading,
		Attrs:   map[string]any{"level": level},
		Content: []*models.Node{models.NewText(text)},
	}
}

func TestRenderMarkdown(t *testing.T) {
	tests := []struct {
		name string
		doc  *models.Node
		want string
	}{
		{
			name: "heading paragraph image",
			doc: models.NewDoc(
				heading(1, "Title"),
				&models.Node{Type: models.KindParagraph, Content: []*models.Node{
					models.NewText("Hello "),
					{Type: models.KindText, Text: "world", Marks: []models.Mark{{Type: "bold"}}},
				}},
				img("http://x/1.png", "one"),
			),
			want: "# Title\n\nHello **world**\n\n![one](http://x/1.png)",
		},
		{
			name: "bullet list",
			doc: models.NewDoc(&models.Node{Type: models.KindBulletList, Content: []*models.Node{
				{Type: models.KindListItem, Content: []*models.Node{para("a")}},
				{Type: models.KindListItem, Content: []*models.Node{para("b")}},
			}}),
			want: "- a\n- b",
		},
		{
			name: "ordered list",
			doc: models.NewDoc(&models.Node{Type: models.KindOrderedList, Content: []*models.Node{
				{Type: models.KindListItem, Content: []*models.Node{para("first")}},
				{Type: models.KindListItem, Content: []*models.Node{para("second")}},
			}}),
			want: "1. first\n2. second",
		},
		{
			name: "code block",
			doc: models.NewDoc(&models.Node{
				Type:    models.KindCodeBlock,
				Attrs:   map[string]any{"language": "go"},
				Content: []*models.Node{models.NewText("fmt.Println()")},
			}),
			want: "```go\nfmt.Println()\n```",
		},
		{
			name: "link mark",
			doc: models.NewDoc(&models.Node{Type: models.KindParagraph, Content: []*models.Node{
				{Type: models.KindText, Text: "site", Marks: []models.Mark{{Type: "link", Attrs: map[string]any{"href": "https://example.com"}}}},
			}}),
			want: "[site](https://example.com)",
		},
		{
			name: "video and unknown container",
			doc: models.NewDoc(
				&models.Node{Type: "mystery", Content: []*models.Node{para("inside")}},
				video("http://x/clip.mp4"),
			),
			want: "inside\n\n[video](http://x/clip.mp4)",
		},
		{
			name: "nil",
			doc:  nil,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderMarkdown(tt.doc))
		})
	}
}

func TestHTMLRenderer_Render(t *testing.T) {
	r := NewHTMLRenderer()

	doc := models.NewDoc(
		heading(2, "Title"),
		para("<script>alert(1)</script>"),
		img("https://x/1.png", "one"),
		&models.Node{Type: models.KindYoutube, Attrs: map[string]any{"src": "https://www.youtube.com/watch?v=abc123"}},
		&models.Node{Type: models.KindParagraph, Content: []*models.Node{
			{Type: models.KindText, Text: "strong", Marks: []models.Mark{{Type: "bold"}}},
		}},
	)

	got := r.Render(doc)

	assert.Contains(t, got, "<h2>Title</h2>")
	assert.NotContains(t, got, "<script>")
	assert.Contains(t, got, `src="https://x/1.png"`)
	assert.Contains(t, got, "<figcaption>one</figcaption>")
	assert.Contains(t, got, "https://www.youtube-nocookie.com/embed/abc123")
	assert.Contains(t, got, "<strong>strong</strong>")
}

func TestHTMLRenderer_DropsUnsafeSources(t *testing.T) {
	r := NewHTMLRenderer()

	got := r.Render(models.NewDoc(
		img("javascript:alert(1)", ""),
		&models.Node{Type: models.KindYoutube, Attrs: map[string]any{"src": "https://evil.example/embed/x"}},
	))

	assert.NotContains(t, got, "javascript")
	assert.NotContains(t, got, "evil.example")
	assert.Empty(t, r.Render(nil))
}

func TestYoutubeEmbedURL(t *testing.T) {
	tests := map[string]string{
		"https://www.youtube.com/watch?v=abc123":  "https://www.youtube-nocookie.com/embed/abc123",
		"https://youtu.be/abc123":                 "https://www.youtube-nocookie.com/embed/abc123",
		"https://www.youtube.com/embed/abc123":    "https://www.youtube-nocookie.com/embed/abc123",
		"https://www.youtube.com/watch?v=a%22b":   "",
		"https://vimeo.com/123":                   "",
		"":                                        "",
	}
	for in, want := range tests {
		assert.Equal(t, want, youtubeEmbedURL(in), in)
	}
}

func TestPlainTextAndExcerpt(t *testing.T) {
	doc := models.NewDoc(
		heading(1, "Title"),
		para("The quick brown fox jumps"),
		img("http://x/1.png", "ignored"),
		&models.Node{Type: models.KindBulletList, Content: []*models.Node{
			{Type: models.KindListItem, Content: []*models.Node{para("item")}},
		}},
	)

	assert.Equal(t, "Title\nThe quick brown fox jumps\nitem", PlainText(doc))
	assert.Equal(t, 7, WordCount(doc))
	assert.Equal(t, "Title The…", Excerpt(doc, 12))
	assert.Equal(t, "Title The quick brown fox jumps item", Excerpt(doc, 0))
	assert.Empty(t, PlainText(nil))
}
