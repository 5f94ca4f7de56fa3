package content

import (
	"strings"
	"unicode/utf8"

	models "folio/internal/domain/models/content"
)

// lineBlocks hold inline content and end a line of plain text.
var lineBlocks = map[models.Kind]bool{
	models.KindParagraph: true,
	models.KindHeading:   true,
	models.KindCodeBlock: true,
}

// PlainText returns the readable text of a document with one line per
// block. Media nodes contribute nothing.
func PlainText(root *models.Node) string {
	var lines []string
	var b strings.Builder
	flush := func() {
		if line := strings.TrimSpace(b.String()); line != "" {
			lines = append(lines, line)
		}
		b.Reset()
	}

	var visit func(n *models.Node)
	visit = func(n *models.Node) {
		if n == nil {
			return
		}
		switch {
		case n.Type == models.KindText:
			b.WriteString(n.Text)
		case n.Type == models.KindHardBreak:
			b.WriteString(" ")
		case lineBlocks[n.Type]:
			flush()
			for _, c := range n.Content {
				visit(c)
			}
			flush()
		default:
			for _, c := range n.Content {
				visit(c)
			}
		}
	}
	visit(root)
	flush()
	return strings.Join(lines, "\n")
}

// Excerpt returns at most maxRunes runes of the document's text on a single
// line, cut at a word boundary with a trailing ellipsis when shortened.
func Excerpt(root *models.Node, maxRunes int) string {
	text := strings.Join(strings.Fields(PlainText(root)), " ")
	if maxRunes <= 0 || utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	runes := []rune(text)
	cut := string(runes[:maxRunes])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}

// WordCount counts whitespace-separated words in the document.
func WordCount(root *models.Node) int {
	return len(strings.Fields(PlainText(root)))
}
