package content

import (
	"fmt"
	"strings"

	models "folio/internal/domain/models/content"
)

// RenderMarkdown converts a content document to Markdown.
func RenderMarkdown(root *models.Node) string {
	if root == nil {
		return ""
	}
	var b strings.Builder
	if root.Type == models.KindDoc {
		for _, n := range root.Content {
			convertNode(&b, n, 0)
		}
	} else {
		convertNode(&b, root, 0)
	}
	return strings.TrimSpace(b.String())
}

func convertNode(b *strings.Builder, n *models.Node, level int) {
	if n == nil {
		return
	}
	switch n.Type {
	case models.KindHeading:
		depth, ok := n.IntAttr("level")
		if !ok || depth < 1 {
			depth = 1
		}
		b.WriteString(strings.Repeat("#", min(depth, 6)))
		b.WriteString(" ")
		writeInline(b, n.Content)
		b.WriteString("\n\n")
	case models.KindParagraph:
		writeInline(b, n.Content)
		b.WriteString("\n\n")
	case models.KindBulletList:
		for _, item := range n.Content {
			b.WriteString(strings.Repeat("  ", level))
			b.WriteString("- ")
			convertListItem(b, item, level)
		}
		if level == 0 {
			b.WriteString("\n")
		}
	case models.KindOrderedList:
		for i, item := range n.Content {
			b.WriteString(strings.Repeat("  ", level))
			fmt.Fprintf(b, "%d. ", i+1)
			convertListItem(b, item, level)
		}
		if level == 0 {
			b.WriteString("\n")
		}
	case models.KindListItem:
		convertListItem(b, n, level)
	case models.KindCodeBlock:
		b.WriteString("```")
		b.WriteString(n.StringAttr("language"))
		b.WriteString("\n")
		for _, c := range n.Content {
			if c != nil {
				b.WriteString(c.Text)
			}
		}
		b.WriteString("\n```\n\n")
	case models.KindBlockquote:
		for _, c := range n.Content {
			b.WriteString("> ")
			convertNode(b, c, 0)
		}
	case models.KindHorizontalRule:
		b.WriteString("---\n\n")
	case models.KindHardBreak:
		b.WriteString("  \n")
	case models.KindImage:
		if src := n.StringAttr("src"); src != "" {
			fmt.Fprintf(b, "![%s](%s)\n\n", n.StringAttr("alt"), src)
		}
	case models.KindVideo, models.KindYoutube:
		if src := n.StringAttr("src"); src != "" {
			fmt.Fprintf(b, "[video](%s)\n\n", src)
		}
	case models.KindText:
		b.WriteString(applyMarks(n.Text, n.Marks))
	default:
		for _, c := range n.Content {
			convertNode(b, c, level)
		}
	}
}

func convertListItem(b *strings.Builder, n *models.Node, level int) {
	if n == nil {
		b.WriteString("\n")
		return
	}
	wroteLine := false
	for _, c := range n.Content {
		if c == nil {
			continue
		}
		if c.Type == models.KindParagraph {
			if wroteLine {
				b.WriteString(strings.Repeat("  ", level+1))
			}
			writeInline(b, c.Content)
			b.WriteString("\n")
			wroteLine = true
			continue
		}
		if !wroteLine {
			b.WriteString("\n")
			wroteLine = true
		}
		convertNode(b, c, level+1)
	}
	if !wroteLine {
		b.WriteString("\n")
	}
}

func writeInline(b *strings.Builder, nodes []*models.Node) {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		switch n.Type {
		case models.KindText:
			b.WriteString(applyMarks(n.Text, n.Marks))
		case models.KindHardBreak:
			b.WriteString("  \n")
		case models.KindImage:
			if src := n.StringAttr("src"); src != "" {
				fmt.Fprintf(b, "![%s](%s)", n.StringAttr("alt"), src)
			}
		}
	}
}

func applyMarks(text string, marks []models.Mark) string {
	result := text
	var href string
	for _, m := range marks {
		switch m.Type {
		case "bold":
			result = "**" + result + "**"
		case "italic":
			result = "*" + result + "*"
		case "code":
			result = "`" + result + "`"
		case "strike":
			result = "~~" + result + "~~"
		case "link":
			href, _ = m.Attrs["href"].(string)
		}
	}
	if href != "" {
		result = "[" + result + "](" + href + ")"
	}
	return result
}
