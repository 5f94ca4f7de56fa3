package content

import (
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	models "folio/internal/domain/models/content"
)

var youtubeEmbed = regexp.MustCompile(`^https://www\.youtube-nocookie\.com/embed/[A-Za-z0-9_-]+$`)

// HTMLRenderer renders content documents to HTML for read-only viewing.
// Output is passed through a UGC sanitizer policy, so documents written
// by any editor version are safe to embed.
//
// Thread-safe for concurrent use.
type HTMLRenderer struct {
	policy *bluemonday.Policy
}

// NewHTMLRenderer creates a renderer with the viewer's sanitizer policy.
func NewHTMLRenderer() *HTMLRenderer {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("figure", "figcaption")
	policy.AllowAttrs("loading").Matching(regexp.MustCompile(`^lazy$`)).OnElements("img")
	policy.AllowAttrs("controls").OnElements("video")
	policy.AllowAttrs("src").OnElements("video")
	policy.AllowAttrs("class").Matching(regexp.MustCompile(`^(youtube-video|language-[A-Za-z0-9_+-]+)$`)).OnElements("div", "code")
	policy.AllowAttrs("src").Matching(youtubeEmbed).OnElements("iframe")
	policy.AllowAttrs("width", "height").Matching(bluemonday.Integer).OnElements("iframe")
	policy.AllowAttrs("allowfullscreen").OnElements("iframe")

	return &HTMLRenderer{policy: policy}
}

// Render converts a document to sanitized HTML.
func (r *HTMLRenderer) Render(root *models.Node) string {
	if root == nil {
		return ""
	}
	var b strings.Builder
	writeHTML(&b, root)
	return r.policy.Sanitize(b.String())
}

func writeHTML(b *strings.Builder, n *models.Node) {
	if n == nil {
		return
	}
	switch n.Type {
	case models.KindDoc:
		writeChildren(b, n)
	case models.KindParagraph:
		wrap(b, "p", n)
	case models.KindHeading:
		level, ok := n.IntAttr("level")
		if !ok || level < 1 {
			level = 1
		}
		wrap(b, fmt.Sprintf("h%d", min(level, 6)), n)
	case models.KindBlockquote:
		wrap(b, "blockquote", n)
	case models.KindBulletList:
		wrap(b, "ul", n)
	case models.KindOrderedList:
		wrap(b, "ol", n)
	case models.KindListItem:
		wrap(b, "li", n)
	case models.KindCodeBlock:
		b.WriteString("<pre><code")
		if lang := n.StringAttr("language"); lang != "" {
			fmt.Fprintf(b, ` class="language-%s"`, html.EscapeString(lang))
		}
		b.WriteString(">")
		for _, c := range n.Content {
			if c != nil {
				b.WriteString(html.EscapeString(c.Text))
			}
		}
		b.WriteString("</code></pre>")
	case models.KindHorizontalRule:
		b.WriteString("<hr>")
	case models.KindHardBreak:
		b.WriteString("<br>")
	case models.KindText:
		writeText(b, n)
	case models.KindImage:
		src := n.StringAttr("src")
		if src == "" {
			return
		}
		alt := n.StringAttr("alt")
		fmt.Fprintf(b, `<figure><img src="%s" alt="%s" loading="lazy">`, html.EscapeString(src), html.EscapeString(alt))
		if alt != "" {
			fmt.Fprintf(b, "<figcaption>%s</figcaption>", html.EscapeString(alt))
		}
		b.WriteString("</figure>")
	case models.KindVideo:
		if src := n.StringAttr("src"); src != "" {
			fmt.Fprintf(b, `<figure><video controls src="%s"></video></figure>`, html.EscapeString(src))
		}
	case models.KindYoutube:
		if embed := youtubeEmbedURL(n.StringAttr("src")); embed != "" {
			fmt.Fprintf(b, `<div class="youtube-video"><iframe src="%s" width="640" height="360" allowfullscreen></iframe></div>`, embed)
		}
	default:
		writeChildren(b, n)
	}
}

func wrap(b *strings.Builder, tag string, n *models.Node) {
	b.WriteString("<" + tag + ">")
	writeChildren(b, n)
	b.WriteString("</" + tag + ">")
}

func writeChildren(b *strings.Builder, n *models.Node) {
	for _, c := range n.Content {
		writeHTML(b, c)
	}
}

func writeText(b *strings.Builder, n *models.Node) {
	text := html.EscapeString(n.Text)
	for _, m := range n.Marks {
		switch m.Type {
		case "bold":
			text = "<strong>" + text + "</strong>"
		case "italic":
			text = "<em>" + text + "</em>"
		case "underline":
			text = "<u>" + text + "</u>"
		case "strike":
			text = "<s>" + text + "</s>"
		case "code":
			text = "<code>" + text + "</code>"
		case "link":
			if href, _ := m.Attrs["href"].(string); href != "" {
				text = `<a href="` + html.EscapeString(href) + `">` + text + "</a>"
			}
		}
	}
	b.WriteString(text)
}

// youtubeEmbedURL turns a watch, short or embed URL into a privacy-enhanced
// embed URL. Anything else yields "".
func youtubeEmbedURL(src string) string {
	u, err := url.Parse(src)
	if err != nil {
		return ""
	}
	var id string
	switch strings.TrimPrefix(u.Hostname(), "www.") {
	case "youtube.com", "m.youtube.com", "youtube-nocookie.com":
		if strings.HasPrefix(u.Path, "/embed/") {
			id = strings.TrimPrefix(u.Path, "/embed/")
		} else {
			id = u.Query().Get("v")
		}
	case "youtu.be":
		id = strings.TrimPrefix(u.Path, "/")
	}
	embed := "https://www.youtube-nocookie.com/embed/" + id
	if id == "" || !youtubeEmbed.MatchString(embed) {
		return ""
	}
	return embed
}
