package content

import (
	"sort"

	models "folio/internal/domain/models/content"
)

// Fallback languages tried after the requested one, in order.
var fallbackLanguages = []string{"en", "zh"}

// ResolveLocalized picks the document to show for a record: the requested
// language, then "en", then "zh", then the first remaining language in key
// order. A bare (legacy) document is returned as-is whatever the request.
func ResolveLocalized(body *models.Body, preferredLang string) *models.Node {
	if body == nil {
		return nil
	}
	if body.Single != nil {
		return body.Single
	}
	if len(body.Localized) == 0 {
		return nil
	}

	if preferredLang != "" {
		if doc := body.Localized[preferredLang]; doc != nil {
			return doc
		}
	}
	for _, lang := range fallbackLanguages {
		if doc := body.Localized[lang]; doc != nil {
			return doc
		}
	}

	langs := body.Languages()
	sort.Strings(langs)
	if len(langs) == 0 {
		return nil
	}
	return body.Localized[langs[0]]
}

// FindFirstMedia returns the first image or video in document order
// (depth-first, pre-order), or nil when there is none.
func FindFirstMedia(root *models.Node) *models.MediaReference {
	var found *models.MediaReference
	walk(root, func(n *models.Node) bool {
		if ref, ok := mediaRef(n); ok {
			found = &ref
			return false
		}
		return true
	})
	return found
}

// CollectAllMedia returns every image and video in document order.
func CollectAllMedia(root *models.Node) []models.MediaReference {
	return collect(root, func(n *models.Node) bool { return true })
}

// CollectImages returns only image references, for photo galleries.
func CollectImages(root *models.Node) []models.MediaReference {
	return collect(root, func(n *models.Node) bool { return n.Type == models.KindImage })
}

// StripMediaNodes returns a copy of the tree with every image and video node
// removed from its parent. Sibling order and all other nodes are preserved.
// The input is not modified.
func StripMediaNodes(root *models.Node) *models.Node {
	if root == nil || root.Type.IsMedia() {
		return nil
	}
	head := &models.Node{Type: root.Type, Attrs: root.Attrs, Text: root.Text, Marks: root.Marks}
	out := head.Clone()
	if root.Content != nil {
		out.Content = make([]*models.Node, 0, len(root.Content))
		for _, child := range root.Content {
			if child == nil || child.Type.IsMedia() {
				continue
			}
			out.Content = append(out.Content, StripMediaNodes(child))
		}
	}
	return out
}

func collect(root *models.Node, keep func(*models.Node) bool) []models.MediaReference {
	refs := []models.MediaReference{}
	walk(root, func(n *models.Node) bool {
		if ref, ok := mediaRef(n); ok && keep(n) {
			refs = append(refs, ref)
		}
		return true
	})
	return refs
}

// walk visits nodes depth-first in pre-order until visit returns false.
// Nil children are skipped; unknown kinds are descended into like any other
// container.
func walk(n *models.Node, visit func(*models.Node) bool) bool {
	if n == nil {
		return true
	}
	if !visit(n) {
		return false
	}
	for _, child := range n.Content {
		if !walk(child, visit) {
			return false
		}
	}
	return true
}

func mediaRef(n *models.Node) (models.MediaReference, bool) {
	if !n.Type.IsMedia() {
		return models.MediaReference{}, false
	}
	src := n.StringAttr("src")
	if src == "" {
		return models.MediaReference{}, false
	}
	return models.MediaReference{Kind: n.Type, Src: src, Alt: n.StringAttr("alt")}, true
}
