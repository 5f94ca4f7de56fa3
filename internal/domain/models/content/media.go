package content

import (
	"fmt"

	"folio/internal/domain"
)

// MediaReference points at an image or video found in a document. It is
// always computed from content, never stored on its own.
type MediaReference struct {
	Kind Kind   `json:"kind"`
	Src  string `json:"src"`
	Alt  string `json:"alt,omitempty"`
}

// MediaNode builds the node for a media reference. Kind defaults to image.
func MediaNode(ref MediaReference) (*Node, error) {
	kind := ref.Kind
	if kind == "" {
		kind = KindImage
	}
	if kind.Known() && !kind.IsMedia() {
		return nil, fmt.Errorf("%w: %q is not a media kind", domain.ErrInvalidNodeKind, kind)
	}
	attrs := map[string]any{"src": ref.Src}
	if ref.Alt != "" {
		attrs["alt"] = ref.Alt
	}
	return NewNode(kind, attrs, nil)
}
