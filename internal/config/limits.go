package config

const (
	// MaxTitleLength is the maximum length for project titles.
	MaxTitleLength = 200

	// MaxDescriptionLength is the maximum length for the card description.
	// Long-form text belongs in the content document.
	MaxDescriptionLength = 2000

	// MaxTags is the maximum number of tags on a project.
	MaxTags = 20

	// MaxTagLength is the maximum length of a single tag.
	MaxTagLength = 50

	// DefaultPageSize is how many projects the public listing returns per
	// page when the client does not ask for a size.
	DefaultPageSize = 6

	// MaxPageSize caps client-requested page sizes.
	MaxPageSize = 50

	// RecentWorkLimit is how many photography projects the gallery's
	// recent-work strip shows.
	RecentWorkLimit = 9

	// ExcerptLength is the rune budget for generated page descriptions.
	ExcerptLength = 160

	// MaxBlockOps caps the operations accepted in one block-editing request.
	MaxBlockOps = 200

	// MaxUploadBytes is the largest media file accepted for upload (100 MB,
	// the media host's video limit on the free plan).
	MaxUploadBytes = 100 << 20
)
