package portfolio

import (
	"slices"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// SortKey orders record listings.
type SortKey string

const (
	SortCreatedDesc SortKey = "createdDesc"
	SortCreatedAsc  SortKey = "createdAsc"
	SortTitleAsc    SortKey = "titleAsc"
	SortTitleDesc   SortKey = "titleDesc"
)

// SortKeys lists the accepted sort keys; the first is the default.
var SortKeys = []SortKey{SortCreatedDesc, SortCreatedAsc, SortTitleAsc, SortTitleDesc}

// Valid reports whether k is a known sort key.
func (k SortKey) Valid() bool {
	return slices.Contains(SortKeys, k)
}

// OrDefault returns k, or the default key when k is empty.
func (k SortKey) OrDefault() SortKey {
	if k == "" {
		return SortCreatedDesc
	}
	return k
}

// ProjectQuery is an equality-filtered, sorted read against the store.
// Zero values mean "any" (Status, Category), default order (Sort) and
// no limit (Limit).
type ProjectQuery struct {
	Status   Status
	Category Category
	Sort     SortKey
	Limit    int
}

// Validate checks filter values.
func (q ProjectQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Status, validation.In(StatusDraft, StatusPublished)),
		validation.Field(&q.Category, validation.In(CategoryCoding, CategoryLocalization, CategoryPhotography, CategoryAll)),
		validation.Field(&q.Sort, validation.In(SortCreatedDesc, SortCreatedAsc, SortTitleAsc, SortTitleDesc)),
		validation.Field(&q.Limit, validation.Min(0)),
	)
}

// Page is one window of a listing. An empty Next means there is nothing
// after this page.
type Page struct {
	Items []*ProjectRecord `json:"items"`
	Next  string           `json:"next,omitempty"`
}
