package portfolio

import (
	"encoding/base64"
	"fmt"
	"slices"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"folio/internal/domain"
	models "folio/internal/domain/models/portfolio"
)

// The selectors below never modify their input slice or the records in it.

// FilterByStatus keeps records with the given status.
func FilterByStatus(records []*models.ProjectRecord, status models.Status) []*models.ProjectRecord {
	return filter(records, func(r *models.ProjectRecord) bool { return r.Status == status })
}

// FilterByCategory keeps records in the given category. CategoryAll and the
// empty category keep everything.
func FilterByCategory(records []*models.ProjectRecord, category models.Category) []*models.ProjectRecord {
	if category == "" || category == models.CategoryAll {
		return filter(records, func(*models.ProjectRecord) bool { return true })
	}
	return filter(records, func(r *models.ProjectRecord) bool { return r.Category == category })
}

// SearchByText keeps records whose title, description or tags contain term,
// ignoring case. A blank term keeps everything.
func SearchByText(records []*models.ProjectRecord, term string) []*models.ProjectRecord {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(term))
	if needle == "" {
		return filter(records, func(*models.ProjectRecord) bool { return true })
	}
	return filter(records, func(r *models.ProjectRecord) bool {
		haystack := r.Title + "\n" + r.Description + "\n" + strings.Join(r.Tags, "\n")
		return strings.Contains(fold.String(haystack), needle)
	})
}

// SortRecords returns the records ordered by key. Equal keys keep their
// input order. An empty key sorts newest first.
func SortRecords(records []*models.ProjectRecord, key models.SortKey) []*models.ProjectRecord {
	out := slices.Clone(records)
	if out == nil {
		out = []*models.ProjectRecord{}
	}

	switch key.OrDefault() {
	case models.SortCreatedAsc:
		slices.SortStableFunc(out, func(a, b *models.ProjectRecord) int { return a.CreatedAt.Compare(b.CreatedAt) })
	case models.SortCreatedDesc:
		slices.SortStableFunc(out, func(a, b *models.ProjectRecord) int { return b.CreatedAt.Compare(a.CreatedAt) })
	case models.SortTitleAsc, models.SortTitleDesc:
		fold := cases.Fold()
		keys := make(map[*models.ProjectRecord]string, len(out))
		for _, r := range out {
			keys[r] = fold.String(r.Title)
		}
		desc := key == models.SortTitleDesc
		slices.SortStableFunc(out, func(a, b *models.ProjectRecord) int {
			c := strings.Compare(keys[a], keys[b])
			if desc {
				return -c
			}
			return c
		})
	}
	return out
}

// Group is one category section of a grouped listing.
type Group struct {
	Category models.Category         `json:"category"`
	Projects []*models.ProjectRecord `json:"projects"`
}

// GroupByCategory buckets records by category, keeping input order inside
// each bucket. Only non-empty categories appear.
func GroupByCategory(records []*models.ProjectRecord) map[models.Category][]*models.ProjectRecord {
	groups := make(map[models.Category][]*models.ProjectRecord)
	for _, r := range records {
		groups[r.Category] = append(groups[r.Category], r)
	}
	return groups
}

// OrderedGroups returns GroupByCategory as a list: known categories in
// display order, then any others by name.
func OrderedGroups(records []*models.ProjectRecord) []Group {
	byCategory := GroupByCategory(records)
	out := make([]Group, 0, len(byCategory))
	for _, c := range models.Categories {
		if rs, ok := byCategory[c]; ok {
			out = append(out, Group{Category: c, Projects: rs})
			delete(byCategory, c)
		}
	}
	rest := make([]models.Category, 0, len(byCategory))
	for c := range byCategory {
		rest = append(rest, c)
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	for _, c := range rest {
		out = append(out, Group{Category: c, Projects: byCategory[c]})
	}
	return out
}

// Paginate returns the window of up to pageSize records that follows
// cursor. An empty cursor starts at the beginning. The returned Next cursor
// is empty when the window reaches the end of records.
func Paginate(records []*models.ProjectRecord, pageSize int, cursor string) (models.Page, error) {
	if pageSize <= 0 {
		return models.Page{}, fmt.Errorf("%w: page size must be positive", domain.ErrValidation)
	}

	start := 0
	if cursor != "" {
		lastID, err := decodeCursor(cursor)
		if err != nil {
			return models.Page{}, err
		}
		idx := slices.IndexFunc(records, func(r *models.ProjectRecord) bool { return r.ID == lastID })
		if idx < 0 {
			return models.Page{}, fmt.Errorf("%w: cursor does not match this listing", domain.ErrValidation)
		}
		start = idx + 1
	}

	end := min(start+pageSize, len(records))
	page := models.Page{Items: slices.Clone(records[start:end])}
	if page.Items == nil {
		page.Items = []*models.ProjectRecord{}
	}
	if end < len(records) {
		page.Next = encodeCursor(records[end-1].ID)
	}
	return page, nil
}

func encodeCursor(lastID string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(lastID))
}

func decodeCursor(cursor string) (string, error) {
	b, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil || len(b) == 0 {
		return "", fmt.Errorf("%w: malformed cursor", domain.ErrValidation)
	}
	return string(b), nil
}

func filter(records []*models.ProjectRecord, keep func(*models.ProjectRecord) bool) []*models.ProjectRecord {
	out := make([]*models.ProjectRecord, 0, len(records))
	for _, r := range records {
		if r != nil && keep(r) {
			out = append(out, r)
		}
	}
	return out
}
