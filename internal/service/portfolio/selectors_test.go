package portfolio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/domain"
	models "folio/internal/domain/models/portfolio"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func rec(id, title string, category models.Category, day int) *models.ProjectRecord {
	return &models.ProjectRecord{
		ID:        id,
		Title:     title,
		Category:  category,
		Status:    models.StatusPublished,
		Tags:      []string{},
		CreatedAt: t0.AddDate(0, 0, day),
	}
}

func titles(records []*models.ProjectRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Title
	}
	return out
}

func ids(records []*models.ProjectRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestGroupBySortedTitle(t *testing.T) {
	records := []*models.ProjectRecord{
		rec("1", "B", models.CategoryCoding, 0),
		rec("2", "A", models.CategoryCoding, 1),
		rec("3", "C", models.CategoryPhotography, 2),
	}

	groups := GroupByCategory(SortRecords(records, models.SortTitleAsc))

	require.Len(t, groups, 2)
	assert.Equal(t, []string{"A", "B"}, titles(groups[models.CategoryCoding]))
	assert.Equal(t, []string{"C"}, titles(groups[models.CategoryPhotography]))
	_, hasLocalization := groups[models.CategoryLocalization]
	assert.False(t, hasLocalization)
}

func TestOrderedGroups(t *testing.T) {
	records := []*models.ProjectRecord{
		rec("1", "p", models.CategoryPhotography, 0),
		rec("2", "x", models.Category("Legacy"), 0),
		rec("3", "c", models.CategoryCoding, 0),
	}

	groups := OrderedGroups(records)

	require.Len(t, groups, 3)
	assert.Equal(t, models.CategoryCoding, groups[0].Category)
	assert.Equal(t, models.CategoryPhotography, groups[1].Category)
	assert.Equal(t, models.Category("Legacy"), groups[2].Category)
}

func TestSortRecords(t *testing.T) {
	records := []*models.ProjectRecord{
		rec("1", "banana", models.CategoryCoding, 2),
		rec("2", "Apple", models.CategoryCoding, 1),
		rec("3", "cherry", models.CategoryCoding, 1),
		rec("4", "apple", models.CategoryCoding, 3),
	}

	tests := []struct {
		key  models.SortKey
		want []string
	}{
		{models.SortCreatedAsc, []string{"2", "3", "1", "4"}},
		{models.SortCreatedDesc, []string{"4", "1", "2", "3"}},
		{"", []string{"4", "1", "2", "3"}},
		{models.SortTitleAsc, []string{"2", "4", "1", "3"}},
		{models.SortTitleDesc, []string{"3", "1", "2", "4"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			assert.Equal(t, tt.want, ids(SortRecords(records, tt.key)))
		})
	}

	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(records), "input untouched")
}

func TestFilters(t *testing.T) {
	draft := rec("d", "Draft thing", models.CategoryCoding, 0)
	draft.Status = models.StatusDraft
	tagged := rec("t", "Tagged", models.CategoryLocalization, 0)
	tagged.Tags = []string{"Subtitles", "Japanese"}
	tagged.Description = "Game translation"
	records := []*models.ProjectRecord{draft, tagged, rec("p", "Street", models.CategoryPhotography, 0)}

	assert.Equal(t, []string{"t", "p"}, ids(FilterByStatus(records, models.StatusPublished)))
	assert.Equal(t, []string{"d"}, ids(FilterByStatus(records, models.StatusDraft)))

	assert.Equal(t, []string{"p"}, ids(FilterByCategory(records, models.CategoryPhotography)))
	assert.Len(t, FilterByCategory(records, models.CategoryAll), 3)
	assert.Len(t, FilterByCategory(records, ""), 3)

	assert.Equal(t, []string{"t"}, ids(SearchByText(records, "japanese")))
	assert.Equal(t, []string{"t"}, ids(SearchByText(records, "TRANSLATION")))
	assert.Equal(t, []string{"p"}, ids(SearchByText(records, "street")))
	assert.Len(t, SearchByText(records, "  "), 3)
	assert.Empty(t, SearchByText(records, "nothing here"))
	assert.Empty(t, SearchByText(nil, "x"))
}

func TestSearchByText_CaseFolding(t *testing.T) {
	r := rec("1", "STRASSE Fotografie", models.CategoryPhotography, 0)
	assert.Len(t, SearchByText([]*models.ProjectRecord{r}, "straße"), 1)
}

func TestPaginate(t *testing.T) {
	var records []*models.ProjectRecord
	for i, id := range []string{"a", "b", "c", "d", "e"} {
		records = append(records, rec(id, id, models.CategoryCoding, i))
	}

	var seen []string
	cursor := ""
	for pages := 0; ; pages++ {
		require.Less(t, pages, 5, "pagination must terminate")
		page, err := Paginate(records, 2, cursor)
		require.NoError(t, err)
		seen = append(seen, ids(page.Items)...)
		if page.Next == "" {
			break
		}
		cursor = page.Next
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, seen)

	exact, err := Paginate(records[:4], 2, "")
	require.NoError(t, err)
	last, err := Paginate(records[:4], 2, exact.Next)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "d"}, ids(last.Items))
	assert.Empty(t, last.Next)

	empty, err := Paginate(nil, 3, "")
	require.NoError(t, err)
	assert.NotNil(t, empty.Items)
	assert.Empty(t, empty.Next)
}

func TestPaginate_Errors(t *testing.T) {
	records := []*models.ProjectRecord{rec("a", "a", models.CategoryCoding, 0)}

	_, err := Paginate(records, 0, "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = Paginate(records, 2, "!!not base64!!")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = Paginate(records, 2, encodeCursor("gone"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}
