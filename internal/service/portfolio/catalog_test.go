package portfolio

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/domain"
	models "folio/internal/domain/models/portfolio"
	"folio/internal/domain/services"
	"folio/internal/repository/memory"
)

const (
	enDoc = `{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"English body"}]},{"type":"image","attrs":{"src":"http://x/en.png","alt":"en"}},{"type":"video","attrs":{"src":"http://x/en.mp4"}}]}`
	zhDoc = `{"type":"doc","content":[{"type":"image","attrs":{"src":"http://x/zh.png"}},{"type":"paragraph","content":[{"type":"text","text":"中文"}]}]}`
)

type catalogFixture struct {
	svc  services.CatalogService
	repo *memory.ProjectRepository
}

func row(id, title string, category models.Category, status models.Status, day int, contentJSON string) *models.RawRecord {
	r := &models.RawRecord{
		ID:          id,
		Title:       title,
		Description: title + " description",
		Category:    string(category),
		Status:      string(status),
		Tags:        []string{},
		CreatedAt:   time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC),
	}
	r.UpdatedAt = r.CreatedAt
	if contentJSON != "" {
		r.Content = json.RawMessage(contentJSON)
	}
	return r
}

func newCatalog(t *testing.T, rows ...*models.RawRecord) catalogFixture {
	t.Helper()
	repo := memory.NewProjectRepository(testLogger())
	repo.Seed(rows...)
	return catalogFixture{
		svc:  NewCatalogService(repo, CatalogConfig{DefaultLanguage: "en", PageSize: 2}, testLogger()),
		repo: repo,
	}
}

func summaryIDs(items []services.ProjectSummary) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = s.ID
	}
	return out
}

func TestListPublished(t *testing.T) {
	ctx := context.Background()
	f := newCatalog(t,
		row("c1", "Compiler", models.CategoryCoding, models.StatusPublished, 1, ""),
		row("c2", "Crawler", models.CategoryCoding, models.StatusPublished, 2, ""),
		row("d1", "Secret", models.CategoryCoding, models.StatusDraft, 3, ""),
		row("l1", "Subtitles", models.CategoryLocalization, models.StatusPublished, 4, ""),
		row("p1", "Street", models.CategoryPhotography, models.StatusPublished, 5, ""),
	)

	first, err := f.svc.ListPublished(ctx, &services.ListPublishedRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "l1"}, summaryIDs(first.Items))
	require.NotEmpty(t, first.Next)

	second, err := f.svc.ListPublished(ctx, &services.ListPublishedRequest{Cursor: first.Next})
	require.NoError(t, err)
	assert.Equal(t, []string{"c2", "c1"}, summaryIDs(second.Items))
	assert.Empty(t, second.Next, "drafts never appear, so the listing ends here")

	coding, err := f.svc.ListPublished(ctx, &services.ListPublishedRequest{
		Category: models.CategoryCoding,
		Sort:     models.SortTitleAsc,
		PageSize: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c2"}, summaryIDs(coding.Items))

	search, err := f.svc.ListPublished(ctx, &services.ListPublishedRequest{Search: "CRAWL", Category: models.CategoryAll})
	require.NoError(t, err)
	assert.Equal(t, []string{"c2"}, summaryIDs(search.Items))

	_, err = f.svc.ListPublished(ctx, &services.ListPublishedRequest{Sort: "random"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.svc.ListPublished(ctx, &services.ListPublishedRequest{PageSize: 1000})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestListPublished_OneBadRecordDoesNotBreakListing(t *testing.T) {
	ctx := context.Background()
	broken, _ := json.Marshal("{not valid json")
	bad := row("bad", "Broken", models.CategoryCoding, models.StatusPublished, 1, "")
	bad.Content = broken
	f := newCatalog(t, bad, row("ok", "Fine", models.CategoryCoding, models.StatusPublished, 2, enDoc))

	page, err := f.svc.ListPublished(ctx, &services.ListPublishedRequest{PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"ok", "bad"}, summaryIDs(page.Items))
	assert.Equal(t, "http://x/en.png", page.Items[0].CoverURL)
	assert.Empty(t, page.Items[1].CoverURL)
}

func TestGroupedPublished(t *testing.T) {
	ctx := context.Background()
	f := newCatalog(t,
		row("b", "B", models.CategoryCoding, models.StatusPublished, 1, ""),
		row("a", "A", models.CategoryCoding, models.StatusPublished, 2, ""),
		row("c", "C", models.CategoryPhotography, models.StatusPublished, 3, ""),
		row("d", "D", models.CategoryLocalization, models.StatusDraft, 4, ""),
	)

	groups, err := f.svc.GroupedPublished(ctx, models.SortTitleAsc, "")
	require.NoError(t, err)

	require.Len(t, groups, 2)
	assert.Equal(t, models.CategoryCoding, groups[0].Category)
	assert.Equal(t, []string{"a", "b"}, summaryIDs(groups[0].Projects))
	assert.Equal(t, models.CategoryPhotography, groups[1].Category)
	assert.Equal(t, []string{"c"}, summaryIDs(groups[1].Projects))
}

func TestGetDetail(t *testing.T) {
	ctx := context.Background()
	localized := fmt.Sprintf(`{"en":%s,"zh":%s}`, enDoc, zhDoc)
	f := newCatalog(t,
		row("one", "One", models.CategoryCoding, models.StatusPublished, 1, localized),
		row("two", "Two", models.CategoryCoding, models.StatusPublished, 2, ""),
		row("draft", "Draft", models.CategoryCoding, models.StatusDraft, 3, enDoc),
	)

	detail, err := f.svc.GetDetail(ctx, "one", "")
	require.NoError(t, err)
	assert.Equal(t, "en", detail.Language)
	assert.Equal(t, "http://x/en.png", detail.Summary.CoverURL)
	require.Len(t, detail.Gallery, 2)
	assert.Equal(t, "http://x/en.mp4", detail.Gallery[1].Src)
	require.NotNil(t, detail.TextOnly)
	assert.Len(t, detail.TextOnly.Content, 1)
	assert.Contains(t, detail.HTML, "English body")
	assert.Equal(t, "English body", detail.Excerpt)
	require.NotNil(t, detail.Next)
	assert.Equal(t, "two", detail.Next.ID)

	zh, err := f.svc.GetDetail(ctx, "one", "zh")
	require.NoError(t, err)
	assert.Equal(t, "zh", zh.Language)
	assert.Equal(t, "http://x/zh.png", zh.Summary.CoverURL)

	fr, err := f.svc.GetDetail(ctx, "one", "fr")
	require.NoError(t, err)
	assert.Equal(t, "en", fr.Language, "unknown language falls back to en")

	last, err := f.svc.GetDetail(ctx, "two", "")
	require.NoError(t, err)
	assert.Nil(t, last.Document)
	assert.NotNil(t, last.Gallery)
	require.NotNil(t, last.Next)
	assert.Equal(t, "one", last.Next.ID, "next wraps around")

	_, err = f.svc.GetDetail(ctx, "draft", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.svc.GetDetail(ctx, "nope", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetDetail_PhotographyGalleryIsImagesOnly(t *testing.T) {
	ctx := context.Background()
	cover := "http://x/explicit.jpg"
	photo := row("p", "Photo", models.CategoryPhotography, models.StatusPublished, 1, enDoc)
	photo.CoverURL = &cover
	f := newCatalog(t, photo)

	detail, err := f.svc.GetDetail(ctx, "p", "")
	require.NoError(t, err)
	require.Len(t, detail.Gallery, 1)
	assert.Equal(t, "http://x/en.png", detail.Gallery[0].Src)
	assert.Equal(t, cover, detail.Summary.CoverURL, "explicit cover wins")
	assert.Nil(t, detail.Next, "alone in its category")
}

func TestGetDetail_LegacyStringContent(t *testing.T) {
	ctx := context.Background()
	legacy, _ := json.Marshal(enDoc)
	r := row("legacy", "Legacy", models.CategoryCoding, models.StatusPublished, 1, "")
	r.Content = legacy
	f := newCatalog(t, r)

	detail, err := f.svc.GetDetail(ctx, "legacy", "zh")
	require.NoError(t, err)
	assert.Empty(t, detail.Language)
	require.NotNil(t, detail.Document)
	assert.Equal(t, "http://x/en.png", detail.Summary.CoverURL)
}

func TestExportMarkdown(t *testing.T) {
	ctx := context.Background()
	f := newCatalog(t,
		row("one", "One", models.CategoryCoding, models.StatusPublished, 1, enDoc),
		row("empty", "Empty", models.CategoryCoding, models.StatusPublished, 2, ""),
	)

	md, err := f.svc.ExportMarkdown(ctx, "one", "")
	require.NoError(t, err)
	assert.Equal(t, "# One\n\nOne description\n\nEnglish body\n\n![en](http://x/en.png)\n\n[video](http://x/en.mp4)\n", md)

	md, err = f.svc.ExportMarkdown(ctx, "empty", "")
	require.NoError(t, err)
	assert.Equal(t, "# Empty\n\nEmpty description\n\n", md)
}

func TestNextProject(t *testing.T) {
	ctx := context.Background()
	f := newCatalog(t,
		row("a", "A", models.CategoryLocalization, models.StatusPublished, 1, ""),
		row("b", "B", models.CategoryLocalization, models.StatusPublished, 2, ""),
		row("c", "C", models.CategoryLocalization, models.StatusPublished, 3, ""),
		row("x", "X", models.CategoryCoding, models.StatusPublished, 4, ""),
	)

	for _, tt := range []struct{ from, want string }{{"a", "b"}, {"b", "c"}, {"c", "a"}} {
		next, err := f.svc.NextProject(ctx, tt.from)
		require.NoError(t, err)
		require.NotNil(t, next)
		assert.Equal(t, tt.want, next.ID)
	}

	alone, err := f.svc.NextProject(ctx, "x")
	require.NoError(t, err)
	assert.Nil(t, alone)
}

func TestRecentWork(t *testing.T) {
	ctx := context.Background()
	var rows []*models.RawRecord
	for i := 1; i <= 12; i++ {
		r := row(fmt.Sprintf("p%02d", i), "Photo", models.CategoryPhotography, models.StatusPublished, i, "")
		r.IsRecentWork = i != 12
		rows = append(rows, r)
	}
	draft := row("draft", "Draft", models.CategoryPhotography, models.StatusDraft, 20, "")
	draft.IsRecentWork = true
	rows = append(rows, draft)
	f := newCatalog(t, rows...)

	recent, err := f.svc.RecentWork(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"p11", "p10", "p09", "p08", "p07", "p06", "p05", "p04", "p03"}, summaryIDs(recent))
}
