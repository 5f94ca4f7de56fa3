package portfolio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/domain"
	"folio/internal/domain/models/content"
)

func TestPublishGate(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		title       string
		description string
		wantErr     bool
	}{
		{"both present", "x", "x", false},
		{"empty title", "", "x", true},
		{"blank description", "x", "  \t", true},
		{"whitespace title", "   ", "x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &ProjectRecord{Title: tt.title, Description: tt.description, Status: StatusDraft}

			err := r.Publish(now)

			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrPublishValidationFailed)
				assert.ErrorIs(t, err, domain.ErrValidation)
				assert.Equal(t, StatusDraft, r.Status)
				assert.True(t, r.UpdatedAt.IsZero())
				return
			}
			require.NoError(t, err)
			assert.True(t, r.IsPublished())
			assert.Equal(t, now, r.UpdatedAt)
		})
	}
}

func TestUnpublishIsUngated(t *testing.T) {
	now := time.Now()
	r := &ProjectRecord{Status: StatusPublished}

	r.Unpublish(now)

	assert.Equal(t, StatusDraft, r.Status)
	assert.Equal(t, now, r.UpdatedAt)
}

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t, []string{"go", "cli", "Go"}, NormalizeTags([]string{" go", "", "cli", "go ", "Go", "  "}))
	assert.Equal(t, []string{}, NormalizeTags(nil))
}

func TestNormalize_RecentWorkOnlyForPhotography(t *testing.T) {
	r := &ProjectRecord{Title: " T ", Category: CategoryCoding, IsRecentWork: true}
	r.Normalize()
	assert.False(t, r.IsRecentWork)
	assert.Equal(t, "T", r.Title)

	p := &ProjectRecord{Category: CategoryPhotography, IsRecentWork: true}
	p.Normalize()
	assert.True(t, p.IsRecentWork)
}

func TestClone(t *testing.T) {
	cover := "http://x/c.png"
	r := &ProjectRecord{
		Tags:     []string{"a"},
		CoverURL: &cover,
		Content:  content.SingleBody(content.NewDoc(content.NewText("x"))),
	}

	cp := r.Clone()
	cp.Tags[0] = "b"
	*cp.CoverURL = "changed"
	cp.Content.Single.Content[0].Text = "y"

	assert.Equal(t, "a", r.Tags[0])
	assert.Equal(t, "http://x/c.png", *r.CoverURL)
	assert.Equal(t, "x", r.Content.Single.Content[0].Text)
	assert.Nil(t, (*ProjectRecord)(nil).Clone())
}

func TestProjectQueryValidate(t *testing.T) {
	assert.NoError(t, ProjectQuery{}.Validate())
	assert.NoError(t, ProjectQuery{Status: StatusPublished, Category: CategoryAll, Sort: SortTitleAsc, Limit: 6}.Validate())
	assert.Error(t, ProjectQuery{Status: "archived"}.Validate())
	assert.Error(t, ProjectQuery{Category: "Cooking"}.Validate())
	assert.Error(t, ProjectQuery{Sort: "random"}.Validate())
	assert.Error(t, ProjectQuery{Limit: -1}.Validate())
}
