package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFixturesAreValid(t *testing.T) {
	fixtures, err := loadFixtures("")
	require.NoError(t, err)
	require.NotEmpty(t, fixtures)

	for _, f := range fixtures {
		t.Run(f.Title, func(t *testing.T) {
			req, err := f.request()
			require.NoError(t, err)
			assert.True(t, req.Category.Valid())

			if req.Content == nil {
				return
			}
			if req.Content.Single != nil {
				assert.NoError(t, req.Content.Single.Validate())
			}
			for lang, doc := range req.Content.Localized {
				assert.NoError(t, doc.Validate(), lang)
			}
		})
	}
}

func TestFixtureContentShapes(t *testing.T) {
	fixtures, err := loadFixtures("")
	require.NoError(t, err)

	byTitle := map[string]fixture{}
	for _, f := range fixtures {
		byTitle[f.Title] = f
	}

	localized, err := byTitle["Static site generator"].request()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"en", "zh"}, localized.Content.Languages())

	single, err := byTitle["Game subtitle localization"].request()
	require.NoError(t, err)
	require.NotNil(t, single.Content.Single)
	assert.Len(t, single.Content.Single.Content, 2)
}
