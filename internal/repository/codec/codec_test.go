package codec

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/domain"
	"folio/internal/domain/models/content"
	"folio/internal/domain/models/portfolio"
)

const docJSON = `{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"hi"}]},{"type":"image","attrs":{"src":"http://x/1.png"}}]}`

func quoted(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		raw   json.RawMessage
		shape Shape
	}{
		{"nil", nil, Absent},
		{"json null", json.RawMessage(`null`), Absent},
		{"empty string", quoted("  "), Absent},
		{"string holding json", quoted(docJSON), RawString},
		{"broken string", quoted("{not valid json"), RawString},
		{"object", json.RawMessage(docJSON), NativeObject},
		{"language map", json.RawMessage(`{"en":` + docJSON + `}`), NativeObject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.shape, Classify(tt.raw).Shape)
		})
	}
}

func TestDeserialize_ContentShapes(t *testing.T) {
	want, err := content.Decode([]byte(docJSON))
	require.NoError(t, err)

	t.Run("native object returned unchanged", func(t *testing.T) {
		r := Deserialize(&portfolio.RawRecord{ID: "1", Content: json.RawMessage(docJSON)})
		require.False(t, r.ContentParseFailed)
		require.NotNil(t, r.Content)
		assert.True(t, content.Equal(want, r.Content.Single))
	})

	t.Run("legacy string", func(t *testing.T) {
		r := Deserialize(&portfolio.RawRecord{ID: "2", Content: quoted(docJSON)})
		require.False(t, r.ContentParseFailed)
		assert.True(t, content.Equal(want, r.Content.Single))
	})

	t.Run("localized object", func(t *testing.T) {
		r := Deserialize(&portfolio.RawRecord{ID: "3", Content: json.RawMessage(`{"en":` + docJSON + `,"zh":` + docJSON + `}`)})
		require.NotNil(t, r.Content)
		assert.ElementsMatch(t, []string{"en", "zh"}, r.Content.Languages())
	})

	t.Run("absent", func(t *testing.T) {
		r := Deserialize(&portfolio.RawRecord{ID: "4"})
		assert.Nil(t, r.Content)
		assert.False(t, r.ContentParseFailed)
		assert.Equal(t, []string{}, r.Tags)
	})

	t.Run("unparseable string", func(t *testing.T) {
		r := Deserialize(&portfolio.RawRecord{ID: "5", Title: "kept", Content: quoted("{not valid json")})
		assert.Nil(t, r.Content)
		assert.True(t, r.ContentParseFailed)
		assert.ErrorIs(t, r.ContentErr, domain.ErrDeserializeParseFailure)
		assert.Equal(t, "kept", r.Title)
	})

	t.Run("scalar", func(t *testing.T) {
		r := Deserialize(&portfolio.RawRecord{ID: "6", Content: json.RawMessage(`42`)})
		assert.True(t, r.ContentParseFailed)
	})
}

func TestSerialize_WritesNativeObject(t *testing.T) {
	doc, err := content.Decode([]byte(docJSON))
	require.NoError(t, err)
	now := time.Now().UTC()

	r := &portfolio.ProjectRecord{
		ID:        "1",
		Title:     "T",
		Category:  portfolio.CategoryCoding,
		Status:    portfolio.StatusDraft,
		Content:   content.LocalizedBody(content.Localized{"en": doc}),
		CreatedAt: now,
		UpdatedAt: now,
	}

	raw, err := Serialize(r)
	require.NoError(t, err)
	assert.Equal(t, NativeObject, Classify(raw.Content).Shape)
	assert.Equal(t, []string{}, raw.Tags)

	back := Deserialize(raw)
	require.False(t, back.ContentParseFailed)
	assert.True(t, content.Equal(doc, back.Content.Localized["en"]))
	assert.Equal(t, r.Title, back.Title)
	assert.Equal(t, r.Category, back.Category)
}

func TestSerialize_EmptyContentIsAbsent(t *testing.T) {
	raw, err := Serialize(&portfolio.ProjectRecord{ID: "1"})
	require.NoError(t, err)
	assert.Nil(t, raw.Content)

	raw, err = Serialize(&portfolio.ProjectRecord{ID: "1", Content: content.LocalizedBody(content.Localized{})})
	require.NoError(t, err)
	assert.Nil(t, raw.Content)
}

func TestSerialize_KeepsUnreadableContent(t *testing.T) {
	stored := quoted("{broken")
	r := Deserialize(&portfolio.RawRecord{ID: "p1", Category: "Coding", Status: "draft", Content: stored})
	require.True(t, r.ContentParseFailed)

	r.Title = "Renamed"
	raw, err := Serialize(r)
	require.NoError(t, err)
	assert.Equal(t, string(stored), string(raw.Content))

	r.ReplaceContent(content.SingleBody(content.NewDoc()))
	raw, err = Serialize(r)
	require.NoError(t, err)
	assert.Contains(t, string(raw.Content), `"type":"doc"`)
	assert.NotContains(t, string(raw.Content), "broken")
}

func TestDeserializeAll_OneBadRecordDoesNotFailListing(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	records := DeserializeAll(logger, []*portfolio.RawRecord{
		{ID: "good", Content: json.RawMessage(docJSON)},
		{ID: "bad", Content: quoted("{not valid json")},
		{ID: "empty"},
	})

	require.Len(t, records, 3)
	assert.NotNil(t, records[0].Content)
	assert.True(t, records[1].ContentParseFailed)
	assert.Nil(t, records[2].Content)
	assert.Contains(t, logs.String(), `"id":"bad"`)
	assert.NotContains(t, logs.String(), `"id":"good"`)
}
