package source

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPostgresProviderTableName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		table string
		valid bool
	}{
		{"sitemap_urls", true},
		{"Urls2", true},
		{"_private", true},
		{"", false},
		{"urls; DROP TABLE users", false},
		{"public.urls", false},
		{"2urls", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.table, func(t *testing.T) {
			t.Parallel()

			provider, err := NewPostgresProvider(nil, tt.table, nil)
			if tt.valid {
				require.NoError(t, err)
				assert.Equal(t, "postgres:"+tt.table, provider.Name())
			} else {
				assert.ErrorIs(t, err, ErrInvalidTableName)
			}
		})
	}
}

func TestRowToEntry(t *testing.T) {
	t.Parallel()

	row := &urlRow{
		Loc:        "https://example.com/story",
		LastMod:    sql.NullString{String: "2024-01-15", Valid: true},
		ChangeFreq: sql.NullString{String: "hourly", Valid: true},
		Priority:   sql.NullString{String: "0.9", Valid: true},
		News: []byte(`{
			"publication_name": "The Example Times",
			"language": "en",
			"genres": "Blog",
			"publication_date": "2024-01-15",
			"title": "A Story",
			"keywords": "news"
		}`),
		Images:     []byte(`[{"loc": "https://example.com/a.png"}]`),
		Alternates: []byte(`[{"href": "https://example.com/en", "attrs": [{"name": "hreflang", "value": "en"}]}]`),
	}

	entry, err := rowToEntry(row)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/story", entry.Loc)
	assert.Equal(t, "2024-01-15", entry.Options.LastMod)
	assert.Equal(t, "0.9", entry.Options.Priority)
	require.NotNil(t, entry.Options.News)
	assert.Equal(t, "A Story", entry.Options.News.Title)
	require.Len(t, entry.Options.Images, 1)
	assert.Equal(t, "https://example.com/a.png", entry.Options.Images[0].Loc)
	require.Len(t, entry.Options.Alternates, 1)
	assert.Equal(t, "en", entry.Options.Alternates[0].Attrs[0].Value)
	assert.Nil(t, entry.Route)
}

func TestRowToEntryNullColumns(t *testing.T) {
	t.Parallel()

	entry, err := rowToEntry(&urlRow{Loc: "https://example.com/"})
	require.NoError(t, err)

	assert.Empty(t, entry.Options.LastMod)
	assert.Nil(t, entry.Options.News)
	assert.Empty(t, entry.Options.Images)
}

func TestRowToEntryBadPayload(t *testing.T) {
	t.Parallel()

	_, err := rowToEntry(&urlRow{
		Loc:  "https://example.com/",
		News: []byte(`{not json`),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "news")
}
