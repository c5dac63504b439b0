package sitemap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeOptionsLastWriteWins(t *testing.T) {
	t.Parallel()

	base := Options{LastMod: "2024-01-01", ChangeFreq: Daily, Priority: "0.5"}
	mid := Options{ChangeFreq: Monthly}
	top := Options{Priority: "1.0"}

	merged := mergeOptions(base, mid, top)

	assert.Equal(t, "2024-01-01", merged.LastMod)
	assert.Equal(t, Monthly, merged.ChangeFreq)
	assert.Equal(t, "1.0", merged.Priority)
}

func TestMergeOptionsShallow(t *testing.T) {
	t.Parallel()

	base := Options{Images: []Image{{Loc: "a.jpg"}, {Loc: "b.jpg"}}}
	top := Options{Images: []Image{{Loc: "c.jpg"}}}

	merged := mergeOptions(base, top)

	// A later layer replaces the slice wholesale.
	require.Len(t, merged.Images, 1)
	assert.Equal(t, "c.jpg", merged.Images[0].Loc)
}

func TestBuiltinDefaults(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 15, 23, 30, 0, 0, time.UTC)
	defaults := builtinDefaults(now)

	assert.Equal(t, "2024-06-15", defaults.LastMod)
	assert.Equal(t, Daily, defaults.ChangeFreq)
	assert.Equal(t, "0.5", defaults.Priority)
}

func TestNormalizeLastMod(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"timestamp", "1655942400", "2022-06-23"},
		{"date", "2021-06-23", "2021-06-23"},
		{"empty", "", ""},
		{"mixed", "2021x", "2021x"},
		{"zero timestamp", "0", "1970-01-01"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, normalizeLastMod(tt.value))
		})
	}
}

func TestNewsValidate(t *testing.T) {
	t.Parallel()

	news := News{
		PublicationName: "The Example Times",
		Language:        "en",
		Genres:          "Blog",
		PublicationDate: "2024-01-15",
		Title:           "A Story",
		Keywords:        "news",
	}
	require.NoError(t, news.Validate())

	missing := news
	missing.Keywords = ""
	err := missing.Validate()
	require.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "news.keywords")
}

func TestFragmentBuilderCDATA(t *testing.T) {
	t.Parallel()

	var b fragmentBuilder
	b.cdata("news:title", "plain title")
	assert.Equal(t, "<news:title><![CDATA[plain title]]></news:title>", string(b.bytes()))
}

func TestFragmentBuilderSelfClosingEscapesAttrs(t *testing.T) {
	t.Parallel()

	var b fragmentBuilder
	b.selfClosing("xhtml:link", []Attr{
		{Name: "rel", Value: "alternate"},
		{Name: "href", Value: `https://x/?q="a"&r=<b>`},
	})

	assert.Equal(t,
		`<xhtml:link rel="alternate" href="https://x/?q=&quot;a&quot;&amp;r=&lt;b&gt;"/>`,
		string(b.bytes()))
}
