package discover_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/gositemap/internal/config"
	"github.com/jonesrussell/gositemap/internal/discover"
	"github.com/jonesrussell/gositemap/internal/source"
)

func testSite(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`<html><head>
<link rel="alternate" hreflang="en" href="/en/"/>
<link rel="alternate" hreflang="fr" href="/fr/"/>
</head><body>
<a href="/about">About</a>
<a href="/about">About again</a>
</body></html>`))
	})
	mux.HandleFunc("/about", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Last-Modified", "Mon, 15 Jan 2024 10:00:00 GMT")
		_, _ = w.Write([]byte(`<html><head>
<link rel="canonical" href="/about"/>
</head><body>About us</body></html>`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func findEntry(entries []source.Entry, loc string) *source.Entry {
	for i := range entries {
		if entries[i].Loc == loc {
			return &entries[i]
		}
	}
	return nil
}

func TestProviderWalksSite(t *testing.T) {
	t.Parallel()

	site := testSite(t)
	provider := discover.NewProvider(config.DiscoverConfig{
		Name:     "test",
		URL:      site.URL + "/",
		MaxDepth: 2,
	}, nil)

	assert.Equal(t, "discover:test", provider.Name())

	entries, err := provider.Entries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	home := findEntry(entries, site.URL+"/")
	require.NotNil(t, home, "home page entry missing")
	require.Len(t, home.Options.Alternates, 2)
	assert.Equal(t, site.URL+"/en/", home.Options.Alternates[0].Href)
	require.Len(t, home.Options.Alternates[0].Attrs, 1)
	assert.Equal(t, "hreflang", home.Options.Alternates[0].Attrs[0].Name)
	assert.Equal(t, "en", home.Options.Alternates[0].Attrs[0].Value)

	about := findEntry(entries, site.URL+"/about")
	require.NotNil(t, about, "about page entry missing")
	assert.Equal(t, "2024-01-15", about.Options.LastMod)
}

func TestProviderDepthLimit(t *testing.T) {
	t.Parallel()

	site := testSite(t)
	provider := discover.NewProvider(config.DiscoverConfig{
		Name:     "shallow",
		URL:      site.URL + "/",
		MaxDepth: 1,
	}, nil)

	entries, err := provider.Entries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, site.URL+"/", entries[0].Loc)
}

func TestProviderInvalidStartURL(t *testing.T) {
	t.Parallel()

	provider := discover.NewProvider(config.DiscoverConfig{
		Name: "bad",
		URL:  "://not-a-url",
	}, nil)

	_, err := provider.Entries(context.Background())
	assert.Error(t, err)
}
