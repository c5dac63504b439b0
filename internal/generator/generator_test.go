package generator_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/gositemap/internal/config"
	"github.com/jonesrussell/gositemap/internal/generator"
	"github.com/jonesrussell/gositemap/internal/sitemap"
	"github.com/jonesrussell/gositemap/internal/source"
)

// fakeProvider returns a fixed entry slice or a fixed error.
type fakeProvider struct {
	name    string
	entries []source.Entry
	err     error
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) Entries(context.Context) ([]source.Entry, error) {
	return p.entries, p.err
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	return &config.Config{
		Sitemap: config.SitemapConfig{
			BaseURL:   "https://example.com",
			OutputDir: t.TempDir(),
		},
	}
}

func TestRunEncodesAllProviders(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	providers := []source.Provider{
		&fakeProvider{name: "one", entries: []source.Entry{
			{Loc: "https://example.com/a"},
			{Loc: "https://example.com/b"},
		}},
		&fakeProvider{name: "two", entries: []source.Entry{
			{Route: &sitemap.Route{
				Path:   "/articles/:slug",
				Params: map[string]string{"slug": "hello"},
			}},
		}},
	}

	summary, err := generator.New(cfg, nil, providers).Run(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, int64(3), summary.Entries)
	assert.Equal(t, int64(1), summary.Documents)
	assert.Positive(t, summary.Bytes)
	assert.Equal(t, filepath.Join(cfg.Sitemap.OutputDir, "sitemap.xml"), summary.IndexPath)
	require.Len(t, summary.Parts, 1)
	assert.Equal(t, 3, summary.Parts[0].Entries)

	doc, err := os.ReadFile(filepath.Join(cfg.Sitemap.OutputDir, "sitemap_1.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(doc), "<loc>https://example.com/a</loc>")
	assert.Contains(t, string(doc), "<loc>https://example.com/articles/hello</loc>")

	index, err := os.ReadFile(summary.IndexPath)
	require.NoError(t, err)
	assert.Contains(t, string(index), "<loc>https://example.com/sitemap_1.xml</loc>")
}

func TestRunAppliesEncoderDefaults(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Sitemap.DefaultChangeFreq = "weekly"
	cfg.Sitemap.DefaultPriority = "0.8"

	provider := &fakeProvider{name: "one", entries: []source.Entry{
		{Loc: "https://example.com/a"},
	}}

	summary, err := generator.New(cfg, nil, []source.Provider{provider}).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, summary.Parts, 1)

	doc, err := os.ReadFile(filepath.Join(cfg.Sitemap.OutputDir, "sitemap_1.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(doc), "<changefreq>weekly</changefreq>")
	assert.Contains(t, string(doc), "<priority>0.8</priority>")
}

func TestRunRotatesAtConfiguredCeiling(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Sitemap.MaxEntries = 2

	provider := &fakeProvider{name: "one", entries: []source.Entry{
		{Loc: "https://example.com/1"},
		{Loc: "https://example.com/2"},
		{Loc: "https://example.com/3"},
	}}

	summary, err := generator.New(cfg, nil, []source.Provider{provider}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), summary.Documents)
	require.Len(t, summary.Parts, 2)
	assert.Equal(t, 2, summary.Parts[0].Entries)
	assert.Equal(t, 1, summary.Parts[1].Entries)
}

func TestRunProviderErrorAborts(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("database gone")
	providers := []source.Provider{
		&fakeProvider{name: "broken", err: wantErr},
	}

	_, err := generator.New(testConfig(t), nil, providers).Run(context.Background())
	require.ErrorIs(t, err, wantErr)
	assert.Contains(t, err.Error(), "provider broken")
}

func TestRunEntryErrorAborts(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{name: "bad", entries: []source.Entry{
		{
			Loc: "https://example.com/story",
			Options: sitemap.Options{
				News: &sitemap.News{PublicationName: "The Example Times"},
			},
		},
	}}

	_, err := generator.New(testConfig(t), nil, []source.Provider{provider}).Run(context.Background())
	require.ErrorIs(t, err, sitemap.ErrMissingField)
	assert.Contains(t, err.Error(), "https://example.com/story")
}

func TestRunHonorsCancellation(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{name: "one", entries: []source.Entry{
		{Loc: "https://example.com/a"},
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := generator.New(testConfig(t), nil, []source.Provider{provider}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
