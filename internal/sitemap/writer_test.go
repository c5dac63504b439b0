package sitemap_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/gositemap/internal/sitemap"
)

func newsOptions() *sitemap.Options {
	return &sitemap.Options{
		News: &sitemap.News{
			PublicationName: "The Example Times",
			Language:        "en",
			Genres:          "Blog",
			PublicationDate: "2024-01-15",
			Title:           "A Story",
			Keywords:        "news",
		},
	}
}

func readOutput(t *testing.T, dir, name string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(data)
}

func TestDocumentWriterSingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writer := sitemap.NewDocumentWriter(sitemap.WriterConfig{Dir: dir}, nil)
	enc := sitemap.NewEncoder(writer, writer.Capabilities(), sitemap.Options{})

	_, err := enc.Encode("https://example.com/a", nil)
	require.NoError(t, err)
	_, err = enc.Encode("https://example.com/b", nil)
	require.NoError(t, err)

	require.NoError(t, writer.Close())

	parts := writer.Parts()
	require.Len(t, parts, 1)
	assert.Equal(t, "sitemap_1.xml", parts[0].Name)
	assert.Equal(t, 2, parts[0].Entries)

	out := readOutput(t, dir, "sitemap_1.xml")
	assert.Contains(t, out, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, out, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`)
	assert.Contains(t, out, `xmlns:xhtml="http://www.w3.org/1999/xhtml"`)
	assert.Contains(t, out, "<loc>https://example.com/a</loc>")
	assert.Contains(t, out, "<loc>https://example.com/b</loc>")
	assert.Contains(t, out, "</urlset>")

	// No extension entries, no extension namespaces.
	assert.NotContains(t, out, "xmlns:news")
	assert.NotContains(t, out, "xmlns:image")
	assert.NotContains(t, out, "xmlns:video")
}

func TestDocumentWriterRotatesAtEntryCeiling(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writer := sitemap.NewDocumentWriter(sitemap.WriterConfig{Dir: dir, MaxEntries: 2}, nil)
	enc := sitemap.NewEncoder(writer, writer.Capabilities(), sitemap.Options{})

	urls := []string{
		"https://example.com/1",
		"https://example.com/2",
		"https://example.com/3",
		"https://example.com/4",
		"https://example.com/5",
	}
	for _, u := range urls {
		_, err := enc.Encode(u, nil)
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())

	parts := writer.Parts()
	require.Len(t, parts, 3)
	assert.Equal(t, 2, parts[0].Entries)
	assert.Equal(t, 2, parts[1].Entries)
	assert.Equal(t, 1, parts[2].Entries)

	first := readOutput(t, dir, "sitemap_1.xml")
	third := readOutput(t, dir, "sitemap_3.xml")
	assert.Contains(t, first, "https://example.com/1")
	assert.Contains(t, first, "https://example.com/2")
	assert.NotContains(t, first, "https://example.com/3")
	assert.Contains(t, third, "https://example.com/5")
}

func TestDocumentWriterNamespacesPerDocument(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writer := sitemap.NewDocumentWriter(sitemap.WriterConfig{Dir: dir, MaxEntries: 1}, nil)
	enc := sitemap.NewEncoder(writer, writer.Capabilities(), sitemap.Options{})

	_, err := enc.Encode("https://example.com/story", newsOptions())
	require.NoError(t, err)
	_, err = enc.Encode("https://example.com/plain", nil)
	require.NoError(t, err)

	require.NoError(t, writer.Close())
	require.Len(t, writer.Parts(), 2)

	withNews := readOutput(t, dir, "sitemap_1.xml")
	withoutNews := readOutput(t, dir, "sitemap_2.xml")

	// Capabilities reset on rotation: each file declares only what its
	// own entries need.
	assert.Contains(t, withNews, `xmlns:news="http://www.google.com/schemas/sitemap-news/0.9"`)
	assert.NotContains(t, withoutNews, "xmlns:news")
}

func TestDocumentWriterEmptyIsNoOp(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writer := sitemap.NewDocumentWriter(sitemap.WriterConfig{Dir: dir}, nil)

	require.NoError(t, writer.Close())
	assert.Empty(t, writer.Parts())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDocumentWriterClosedRejectsWrites(t *testing.T) {
	t.Parallel()

	writer := sitemap.NewDocumentWriter(sitemap.WriterConfig{Dir: t.TempDir()}, nil)
	require.NoError(t, writer.Close())

	_, err := writer.Write([]byte("<url></url>"))
	assert.ErrorIs(t, err, sitemap.ErrWriterClosed)
}

func TestDocumentWriterIndex(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writer := sitemap.NewDocumentWriter(sitemap.WriterConfig{Dir: dir, MaxEntries: 1}, nil)
	enc := sitemap.NewEncoder(writer, writer.Capabilities(), sitemap.Options{})

	_, err := enc.Encode("https://example.com/a", nil)
	require.NoError(t, err)
	_, err = enc.Encode("https://example.com/b", nil)
	require.NoError(t, err)

	require.NoError(t, writer.Close())

	indexPath, err := writer.WriteIndex("https://example.com")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "sitemap.xml"), indexPath)

	out := readOutput(t, dir, "sitemap.xml")
	assert.Contains(t, out, `<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	assert.Contains(t, out, "<loc>https://example.com/sitemap_1.xml</loc>")
	assert.Contains(t, out, "<loc>https://example.com/sitemap_2.xml</loc>")
	assert.Contains(t, out, "<lastmod>")
	assert.Contains(t, out, "</sitemapindex>")
}

func TestDocumentWriterIndexRequiresClose(t *testing.T) {
	t.Parallel()

	writer := sitemap.NewDocumentWriter(sitemap.WriterConfig{Dir: t.TempDir()}, nil)

	_, err := writer.WriteIndex("https://example.com")
	assert.Error(t, err)
}
