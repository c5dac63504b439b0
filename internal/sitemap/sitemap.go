// Package sitemap encodes URL entries into sitemap XML conforming to the
// sitemaps.org protocol and the Google News, Image and Video extensions.
// The encoder produces one <url> fragment per entry and records which
// extension namespaces the enclosing document must declare; the document
// writer assembles fragments into physical sitemap files and a sitemap
// index, rotating files at the configured entry and byte ceilings.
package sitemap

// Namespace URIs declared on the <urlset> root element. The base sitemap
// and xhtml namespaces are always declared; the extension namespaces are
// declared only when at least one entry in the document uses them.
const (
	NamespaceSitemap = "http://www.sitemaps.org/schemas/sitemap/0.9"
	NamespaceXHTML   = "http://www.w3.org/1999/xhtml"
	NamespaceNews    = "http://www.google.com/schemas/sitemap-news/0.9"
	NamespaceImage   = "http://www.google.com/schemas/sitemap-image/1.1"
	NamespaceVideo   = "http://www.google.com/schemas/sitemap-video/1.1"
)

// dateOnlyFormat is the date-only layout for sitemap lastmod values (e.g. "2024-01-15").
const dateOnlyFormat = "2006-01-02"

// ChangeFreq describes how frequently a page is likely to change.
type ChangeFreq string

// Change frequency values defined by the sitemaps.org protocol.
const (
	Always  ChangeFreq = "always"
	Hourly  ChangeFreq = "hourly"
	Daily   ChangeFreq = "daily"
	Weekly  ChangeFreq = "weekly"
	Monthly ChangeFreq = "monthly"
	Yearly  ChangeFreq = "yearly"
	Never   ChangeFreq = "never"
)
