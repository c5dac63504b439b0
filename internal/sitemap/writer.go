package sitemap

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonesrussell/gositemap/internal/logger"
)

// Writer defaults. The ceilings follow the sitemaps.org limits of 50,000
// URLs and 50 MB per file.
const (
	DefaultMaxEntries  = 50000
	DefaultMaxBytes    = 50 * 1024 * 1024
	DefaultFilePattern = "sitemap_%d.xml"
	DefaultIndexFile   = "sitemap.xml"
)

const (
	xmlProlog = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

	dirPerm  = 0o755
	filePerm = 0o644
)

// WriterConfig configures a DocumentWriter.
type WriterConfig struct {
	// Dir is the output directory for sitemap files.
	Dir string
	// MaxEntries is the URL ceiling per file before rotation.
	MaxEntries int
	// MaxBytes is the approximate byte ceiling per file before rotation,
	// checked at entry boundaries so entries are never split.
	MaxBytes int
	// FilePattern names rotated files; it must contain one %d verb.
	FilePattern string
	// IndexFile names the sitemap index document.
	IndexFile string
}

// applyDefaults fills unset fields with the package defaults.
func (c *WriterConfig) applyDefaults() {
	if c.MaxEntries <= 0 {
		c.MaxEntries = DefaultMaxEntries
	}
	if c.MaxBytes <= 0 {
		c.MaxBytes = DefaultMaxBytes
	}
	if c.FilePattern == "" {
		c.FilePattern = DefaultFilePattern
	}
	if c.IndexFile == "" {
		c.IndexFile = DefaultIndexFile
	}
}

// Part describes one finalized sitemap file.
type Part struct {
	Name    string
	Entries int
	LastMod string
}

// DocumentWriter assembles encoded URL fragments into physical sitemap
// files. Entries buffer in memory until the file is finalized, because
// the <urlset> namespace declarations depend on which extensions the
// document's entries ended up using — the opening tag cannot be written
// until the document is complete.
//
// Rotation happens at entry boundaries when either ceiling is reached.
// The writer is not safe for concurrent use.
type DocumentWriter struct {
	cfg  WriterConfig
	log  logger.Interface
	caps Capabilities

	buf     bytes.Buffer
	entries int
	parts   []Part
	closed  bool
	err     error

	now func() time.Time
}

// NewDocumentWriter creates a document writer for the configured output
// directory.
func NewDocumentWriter(cfg WriterConfig, log logger.Interface) *DocumentWriter {
	cfg.applyDefaults()
	if log == nil {
		log = logger.NewNoOp()
	}

	return &DocumentWriter{
		cfg: cfg,
		log: log,
		now: time.Now,
	}
}

// Capabilities returns the capability flags for the current document.
// The encoder sets flags here; the writer resets them on rotation.
func (w *DocumentWriter) Capabilities() *Capabilities {
	return &w.caps
}

// IncrementEntryCount records one more entry for the current document,
// rotating to a new document first when a ceiling has been reached.
// A rotation failure is sticky and surfaces on the next Write or Close.
func (w *DocumentWriter) IncrementEntryCount() {
	if w.closed || w.err != nil {
		return
	}

	if w.entries >= w.cfg.MaxEntries || w.buf.Len() >= w.cfg.MaxBytes {
		if err := w.flush(); err != nil {
			w.err = err
			return
		}
	}

	w.entries++
}

// Write buffers an encoded fragment for the current document.
func (w *DocumentWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, ErrWriterClosed
	}
	if w.err != nil {
		return 0, w.err
	}

	return w.buf.Write(p)
}

// Close finalizes the current document, if any, and marks the writer
// closed. Further writes fail with ErrWriterClosed.
func (w *DocumentWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if w.err != nil {
		return w.err
	}

	return w.flush()
}

// Parts returns the finalized sitemap files, in order.
func (w *DocumentWriter) Parts() []Part {
	return w.parts
}

// flush writes the buffered document to its file and resets the writer
// for the next document. An empty document is a no-op.
func (w *DocumentWriter) flush() error {
	if w.entries == 0 && w.buf.Len() == 0 {
		return nil
	}

	if err := os.MkdirAll(w.cfg.Dir, dirPerm); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	name := fmt.Sprintf(w.cfg.FilePattern, len(w.parts)+1)

	var doc bytes.Buffer
	doc.WriteString(xmlProlog)
	doc.WriteString(w.urlsetOpen())
	doc.Write(w.buf.Bytes())
	doc.WriteString("</urlset>\n")

	path := filepath.Join(w.cfg.Dir, name)
	if err := os.WriteFile(path, doc.Bytes(), filePerm); err != nil {
		return fmt.Errorf("write sitemap %s: %w", name, err)
	}

	w.log.Info("Wrote sitemap file",
		"file", name,
		"entries", w.entries,
		"bytes", doc.Len(),
		"news", w.caps.News,
		"images", w.caps.Images,
		"videos", w.caps.Videos)

	w.parts = append(w.parts, Part{
		Name:    name,
		Entries: w.entries,
		LastMod: w.now().UTC().Format(dateOnlyFormat),
	})

	w.buf.Reset()
	w.entries = 0
	w.caps.Reset()

	return nil
}

// urlsetOpen builds the <urlset> opening tag. The base and xhtml
// namespaces are always declared; extension namespaces only when the
// document's entries require them.
func (w *DocumentWriter) urlsetOpen() string {
	var b bytes.Buffer
	b.WriteString(`<urlset xmlns="` + NamespaceSitemap + `"`)
	b.WriteString(` xmlns:xhtml="` + NamespaceXHTML + `"`)
	if w.caps.News {
		b.WriteString(` xmlns:news="` + NamespaceNews + `"`)
	}
	if w.caps.Images {
		b.WriteString(` xmlns:image="` + NamespaceImage + `"`)
	}
	if w.caps.Videos {
		b.WriteString(` xmlns:video="` + NamespaceVideo + `"`)
	}
	b.WriteString(">\n")
	return b.String()
}

// WriteIndex writes the sitemap index document listing every finalized
// part, with part locations resolved against baseURL. It returns the
// index file path.
func (w *DocumentWriter) WriteIndex(baseURL string) (string, error) {
	if !w.closed {
		return "", fmt.Errorf("write index: writer not closed")
	}

	var b fragmentBuilder
	b.raw(xmlProlog)
	b.raw(`<sitemapindex xmlns="` + NamespaceSitemap + `">` + "\n")
	for _, part := range w.parts {
		b.open("sitemap")
		b.text("loc", baseURL+"/"+part.Name)
		b.text("lastmod", part.LastMod)
		b.close("sitemap")
		b.raw("\n")
	}
	b.raw("</sitemapindex>\n")

	path := filepath.Join(w.cfg.Dir, w.cfg.IndexFile)
	if err := os.WriteFile(path, b.bytes(), filePerm); err != nil {
		return "", fmt.Errorf("write sitemap index: %w", err)
	}

	w.log.Info("Wrote sitemap index", "file", w.cfg.IndexFile, "parts", len(w.parts))

	return path, nil
}
