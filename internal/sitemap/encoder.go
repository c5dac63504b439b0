package sitemap

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Sink is the destination for encoded URL entries. The document writer
// implements it; tests substitute lighter fakes.
type Sink interface {
	io.Writer

	// IncrementEntryCount records that one more URL entry belongs to the
	// current document. The encoder calls it exactly once per Encode,
	// before any formatting, so every call counts even when a later step
	// fails.
	IncrementEntryCount()
}

// Route identifies a page by path template and parameters. Routes are
// resolved to absolute URLs by a Resolver before encoding.
type Route struct {
	Path   string            `mapstructure:"path" json:"path"`
	Params map[string]string `mapstructure:"params" json:"params,omitempty"`
}

// Resolver resolves a structured route into an absolute URL.
type Resolver interface {
	ResolveAbsoluteURL(route Route) (string, error)
}

// Encoder turns URL entries into sitemap <url> fragments and hands them
// to its sink. It also maintains the capability flags the enclosing
// document needs for its namespace declarations.
//
// The encoder is not safe for concurrent use: one document has one
// writer, and entries are encoded sequentially.
type Encoder struct {
	sink     Sink
	caps     *Capabilities
	defaults Options
	resolver Resolver
	now      func() time.Time
}

// NewEncoder creates an encoder bound to sink. Capability flags are set
// on caps as a side effect of encoding; defaults sit between the built-in
// defaults and per-call options in precedence.
func NewEncoder(sink Sink, caps *Capabilities, defaults Options) *Encoder {
	return &Encoder{
		sink:     sink,
		caps:     caps,
		defaults: defaults,
		now:      time.Now,
	}
}

// WithResolver configures the resolver used by EncodeRoute and returns
// the encoder for chaining.
func (e *Encoder) WithResolver(r Resolver) *Encoder {
	e.resolver = r
	return e
}

// EncodeRoute resolves a structured route to an absolute URL and encodes
// it. The entry is counted before resolution, so a resolution failure
// still consumes one entry slot.
func (e *Encoder) EncodeRoute(route Route, opts *Options) (int, error) {
	e.sink.IncrementEntryCount()

	if e.resolver == nil {
		return 0, ErrNoResolver
	}

	loc, err := e.resolver.ResolveAbsoluteURL(route)
	if err != nil {
		return 0, fmt.Errorf("resolve route %q: %w", route.Path, err)
	}

	return e.encode(loc, opts)
}

// Encode encodes a single URL entry and writes the fragment to the sink,
// returning the number of bytes written.
//
// The entry counter is incremented first, unconditionally; capability
// flags are set before the write. Neither is rolled back when the write
// fails — the caller owns that inconsistency window.
func (e *Encoder) Encode(loc string, opts *Options) (int, error) {
	e.sink.IncrementEntryCount()
	return e.encode(loc, opts)
}

func (e *Encoder) encode(loc string, opts *Options) (int, error) {
	if loc == "" {
		return 0, ErrEmptyLocation
	}

	var call Options
	if opts != nil {
		call = *opts
	}
	merged := mergeOptions(builtinDefaults(e.now()), e.defaults, call)

	if err := validateExtensions(&merged); err != nil {
		return 0, err
	}

	var b fragmentBuilder
	b.open("url")
	b.text("loc", loc)
	b.text("lastmod", normalizeLastMod(merged.LastMod))
	b.text("changefreq", string(merged.ChangeFreq))
	b.text("priority", merged.Priority)

	if merged.News != nil {
		e.caps.News = true
		writeNews(&b, merged.News)
	}

	if len(merged.Images) > 0 {
		e.caps.Images = true
		for i := range merged.Images {
			writeImage(&b, &merged.Images[i])
		}
	}

	if len(merged.Videos) > 0 {
		e.caps.Videos = true
		for i := range merged.Videos {
			writeVideo(&b, &merged.Videos[i])
		}
	}

	for i := range merged.Alternates {
		writeAlternate(&b, &merged.Alternates[i])
	}

	b.close("url")
	b.raw("\n")

	n, err := e.sink.Write(b.bytes())
	if err != nil {
		return n, fmt.Errorf("write url entry: %w", err)
	}

	return n, nil
}

// validateExtensions rejects entries whose extension blocks are missing
// required fields, before anything is written.
func validateExtensions(opts *Options) error {
	if opts.News != nil {
		if err := opts.News.Validate(); err != nil {
			return err
		}
	}
	for i := range opts.Images {
		if err := opts.Images[i].Validate(); err != nil {
			return err
		}
	}
	for i := range opts.Videos {
		if err := opts.Videos[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// writeNews emits the Google News extension block. Field order is fixed;
// all fields are unconditional. Title and keywords are trimmed and
// CDATA-wrapped.
func writeNews(b *fragmentBuilder, n *News) {
	b.open("news:news")

	b.open("news:publication")
	b.text("news:name", n.PublicationName)
	b.text("news:language", n.Language)
	b.close("news:publication")

	b.text("news:genres", n.Genres)
	b.text("news:publication_date", n.PublicationDate)
	b.cdata("news:title", strings.TrimSpace(n.Title))
	b.cdata("news:keywords", strings.TrimSpace(n.Keywords))

	b.close("news:news")
}

// writeImage emits one Google Image extension block. Only present fields
// are emitted, in fixed order; geo_location is plain text, the rest are
// CDATA-wrapped.
func writeImage(b *fragmentBuilder, img *Image) {
	b.open("image:image")
	b.cdata("image:loc", img.Loc)
	if img.Caption != "" {
		b.cdata("image:caption", img.Caption)
	}
	if img.GeoLocation != "" {
		b.text("image:geo_location", img.GeoLocation)
	}
	if img.Title != "" {
		b.cdata("image:title", img.Title)
	}
	if img.License != "" {
		b.cdata("image:license", img.License)
	}
	b.close("image:image")
}

// writeVideo emits one Google Video extension block. The three required
// fields come first, then exactly one of content_loc or player_loc
// (content_loc wins when both are set, neither is emitted when both are
// absent), then the optional fields in fixed order.
func writeVideo(b *fragmentBuilder, v *Video) {
	b.open("video:video")
	b.cdata("video:thumbnail_loc", v.ThumbnailLoc)
	b.cdata("video:title", v.Title)
	b.cdata("video:description", v.Description)

	switch {
	case v.ContentLoc != "":
		b.cdata("video:content_loc", v.ContentLoc)
	case v.PlayerLoc != "":
		b.cdata("video:player_loc", v.PlayerLoc)
	}

	for _, f := range v.optionalFields() {
		if f.value != "" {
			b.cdata("video:"+f.name, f.value)
		}
	}

	b.close("video:video")
}

// writeAlternate emits a self-closing xhtml:link element. rel="alternate"
// comes first, then href when present, then the remaining attributes in
// their given order.
func writeAlternate(b *fragmentBuilder, alt *Alternate) {
	attrs := make([]Attr, 0, len(alt.Attrs)+2)
	attrs = append(attrs, Attr{Name: "rel", Value: "alternate"})
	if alt.Href != "" {
		attrs = append(attrs, Attr{Name: "href", Value: alt.Href})
	}
	attrs = append(attrs, alt.Attrs...)

	b.selfClosing("xhtml:link", attrs)
}
