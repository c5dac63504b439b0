package sitemap

import "errors"

// Common errors returned by the sitemap package.
var (
	// ErrEmptyLocation is returned when an entry has no location URL.
	ErrEmptyLocation = errors.New("entry location is empty")
	// ErrMissingField is returned when a required extension field is absent.
	// Crawlers reject malformed extension blocks, so validation fails fast
	// instead of emitting empty tags.
	ErrMissingField = errors.New("missing required field")
	// ErrWriterClosed is returned when writing to a finalized document writer.
	ErrWriterClosed = errors.New("document writer is closed")
	// ErrNoResolver is returned when a route entry is encoded without a resolver.
	ErrNoResolver = errors.New("no URL resolver configured")
)
