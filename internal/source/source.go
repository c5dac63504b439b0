// Package source provides URL entry providers for sitemap generation.
// Providers stream entries from static configuration, a PostgreSQL
// table, or site crawls; the generator encodes them in provider order.
package source

import (
	"context"

	"github.com/jonesrussell/gositemap/internal/sitemap"
)

// Entry is one URL entry produced by a provider. Exactly one of Loc or
// Route should be set; routes are resolved to absolute URLs during
// encoding.
type Entry struct {
	Loc     string          `mapstructure:"loc"`
	Route   *sitemap.Route  `mapstructure:"route"`
	Options sitemap.Options `mapstructure:",squash"`
}

// Provider yields URL entries for one source of pages.
type Provider interface {
	// Name identifies the provider in logs and CLI output.
	Name() string
	// Entries returns the provider's URL entries.
	Entries(ctx context.Context) ([]Entry, error)
}
