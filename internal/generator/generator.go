// Package generator orchestrates sitemap generation runs: it streams URL
// entries from the configured providers through the encoder into the
// document writer, then writes the sitemap index.
package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonesrussell/gositemap/internal/config"
	"github.com/jonesrussell/gositemap/internal/logger"
	"github.com/jonesrussell/gositemap/internal/metrics"
	"github.com/jonesrussell/gositemap/internal/sitemap"
	"github.com/jonesrussell/gositemap/internal/source"
)

// Generator runs sitemap generation passes.
type Generator struct {
	cfg       *config.Config
	log       logger.Interface
	providers []source.Provider
}

// Summary describes one completed generation run.
type Summary struct {
	RunID     string
	Entries   int64
	Documents int64
	Bytes     int64
	IndexPath string
	Parts     []sitemap.Part
	Elapsed   time.Duration
}

// New creates a generator over the given providers.
func New(cfg *config.Config, log logger.Interface, providers []source.Provider) *Generator {
	if log == nil {
		log = logger.NewNoOp()
	}

	return &Generator{
		cfg:       cfg,
		log:       log.WithComponent("generator"),
		providers: providers,
	}
}

// Run executes one generation pass. Any entry that fails to encode
// aborts the run: a partially correct document is worse for crawlers
// than no document at all.
func (g *Generator) Run(ctx context.Context) (*Summary, error) {
	runID := uuid.NewString()
	runMetrics := metrics.NewMetrics()
	log := g.log.With("run_id", runID)

	log.Info("Starting sitemap generation", "providers", len(g.providers))

	writer := sitemap.NewDocumentWriter(sitemap.WriterConfig{
		Dir:        g.cfg.Sitemap.OutputDir,
		MaxEntries: g.cfg.Sitemap.MaxEntries,
		MaxBytes:   g.cfg.Sitemap.MaxBytes,
	}, log)

	encoder := sitemap.NewEncoder(writer, writer.Capabilities(), sitemap.Options{
		ChangeFreq: sitemap.ChangeFreq(g.cfg.Sitemap.DefaultChangeFreq),
		Priority:   g.cfg.Sitemap.DefaultPriority,
	}).WithResolver(sitemap.NewBaseResolver(g.cfg.Sitemap.BaseURL))

	for _, provider := range g.providers {
		if err := g.encodeProvider(ctx, provider, encoder, runMetrics, log); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalize sitemaps: %w", err)
	}

	indexPath, err := writer.WriteIndex(g.cfg.Sitemap.BaseURL)
	if err != nil {
		return nil, err
	}

	runMetrics.RecordDocuments(len(writer.Parts()))
	snap := runMetrics.Snapshot()

	log.Info("Sitemap generation complete",
		"entries", snap.EntriesEncoded,
		"documents", snap.DocumentsWritten,
		"bytes", snap.BytesWritten,
		"elapsed", snap.Elapsed)

	return &Summary{
		RunID:     runID,
		Entries:   snap.EntriesEncoded,
		Documents: snap.DocumentsWritten,
		Bytes:     snap.BytesWritten,
		IndexPath: indexPath,
		Parts:     writer.Parts(),
		Elapsed:   snap.Elapsed,
	}, nil
}

// encodeProvider streams one provider's entries through the encoder.
func (g *Generator) encodeProvider(
	ctx context.Context,
	provider source.Provider,
	encoder *sitemap.Encoder,
	runMetrics *metrics.Metrics,
	log logger.Interface,
) error {
	entries, err := provider.Entries(ctx)
	if err != nil {
		return fmt.Errorf("provider %s: %w", provider.Name(), err)
	}

	log.Debug("Encoding provider entries", "provider", provider.Name(), "count", len(entries))

	for i := range entries {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		n, encodeErr := encodeEntry(encoder, &entries[i])
		if encodeErr != nil {
			runMetrics.RecordError()
			return fmt.Errorf("provider %s entry %q: %w",
				provider.Name(), entryLabel(&entries[i]), encodeErr)
		}

		runMetrics.RecordEntry(n)
	}

	return nil
}

// encodeEntry dispatches on entry shape: plain locations encode
// directly, routes resolve first.
func encodeEntry(encoder *sitemap.Encoder, entry *source.Entry) (int, error) {
	if entry.Route != nil {
		return encoder.EncodeRoute(*entry.Route, &entry.Options)
	}
	return encoder.Encode(entry.Loc, &entry.Options)
}

// entryLabel names an entry for error messages.
func entryLabel(entry *source.Entry) string {
	if entry.Loc != "" {
		return entry.Loc
	}
	if entry.Route != nil {
		return entry.Route.Path
	}
	return "(empty)"
}
