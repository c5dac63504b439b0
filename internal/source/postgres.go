package source

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/gositemap/internal/logger"
	"github.com/jonesrussell/gositemap/internal/sitemap"
)

// ErrInvalidTableName is returned for table names that are not plain
// SQL identifiers. The table name is interpolated into the query, so
// anything else is rejected up front.
var ErrInvalidTableName = errors.New("invalid table name")

var tableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// urlRow is one row of the sitemap URLs table. Extension payloads are
// stored as JSON columns.
type urlRow struct {
	Loc        string         `db:"loc"`
	LastMod    sql.NullString `db:"lastmod"`
	ChangeFreq sql.NullString `db:"changefreq"`
	Priority   sql.NullString `db:"priority"`
	News       []byte         `db:"news"`
	Images     []byte         `db:"images"`
	Videos     []byte         `db:"videos"`
	Alternates []byte         `db:"alternates"`
}

// PostgresProvider yields entries from a PostgreSQL table.
type PostgresProvider struct {
	db    *sqlx.DB
	table string
	log   logger.Interface
}

// NewPostgresProvider creates a provider reading from the given table.
func NewPostgresProvider(db *sqlx.DB, table string, log logger.Interface) (*PostgresProvider, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTableName, table)
	}
	if log == nil {
		log = logger.NewNoOp()
	}

	return &PostgresProvider{db: db, table: table, log: log}, nil
}

// Name implements Provider.
func (p *PostgresProvider) Name() string {
	return "postgres:" + p.table
}

// Entries implements Provider.
func (p *PostgresProvider) Entries(ctx context.Context) ([]Entry, error) {
	query := fmt.Sprintf(`
		SELECT loc, lastmod, changefreq, priority, news, images, videos, alternates
		FROM %s
		ORDER BY loc
	`, p.table)

	var rows []urlRow
	if err := p.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to select sitemap urls: %w", err)
	}

	entries := make([]Entry, 0, len(rows))
	for i := range rows {
		entry, err := rowToEntry(&rows[i])
		if err != nil {
			return nil, fmt.Errorf("row %q: %w", rows[i].Loc, err)
		}
		entries = append(entries, entry)
	}

	p.log.Debug("Loaded sitemap urls from database", "table", p.table, "count", len(entries))

	return entries, nil
}

// rowToEntry converts a table row into an Entry, decoding the JSON
// extension payloads when present.
func rowToEntry(row *urlRow) (Entry, error) {
	entry := Entry{
		Loc: row.Loc,
		Options: sitemap.Options{
			LastMod:    row.LastMod.String,
			ChangeFreq: sitemap.ChangeFreq(row.ChangeFreq.String),
			Priority:   row.Priority.String,
		},
	}

	if len(row.News) > 0 {
		var news sitemap.News
		if err := json.Unmarshal(row.News, &news); err != nil {
			return Entry{}, fmt.Errorf("decode news payload: %w", err)
		}
		entry.Options.News = &news
	}

	if len(row.Images) > 0 {
		if err := json.Unmarshal(row.Images, &entry.Options.Images); err != nil {
			return Entry{}, fmt.Errorf("decode images payload: %w", err)
		}
	}

	if len(row.Videos) > 0 {
		if err := json.Unmarshal(row.Videos, &entry.Options.Videos); err != nil {
			return Entry{}, fmt.Errorf("decode videos payload: %w", err)
		}
	}

	if len(row.Alternates) > 0 {
		if err := json.Unmarshal(row.Alternates, &entry.Options.Alternates); err != nil {
			return Entry{}, fmt.Errorf("decode alternates payload: %w", err)
		}
	}

	return entry, nil
}
