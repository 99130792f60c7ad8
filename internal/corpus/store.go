// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus keeps quadgram counts in a SQLite database so that corpora
// can be built from many sources, refreshed incrementally and exported.
// Each source file contributes its own rows; the model is built from the
// sum over sources.
package corpus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/cryptanalyst/internal/quadgram"
	"github.com/pdiddy/cryptanalyst/pkg/types"
)

// Source kinds recorded for imported files.
const (
	KindCounts = "counts"
	KindText   = "text"
)

// Store manages the quadgram SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens or creates the database at cfg.DB, creating its directory
// and schema if needed.
func NewStore(cfg types.CorpusConfig) (*Store, error) {
	if cfg.DB == "" {
		return nil, errors.New("corpus database path is not configured")
	}
	if dir := filepath.Dir(cfg.DB); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.DB+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: cfg.DB}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sources (
			path TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			file_mod_time TEXT NOT NULL,
			imported_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS counts (
			source TEXT NOT NULL REFERENCES sources(path) ON DELETE CASCADE,
			gram TEXT NOT NULL,
			count INTEGER NOT NULL,
			PRIMARY KEY (source, gram)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_counts_gram ON counts(gram)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// ImportSummary holds counts from an import run.
type ImportSummary struct {
	Imported int
	Updated  int
	Skipped  int
	Failed   int
}

// Total returns the number of sources processed.
func (s ImportSummary) Total() int {
	return s.Imported + s.Updated + s.Skipped + s.Failed
}

// Import adds each file in paths to the store. A file already imported with
// the same modification time is skipped; a changed file replaces its
// previous rows in one transaction. Files in the "ABCD 1234" corpus format
// are loaded as counts, anything else is counted as free English text.
// Progress lines are written to w; one bad file does not stop the run.
func (s *Store) Import(ctx context.Context, paths []string, w io.Writer) (ImportSummary, error) {
	var summary ImportSummary
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}

		info, err := os.Stat(abs)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", path, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var stored string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM sources WHERE path = ?`, abs,
		).Scan(&stored)
		if err == nil && stored == modTime {
			fmt.Fprintf(w, "skipped %s\n", path)
			summary.Skipped++
			continue
		}
		isUpdate := err == nil

		counts, kind, err := readSource(abs)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", path, err)
			summary.Failed++
			continue
		}
		if len(counts) == 0 {
			fmt.Fprintf(w, "failed  %s: %v\n", path, quadgram.ErrEmptyCorpus)
			summary.Failed++
			continue
		}

		if err := s.importSource(ctx, abs, kind, modTime, counts, isUpdate); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", path, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s (%s, %d quadgrams)\n", path, kind, len(counts))
			summary.Updated++
		} else {
			fmt.Fprintf(w, "imported %s (%s, %d quadgrams)\n", path, kind, len(counts))
			summary.Imported++
		}
	}

	fmt.Fprintf(w, "\nimported: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Imported, summary.Updated, summary.Skipped, summary.Failed)
	return summary, nil
}

// readSource loads a corpus file, falling back to counting free text when
// it is not in the corpus line format.
func readSource(path string) (map[string]int64, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	if counts, err := quadgram.ParseCounts(strings.NewReader(string(data))); err == nil {
		return counts, KindCounts, nil
	}
	counts, err := quadgram.Count(strings.NewReader(string(data)))
	if err != nil {
		return nil, "", err
	}
	return counts, KindText, nil
}

func (s *Store) importSource(ctx context.Context, path, kind, modTime string, counts map[string]int64, isUpdate bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if isUpdate {
		if _, err := tx.ExecContext(ctx, `DELETE FROM counts WHERE source = ?`, path); err != nil {
			return fmt.Errorf("deleting old counts: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sources (path, kind, file_mod_time, imported_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
			kind=excluded.kind, file_mod_time=excluded.file_mod_time, imported_at=excluded.imported_at`,
		path, kind, modTime, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting source: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO counts (source, gram, count) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for gram, n := range counts {
		if _, err := stmt.ExecContext(ctx, path, strings.ToUpper(gram), n); err != nil {
			return fmt.Errorf("inserting %s: %w", gram, err)
		}
	}
	return tx.Commit()
}

// Counts returns the quadgram counts summed over every source.
func (s *Store) Counts(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT gram, SUM(count) FROM counts GROUP BY gram`)
	if err != nil {
		return nil, fmt.Errorf("querying counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var (
			gram string
			n    int64
		)
		if err := rows.Scan(&gram, &n); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		counts[gram] = n
	}
	return counts, rows.Err()
}

// Model builds a quadgram model from the stored counts. An empty store
// yields quadgram.ErrEmptyCorpus.
func (s *Store) Model(ctx context.Context, unseenPenalty float64) (*quadgram.Model, error) {
	counts, err := s.Counts(ctx)
	if err != nil {
		return nil, err
	}
	return quadgram.New(counts, unseenPenalty)
}

// Top returns the n most frequent quadgrams, ties by quadgram. n <= 0
// returns all of them.
func (s *Store) Top(ctx context.Context, n int) ([]quadgram.Entry, error) {
	query := `SELECT gram, SUM(count) AS total FROM counts GROUP BY gram ORDER BY total DESC, gram ASC`
	var args []any
	if n > 0 {
		query += ` LIMIT ?`
		args = append(args, n)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying top quadgrams: %w", err)
	}
	defer rows.Close()

	var out []quadgram.Entry
	for rows.Next() {
		var e quadgram.Entry
		if err := rows.Scan(&e.Gram, &e.Count); err != nil {
			return nil, fmt.Errorf("scanning quadgram: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// SourceInfo describes one imported file.
type SourceInfo struct {
	Path      string `json:"path" yaml:"path"`
	Kind      string `json:"kind" yaml:"kind"`
	Quadgrams int    `json:"quadgrams" yaml:"quadgrams"`
	Total     int64  `json:"total" yaml:"total"`
}

// Info summarizes the store.
type Info struct {
	Path      string       `json:"path" yaml:"path"`
	Sources   []SourceInfo `json:"sources" yaml:"sources"`
	Quadgrams int          `json:"quadgrams" yaml:"quadgrams"`
	Total     int64        `json:"total" yaml:"total"`
}

// Info reports the imported sources and the size of the combined corpus.
func (s *Store) Info(ctx context.Context) (Info, error) {
	info := Info{Path: s.path}
	rows, err := s.db.QueryContext(ctx,
		`SELECT s.path, s.kind, COUNT(c.gram), COALESCE(SUM(c.count), 0)
		 FROM sources s LEFT JOIN counts c ON c.source = s.path
		 GROUP BY s.path ORDER BY s.path`)
	if err != nil {
		return Info{}, fmt.Errorf("querying sources: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var si SourceInfo
		if err := rows.Scan(&si.Path, &si.Kind, &si.Quadgrams, &si.Total); err != nil {
			return Info{}, fmt.Errorf("scanning source: %w", err)
		}
		info.Sources = append(info.Sources, si)
	}
	if err := rows.Err(); err != nil {
		return Info{}, err
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT gram), COALESCE(SUM(count), 0) FROM counts`,
	).Scan(&info.Quadgrams, &info.Total)
	if err != nil {
		return Info{}, fmt.Errorf("querying totals: %w", err)
	}
	return info, nil
}

// NewProvider returns the quadgram provider for cfg: the SQLite store when
// cfg.DB names an existing database, otherwise the corpus file at cfg.Path.
// The store is opened only when the model is first needed.
func NewProvider(cfg types.CorpusConfig) *quadgram.Provider {
	if cfg.DB == "" {
		return quadgram.FileProvider(cfg.Path, cfg.UnseenPenalty)
	}
	if _, err := os.Stat(cfg.DB); errors.Is(err, fs.ErrNotExist) {
		return quadgram.FileProvider(cfg.Path, cfg.UnseenPenalty)
	}
	return quadgram.NewProvider(func() (*quadgram.Model, error) {
		s, err := NewStore(cfg)
		if err != nil {
			return nil, err
		}
		defer s.Close()
		m, err := s.Model(context.Background(), cfg.UnseenPenalty)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", cfg.DB, err)
		}
		return m, nil
	})
}
