// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package library persists a local reference index of known-good
// bibliographic records in SQLite. The local source looks entries up here
// before falling back to web search.
package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/segmentio/encoding/json"

	"github.com/pdiddy/citecheck/internal/normalize"
	"github.com/pdiddy/citecheck/pkg/types"
)

// scanLimit bounds how many rows a title search ranks in memory.
const scanLimit = 500

// Store manages the reference library database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the library database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("library path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating library directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
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
		`CREATE TABLE IF NOT EXISTS refs (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			title_norm TEXT NOT NULL,
			authors TEXT,
			year INTEGER,
			venue TEXT,
			doi TEXT,
			arxiv_id TEXT,
			url TEXT,
			kind TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_refs_doi ON refs(doi)`,
		`CREATE INDEX IF NOT EXISTS idx_refs_arxiv ON refs(arxiv_id)`,
		`CREATE INDEX IF NOT EXISTS idx_refs_title_norm ON refs(title_norm)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// recordID derives the primary key: the DOI, else the arXiv id, else the
// normalized title.
func recordID(rec types.CandidateMetadata) string {
	if doi := normalize.DOI(rec.DOI); doi != "" {
		return "doi:" + doi
	}
	if id := normalize.ArxivID(rec.ArxivID); id != "" {
		return "arxiv:" + id
	}
	return "title:" + normalize.Title(rec.Title)
}

// ImportSummary holds counts from a library import.
type ImportSummary struct {
	Added   int
	Skipped int
}

// Import upserts records in one transaction. Records without a title are
// skipped.
func (s *Store) Import(ctx context.Context, recs []types.CandidateMetadata) (ImportSummary, error) {
	var summary ImportSummary

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return summary, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO refs (id, title, title_norm, authors, year, venue, doi, arxiv_id, url, kind)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title=excluded.title, title_norm=excluded.title_norm, authors=excluded.authors,
			year=excluded.year, venue=excluded.venue, doi=excluded.doi,
			arxiv_id=excluded.arxiv_id, url=excluded.url, kind=excluded.kind`)
	if err != nil {
		return summary, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range recs {
		titleNorm := normalize.Title(rec.Title)
		if titleNorm == "" {
			summary.Skipped++
			continue
		}
		authorsJSON, err := json.Marshal(rec.Authors)
		if err != nil {
			return summary, fmt.Errorf("encoding authors: %w", err)
		}
		_, err = stmt.ExecContext(ctx,
			recordID(rec), rec.Title, titleNorm, string(authorsJSON), rec.Year, rec.Venue,
			normalize.DOI(rec.DOI), normalize.ArxivID(rec.ArxivID), rec.URL, rec.Kind,
		)
		if err != nil {
			return summary, fmt.Errorf("inserting %q: %w", rec.Title, err)
		}
		summary.Added++
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("committing import: %w", err)
	}
	return summary, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM refs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return n, nil
}

const selectColumns = `SELECT title, authors, year, venue, doi, arxiv_id, url, kind FROM refs`

// ByDOI returns the records carrying doi.
func (s *Store) ByDOI(ctx context.Context, doi string) ([]types.CandidateMetadata, error) {
	doi = normalize.DOI(doi)
	if doi == "" {
		return nil, nil
	}
	return s.query(ctx, selectColumns+` WHERE doi = ? ORDER BY id`, doi)
}

// ByArxivID returns the records carrying the arXiv id.
func (s *Store) ByArxivID(ctx context.Context, id string) ([]types.CandidateMetadata, error) {
	id = normalize.ArxivID(id)
	if id == "" {
		return nil, nil
	}
	return s.query(ctx, selectColumns+` WHERE arxiv_id = ? ORDER BY id`, id)
}

// SearchTitle returns up to limit records ranked by title similarity. Rows
// are prefiltered on the longest normalized token of title; exact title
// matches are always inside the prefilter window.
func (s *Store) SearchTitle(ctx context.Context, title string, limit int) ([]types.CandidateMetadata, error) {
	norm := normalize.Title(title)
	if norm == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 5
	}

	anchor := ""
	for _, tok := range strings.Fields(norm) {
		if len(tok) > len(anchor) {
			anchor = tok
		}
	}
	recs, err := s.query(ctx,
		selectColumns+` WHERE title_norm = ? OR instr(title_norm, ?) > 0 ORDER BY title_norm = ? DESC, id LIMIT ?`,
		norm, anchor, norm, scanLimit)
	if err != nil {
		return nil, err
	}

	for i := range recs {
		recs[i].Confidence = normalize.TitleSimilarity(title, recs[i].Title)
	}
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Confidence > recs[j].Confidence })
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]types.CandidateMetadata, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying library: %w", err)
	}
	defer rows.Close()

	var out []types.CandidateMetadata
	for rows.Next() {
		var (
			rec                                 types.CandidateMetadata
			authors, venue, doi, arxiv, u, kind sql.NullString
			year                                sql.NullInt64
		)
		if err := rows.Scan(&rec.Title, &authors, &year, &venue, &doi, &arxiv, &u, &kind); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		if authors.Valid && authors.String != "" {
			if err := json.Unmarshal([]byte(authors.String), &rec.Authors); err != nil {
				return nil, fmt.Errorf("decoding authors: %w", err)
			}
		}
		rec.Source = types.SourceLocal
		rec.Year = int(year.Int64)
		rec.Venue = venue.String
		rec.DOI = doi.String
		rec.ArxivID = arxiv.String
		rec.URL = u.String
		rec.Kind = kind.String
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("iterating records: %w", err)
	}
	return out, nil
}

// FromEntry converts a claimed entry into a library record.
func FromEntry(e types.ClaimedEntry) types.CandidateMetadata {
	arxiv := e.Identifier("arxiv")
	if arxiv == "" && normalize.IsArxivDOI(e.DOI) {
		arxiv = normalize.ArxivID(e.DOI)
	}
	return types.CandidateMetadata{
		Source:  types.SourceLocal,
		Title:   e.Title,
		Authors: e.Authors,
		Year:    e.Year,
		Venue:   e.Venue,
		DOI:     normalize.DOI(e.DOI),
		ArxivID: normalize.ArxivID(arxiv),
		URL:     e.URL,
	}
}
