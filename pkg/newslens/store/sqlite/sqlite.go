// Package sqlite implements store.Store on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/newslens/newslens/pkg/newslens/internalerr"
	"github.com/newslens/newslens/pkg/newslens/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite database with WAL mode enabled and initializes
// the schema.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS articles (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	url TEXT UNIQUE NOT NULL,
	title TEXT,
	summary TEXT,
	source TEXT,
	published_at TEXT
);

CREATE INDEX IF NOT EXISTS idx_articles_published ON articles(published_at);
CREATE INDEX IF NOT EXISTS idx_articles_source ON articles(source);

CREATE TABLE IF NOT EXISTS reports (
	id TEXT PRIMARY KEY,
	kind TEXT NOT NULL,
	generated_at TEXT NOT NULL,
	num_docs INTEGER NOT NULL,
	payload BLOB
);

CREATE INDEX IF NOT EXISTS idx_reports_kind ON reports(kind, generated_at);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// UpsertArticle inserts or updates an article, keyed by URL.
func (s *sqliteStore) UpsertArticle(ctx context.Context, a store.Article) error {
	if a.URL == "" {
		return fmt.Errorf("%w: article URL required", internalerr.ErrInvalidInput)
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO articles (url, title, summary, source, published_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(url) DO UPDATE SET
	title = excluded.title,
	summary = excluded.summary,
	source = excluded.source,
	published_at = excluded.published_at`,
		a.URL, a.Title, a.Summary, a.Source, a.Published.UTC().Format(time.RFC3339))
	return err
}

// GetArticleByURL fetches one article; the bool reports presence.
func (s *sqliteStore) GetArticleByURL(ctx context.Context, url string) (store.Article, bool, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, url, title, summary, source, published_at
FROM articles WHERE url = ?`, url)

	a, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return store.Article{}, false, nil
	}
	if err != nil {
		return store.Article{}, false, err
	}
	return a, true, nil
}

// ListArticles returns articles published at or after since, oldest
// first, capped at limit.
func (s *sqliteStore) ListArticles(ctx context.Context, since time.Time, limit int) ([]store.Article, error) {
	if limit <= 0 {
		limit = 1000
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, url, title, summary, source, published_at
FROM articles
WHERE published_at >= ?
ORDER BY published_at ASC, id ASC
LIMIT ?`, since.UTC().Format(time.RFC3339), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []store.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// CountArticles returns the stored article count.
func (s *sqliteStore) CountArticles(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles").Scan(&count)
	return count, err
}

// DeleteArticlesBefore removes articles published before the cutoff.
func (s *sqliteStore) DeleteArticlesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM articles WHERE published_at < ?",
		cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// SaveReport stores a finished analysis report.
func (s *sqliteStore) SaveReport(ctx context.Context, r store.Report) error {
	if r.ID == "" || r.Kind == "" {
		return fmt.Errorf("%w: report ID and kind required", internalerr.ErrInvalidInput)
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO reports (id, kind, generated_at, num_docs, payload)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	kind = excluded.kind,
	generated_at = excluded.generated_at,
	num_docs = excluded.num_docs,
	payload = excluded.payload`,
		r.ID, r.Kind, r.GeneratedAt.UTC().Format(time.RFC3339), r.NumDocs, r.Payload)
	return err
}

// GetReport fetches one report by ID.
func (s *sqliteStore) GetReport(ctx context.Context, id string) (store.Report, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, kind, generated_at, num_docs, payload
FROM reports WHERE id = ?`, id)

	r, err := scanReport(row)
	if err == sql.ErrNoRows {
		return store.Report{}, internalerr.ErrNotFound
	}
	return r, err
}

// ListReports returns the newest reports of a kind.
func (s *sqliteStore) ListReports(ctx context.Context, kind string, limit int) ([]store.Report, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, kind, generated_at, num_docs, payload
FROM reports
WHERE kind = ?
ORDER BY generated_at DESC, id DESC
LIMIT ?`, kind, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []store.Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// DeleteReportsBefore removes reports generated before the cutoff.
func (s *sqliteStore) DeleteReportsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM reports WHERE generated_at < ?",
		cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(row scanner) (store.Article, error) {
	var a store.Article
	var published string
	if err := row.Scan(&a.ID, &a.URL, &a.Title, &a.Summary, &a.Source, &published); err != nil {
		return store.Article{}, err
	}
	t, err := time.Parse(time.RFC3339, published)
	if err != nil {
		return store.Article{}, fmt.Errorf("parse published_at: %w", err)
	}
	a.Published = t
	return a, nil
}

func scanReport(row scanner) (store.Report, error) {
	var r store.Report
	var generated string
	if err := row.Scan(&r.ID, &r.Kind, &generated, &r.NumDocs, &r.Payload); err != nil {
		return store.Report{}, err
	}
	t, err := time.Parse(time.RFC3339, generated)
	if err != nil {
		return store.Report{}, fmt.Errorf("parse generated_at: %w", err)
	}
	r.GeneratedAt = t
	return r, nil
}
