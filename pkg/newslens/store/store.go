// Package store defines persistence for collected articles and the
// analysis reports derived from them. The engines themselves never
// touch storage; the orchestration layer loads a batch, runs an
// analysis and saves the result here.
package store

import (
	"context"
	"time"
)

// Store persists articles and analysis reports.
type Store interface {
	Close() error

	// Articles
	UpsertArticle(ctx context.Context, a Article) error
	GetArticleByURL(ctx context.Context, url string) (Article, bool, error)
	ListArticles(ctx context.Context, since time.Time, limit int) ([]Article, error)
	CountArticles(ctx context.Context) (int64, error)
	DeleteArticlesBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// Reports
	SaveReport(ctx context.Context, r Report) error
	GetReport(ctx context.Context, id string) (Report, error)
	ListReports(ctx context.Context, kind string, limit int) ([]Report, error)
	DeleteReportsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Article is a stored news record, keyed by URL.
type Article struct {
	ID        int64
	URL       string
	Title     string
	Summary   string
	Source    string
	Published time.Time
}

// Report kinds.
const (
	KindCooccurrence = "cooccurrence"
	KindSimilarity   = "similarity"
)

// Report is a persisted analysis result. Payload is the JSON-encoded
// report structure; the store treats it as opaque.
type Report struct {
	ID          string // ULID assigned by the engine facade
	Kind        string
	GeneratedAt time.Time
	NumDocs     int
	Payload     []byte
}
