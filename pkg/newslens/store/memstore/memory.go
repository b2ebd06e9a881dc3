// Package memstore is an in-memory implementation of store.Store for
// tests.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/newslens/newslens/pkg/newslens/internalerr"
	"github.com/newslens/newslens/pkg/newslens/store"
)

// Store is an in-memory store.Store.
type Store struct {
	mu       sync.RWMutex
	nextID   int64
	articles map[int64]store.Article
	urlIndex map[string]int64
	reports  map[string]store.Report
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		nextID:   1,
		articles: make(map[int64]store.Article),
		urlIndex: make(map[string]int64),
		reports:  make(map[string]store.Report),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// UpsertArticle inserts or updates an article, keyed by URL.
func (s *Store) UpsertArticle(ctx context.Context, a store.Article) error {
	if a.URL == "" {
		return internalerr.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.urlIndex[a.URL]
	if !ok {
		id = s.nextID
		s.nextID++
		s.urlIndex[a.URL] = id
	}
	a.ID = id
	s.articles[id] = a
	return nil
}

// GetArticleByURL fetches one article; the bool reports presence.
func (s *Store) GetArticleByURL(ctx context.Context, url string) (store.Article, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.urlIndex[url]
	if !ok {
		return store.Article{}, false, nil
	}
	return s.articles[id], true, nil
}

// ListArticles returns articles published at or after since, oldest first.
func (s *Store) ListArticles(ctx context.Context, since time.Time, limit int) ([]store.Article, error) {
	if limit <= 0 {
		limit = 1000
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []store.Article
	for _, a := range s.articles {
		if a.Published.Before(since) {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Published.Equal(out[j].Published) {
			return out[i].Published.Before(out[j].Published)
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// CountArticles returns the stored article count.
func (s *Store) CountArticles(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.articles)), nil
}

// DeleteArticlesBefore removes articles published before the cutoff.
func (s *Store) DeleteArticlesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for id, a := range s.articles {
		if a.Published.Before(cutoff) {
			delete(s.articles, id)
			delete(s.urlIndex, a.URL)
			removed++
		}
	}
	return removed, nil
}

// SaveReport stores a finished analysis report.
func (s *Store) SaveReport(ctx context.Context, r store.Report) error {
	if r.ID == "" || r.Kind == "" {
		return internalerr.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[r.ID] = r
	return nil
}

// GetReport fetches one report by ID.
func (s *Store) GetReport(ctx context.Context, id string) (store.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reports[id]
	if !ok {
		return store.Report{}, internalerr.ErrNotFound
	}
	return r, nil
}

// DeleteReportsBefore removes reports generated before the cutoff.
func (s *Store) DeleteReportsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for id, r := range s.reports {
		if r.GeneratedAt.Before(cutoff) {
			delete(s.reports, id)
			removed++
		}
	}
	return removed, nil
}

// ListReports returns the newest reports of a kind.
func (s *Store) ListReports(ctx context.Context, kind string, limit int) ([]store.Report, error) {
	if limit <= 0 {
		limit = 20
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []store.Report
	for _, r := range s.reports {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].GeneratedAt.Equal(out[j].GeneratedAt) {
			return out[i].GeneratedAt.After(out[j].GeneratedAt)
		}
		return out[i].ID > out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
