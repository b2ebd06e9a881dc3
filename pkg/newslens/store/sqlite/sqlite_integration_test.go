package sqlite

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/newslens/newslens/pkg/newslens/internalerr"
	"github.com/newslens/newslens/pkg/newslens/store"
)

// TestSQLiteIntegrationArticles tests article CRUD round trips
func TestSQLiteIntegrationArticles(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	st, err := Open(ctx, dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer st.Close()

	a := store.Article{
		URL:       "https://example.com/article-1",
		Title:     "Ekonomi büyüme hedefi revize edildi",
		Summary:   "Bakan açıklama yaptı",
		Source:    "example",
		Published: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	}
	if err := st.UpsertArticle(ctx, a); err != nil {
		t.Fatalf("UpsertArticle: %v", err)
	}

	got, found, err := st.GetArticleByURL(ctx, a.URL)
	if err != nil {
		t.Fatalf("GetArticleByURL: %v", err)
	}
	if !found {
		t.Fatal("article should exist")
	}
	if got.Title != a.Title || got.Source != a.Source {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if !got.Published.Equal(a.Published) {
		t.Errorf("published time mismatch: %v vs %v", got.Published, a.Published)
	}

	// Re-upsert with a new title: still one row, updated fields.
	a.Title = "Güncellendi"
	if err := st.UpsertArticle(ctx, a); err != nil {
		t.Fatalf("re-upsert: %v", err)
	}
	count, err := st.CountArticles(ctx)
	if err != nil {
		t.Fatalf("CountArticles: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 article, got %d", count)
	}

	_, found, err = st.GetArticleByURL(ctx, "https://example.com/missing")
	if err != nil || found {
		t.Errorf("missing article: found=%v err=%v", found, err)
	}
}

// TestSQLiteIntegrationListSince tests the publish-time filter
func TestSQLiteIntegrationListSince(t *testing.T) {
	ctx := context.Background()
	st, err := Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer st.Close()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	urls := []string{"a", "b", "c", "d"}
	for i, u := range urls {
		err := st.UpsertArticle(ctx, store.Article{
			URL:       "https://example.com/" + u,
			Published: base.AddDate(0, 0, i),
		})
		if err != nil {
			t.Fatalf("UpsertArticle %s: %v", u, err)
		}
	}

	articles, err := st.ListArticles(ctx, base.AddDate(0, 0, 1), 10)
	if err != nil {
		t.Fatalf("ListArticles: %v", err)
	}
	if len(articles) != 3 {
		t.Fatalf("expected 3 articles, got %d", len(articles))
	}
	if articles[0].URL != "https://example.com/b" {
		t.Errorf("oldest-first ordering broken: %+v", articles[0])
	}
}

// TestSQLiteIntegrationReports tests report persistence
func TestSQLiteIntegrationReports(t *testing.T) {
	ctx := context.Background()
	st, err := Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer st.Close()

	r := store.Report{
		ID:          "01JC0000000000000000000001",
		Kind:        store.KindCooccurrence,
		GeneratedAt: time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC),
		NumDocs:     128,
		Payload:     []byte(`{"pairs":{}}`),
	}
	if err := st.SaveReport(ctx, r); err != nil {
		t.Fatalf("SaveReport: %v", err)
	}

	got, err := st.GetReport(ctx, r.ID)
	if err != nil {
		t.Fatalf("GetReport: %v", err)
	}
	if got.Kind != r.Kind || got.NumDocs != r.NumDocs {
		t.Errorf("report mismatch: %+v", got)
	}
	if string(got.Payload) != string(r.Payload) {
		t.Errorf("payload mismatch: %s", got.Payload)
	}

	if _, err := st.GetReport(ctx, "missing"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	list, err := st.ListReports(ctx, store.KindCooccurrence, 5)
	if err != nil {
		t.Fatalf("ListReports: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("expected 1 report, got %d", len(list))
	}
}

// TestSQLiteIntegrationRetention tests cutoff-based deletion
func TestSQLiteIntegrationRetention(t *testing.T) {
	ctx := context.Background()
	st, err := Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer st.Close()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		err := st.UpsertArticle(ctx, store.Article{
			URL:       fmt.Sprintf("https://example.com/%d", i),
			Published: base.AddDate(0, 0, i),
		})
		if err != nil {
			t.Fatalf("UpsertArticle: %v", err)
		}
	}
	err = st.SaveReport(ctx, store.Report{
		ID:          "01JC0000000000000000000009",
		Kind:        store.KindSimilarity,
		GeneratedAt: base,
	})
	if err != nil {
		t.Fatalf("SaveReport: %v", err)
	}

	removed, err := st.DeleteArticlesBefore(ctx, base.AddDate(0, 0, 2))
	if err != nil {
		t.Fatalf("DeleteArticlesBefore: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed %d articles, want 2", removed)
	}
	count, _ := st.CountArticles(ctx)
	if count != 2 {
		t.Errorf("expected 2 surviving articles, got %d", count)
	}

	removed, err = st.DeleteReportsBefore(ctx, base.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("DeleteReportsBefore: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed %d reports, want 1", removed)
	}
}
