package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/newslens/newslens/pkg/newslens/internalerr"
	"github.com/newslens/newslens/pkg/newslens/store"
)

func TestUpsertArticle(t *testing.T) {
	s := New()
	ctx := context.Background()

	a := store.Article{
		URL:       "https://example.com/1",
		Title:     "Ekonomi haberleri",
		Source:    "example",
		Published: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	}
	if err := s.UpsertArticle(ctx, a); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	got, found, err := s.GetArticleByURL(ctx, a.URL)
	if err != nil || !found {
		t.Fatalf("article not found: %v", err)
	}
	if got.Title != a.Title {
		t.Errorf("title mismatch: %q", got.Title)
	}

	// Upserting the same URL keeps one record.
	a.Title = "Güncellendi"
	if err := s.UpsertArticle(ctx, a); err != nil {
		t.Fatal(err)
	}
	count, _ := s.CountArticles(ctx)
	if count != 1 {
		t.Errorf("expected 1 article after re-upsert, got %d", count)
	}
	got, _, _ = s.GetArticleByURL(ctx, a.URL)
	if got.Title != "Güncellendi" {
		t.Errorf("upsert should replace fields, got %q", got.Title)
	}
}

func TestUpsertArticleNoURL(t *testing.T) {
	s := New()
	if err := s.UpsertArticle(context.Background(), store.Article{Title: "x"}); err == nil {
		t.Error("article without URL should be rejected")
	}
}

func TestListArticlesSince(t *testing.T) {
	s := New()
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		s.UpsertArticle(ctx, store.Article{
			URL:       "https://example.com/" + string(rune('a'+i)),
			Published: base.AddDate(0, 0, i),
		})
	}

	articles, err := s.ListArticles(ctx, base.AddDate(0, 0, 2), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(articles) != 3 {
		t.Fatalf("expected 3 articles since day 2, got %d", len(articles))
	}
	for i := 1; i < len(articles); i++ {
		if articles[i].Published.Before(articles[i-1].Published) {
			t.Error("articles should be ordered oldest first")
		}
	}
}

func TestReports(t *testing.T) {
	s := New()
	ctx := context.Background()

	r := store.Report{
		ID:          "01JC0000000000000000000000",
		Kind:        store.KindSimilarity,
		GeneratedAt: time.Now().UTC(),
		NumDocs:     42,
		Payload:     []byte(`{"pairs":[]}`),
	}
	if err := s.SaveReport(ctx, r); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := s.GetReport(ctx, r.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.NumDocs != 42 || got.Kind != store.KindSimilarity {
		t.Errorf("report mismatch: %+v", got)
	}

	if _, err := s.GetReport(ctx, "missing"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	list, err := s.ListReports(ctx, store.KindSimilarity, 10)
	if err != nil || len(list) != 1 {
		t.Errorf("expected 1 similarity report, got %v (%v)", list, err)
	}
	list, _ = s.ListReports(ctx, store.KindCooccurrence, 10)
	if len(list) != 0 {
		t.Errorf("expected no cooccurrence reports, got %v", list)
	}
}
