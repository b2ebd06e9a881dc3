package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/newslens/newslens/internal/feed"
	"github.com/newslens/newslens/pkg/newslens"
	"github.com/newslens/newslens/pkg/newslens/config"
	"github.com/newslens/newslens/pkg/newslens/maintenance"
	"github.com/newslens/newslens/pkg/newslens/store"
	"github.com/newslens/newslens/pkg/newslens/store/sqlite"
)

func main() {
	var (
		dbPath       = flag.String("db", "", "Database path (required)")
		dataPath     = flag.String("data", "", "Input JSONL file (required)")
		stoplistPath = flag.String("stoplist", "", "Stoplist YAML file (optional)")
		configPath   = flag.String("config", "", "Analysis parameters YAML file (optional)")
		skipAnalysis = flag.Bool("skip-analysis", false, "Only index articles, skip report generation")
		prune        = flag.Bool("prune", false, "Remove articles and reports past retention before indexing")
	)
	flag.Parse()

	if *dbPath == "" {
		log.Fatal("--db required")
	}
	if *dataPath == "" {
		log.Fatal("--data required")
	}

	ctx := context.Background()

	analysis := config.DefaultAnalysis()
	if *configPath != "" {
		var err error
		analysis, err = config.LoadAnalysis(*configPath)
		if err != nil {
			log.Fatal("Failed to load analysis config:", err)
		}
	}

	var stopwords []string
	if *stoplistPath != "" {
		sl, err := config.LoadStoplist(*stoplistPath)
		if err != nil {
			log.Fatal("Failed to load stoplist:", err)
		}
		stopwords = sl.Terms
	}

	st, err := sqlite.Open(ctx, *dbPath)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer st.Close()

	log.Println("NewsLens indexer started")

	if *prune {
		pruner := &maintenance.Pruner{Store: st}
		res, err := pruner.Prune(ctx, time.Now())
		if err != nil {
			log.Fatal("Pruning failed:", err)
		}
		log.Printf("Pruned %d articles, %d reports", res.ArticlesRemoved, res.ReportsRemoved)
	}

	items, err := feed.LoadFromJSONL(*dataPath)
	if err != nil {
		log.Fatal("Failed to load documents:", err)
	}
	log.Printf("Loaded %d documents from %s", len(items), *dataPath)

	docs := make([]newslens.Document, 0, len(items))
	for i, item := range items {
		a := store.Article{
			URL:       item.URL,
			Title:     item.Title,
			Summary:   item.Summary,
			Source:    item.Source,
			Published: item.Published,
		}
		if err := st.UpsertArticle(ctx, a); err != nil {
			log.Printf("Failed to index document %d (%s): %v", i, item.Title, err)
			continue
		}
		docs = append(docs, newslens.Document{
			URL:       item.URL,
			Title:     item.Title,
			Summary:   item.Summary,
			Source:    item.Source,
			Published: item.Published,
		})

		if (i+1)%100 == 0 {
			log.Printf("Indexed %d/%d documents", i+1, len(items))
		}
	}

	count, err := st.CountArticles(ctx)
	if err != nil {
		log.Fatal("Failed to count articles:", err)
	}
	log.Printf("Indexing complete: %d documents stored", count)

	if *skipAnalysis {
		return
	}

	engine, err := newslens.New(newslens.Options{
		Stopwords: stopwords,
		Analysis:  analysis,
	})
	if err != nil {
		log.Fatal("Failed to configure engine:", err)
	}

	co, err := engine.AnalyzeCooccurrence(docs, analysis.TargetKeywords)
	if err != nil {
		log.Fatal("Co-occurrence analysis failed:", err)
	}
	if err := saveReport(ctx, st, co); err != nil {
		log.Fatal("Failed to save co-occurrence report:", err)
	}
	log.Printf("Saved co-occurrence report %s (%d nodes, %d edges)",
		co.ID, co.Result.Metrics.NumNodes, co.Result.Metrics.NumEdges)

	sim, err := engine.AnalyzeSimilarity(docs)
	if err != nil {
		log.Fatal("Similarity analysis failed:", err)
	}
	if err := saveReport(ctx, st, sim); err != nil {
		log.Fatal("Failed to save similarity report:", err)
	}
	log.Printf("Saved similarity report %s (%d pairs above threshold)",
		sim.ID, len(sim.Result.Pairs))
}

type storable interface {
	Stored() (store.Report, error)
}

func saveReport(ctx context.Context, st store.Store, r storable) error {
	sr, err := r.Stored()
	if err != nil {
		return err
	}
	return st.SaveReport(ctx, sr)
}
