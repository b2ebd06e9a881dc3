package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/newslens/newslens/internal/feed"
	"github.com/newslens/newslens/pkg/newslens"
	"github.com/newslens/newslens/pkg/newslens/config"
	"github.com/newslens/newslens/pkg/newslens/trends"
)

type report struct {
	Cooccurrence *newslens.CooccurrenceReport `json:"cooccurrence,omitempty"`
	Similarity   *newslens.SimilarityReport   `json:"similarity,omitempty"`
	Keywords     map[string][]trends.DayCount `json:"keyword_volume,omitempty"`
}

func main() {
	var (
		input        = flag.String("input", "", "Path to JSONL file (required)")
		stoplistPath = flag.String("stoplist", "", "Stoplist YAML file (optional)")
		configPath   = flag.String("config", "", "Analysis parameters YAML file (optional)")
		keywords     = flag.String("keywords", "", "Comma-separated target keywords (optional)")
		mode         = flag.String("mode", "all", "Analysis to run: cooccurrence, similarity or all")
	)
	flag.Parse()

	if *input == "" {
		log.Fatal("--input required")
	}
	if *mode != "all" && *mode != "cooccurrence" && *mode != "similarity" {
		log.Fatalf("unknown mode %q", *mode)
	}

	analysis := config.DefaultAnalysis()
	if *configPath != "" {
		var err error
		analysis, err = config.LoadAnalysis(*configPath)
		if err != nil {
			log.Fatalf("load analysis config: %v", err)
		}
	}

	var stopwords []string
	if *stoplistPath != "" {
		sl, err := config.LoadStoplist(*stoplistPath)
		if err != nil {
			log.Fatalf("load stoplist: %v", err)
		}
		stopwords = sl.Terms
	}

	targets := analysis.TargetKeywords
	if *keywords != "" {
		targets = splitKeywords(*keywords)
	}

	engine, err := newslens.New(newslens.Options{
		Stopwords: stopwords,
		Analysis:  analysis,
	})
	if err != nil {
		log.Fatalf("configure engine: %v", err)
	}

	items, err := feed.LoadFromJSONL(*input)
	if err != nil {
		log.Fatalf("load docs: %v", err)
	}
	log.Printf("Loaded %d documents from %s", len(items), *input)

	docs := make([]newslens.Document, len(items))
	records := make([]trends.Record, len(items))
	for i, item := range items {
		docs[i] = newslens.Document{
			URL:       item.URL,
			Title:     item.Title,
			Summary:   item.Summary,
			Source:    item.Source,
			Published: item.Published,
		}
		records[i] = trends.Record{
			Title:     item.Title,
			Summary:   item.Summary,
			Source:    item.Source,
			Published: item.Published,
		}
	}

	var rep report

	if *mode == "all" || *mode == "cooccurrence" {
		co, err := engine.AnalyzeCooccurrence(docs, targets)
		if err != nil {
			log.Fatalf("co-occurrence analysis: %v", err)
		}
		rep.Cooccurrence = &co
		for _, w := range co.Result.Warnings {
			log.Printf("co-occurrence warning: %s", w)
		}
	}

	if *mode == "all" || *mode == "similarity" {
		sim, err := engine.AnalyzeSimilarity(docs)
		if err != nil {
			log.Fatalf("similarity analysis: %v", err)
		}
		rep.Similarity = &sim
		for _, w := range sim.Result.Warnings {
			log.Printf("similarity warning: %s", w)
		}
	}

	if len(targets) > 0 {
		rep.Keywords = make(map[string][]trends.DayCount, len(targets))
		for _, kw := range targets {
			if days := trends.KeywordVolume(records, kw); days != nil {
				rep.Keywords[kw] = days
			}
		}
	}

	out, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		log.Fatalf("marshal report: %v", err)
	}
	fmt.Println(string(out))
}

func splitKeywords(s string) []string {
	var out []string
	for _, kw := range strings.Split(s, ",") {
		kw = strings.TrimSpace(kw)
		if kw != "" {
			out = append(out, kw)
		}
	}
	return out
}
