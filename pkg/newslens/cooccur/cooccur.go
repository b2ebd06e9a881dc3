// Package cooccur builds weighted word-association graphs from cleaned
// token sequences and derives network metrics from them: windowed
// co-occurrence pairs, consecutive trigrams, centrality rankings,
// critical nodes and modularity communities.
//
// The engine is a pure function of its input: it holds no state
// between calls and, given identical token sequences and parameters,
// produces identical output.
package cooccur

import (
	"fmt"
	"sort"

	"github.com/newslens/newslens/pkg/newslens/internalerr"
)

// Default analysis parameters, matching the scale the engine targets
// (thousands of short news records per run).
const (
	DefaultWindowSize    = 3
	DefaultMinPairCount  = 2
	DefaultMinEdgeWeight = 3
	DefaultMaxNodes      = 50
	DefaultMaxTrigrams   = 20
)

// Params bound a co-occurrence analysis run.
type Params struct {
	// WindowSize is how many positions ahead of a token count as
	// co-occurrence.
	WindowSize int
	// MinPairCount drops pairs seen fewer times across the corpus.
	MinPairCount int
	// MinEdgeWeight drops graph edges below this pair count.
	MinEdgeWeight int
	// MaxNodes caps the graph at the heaviest tokens.
	MaxNodes int
	// MaxTrigrams caps the reported trigram list.
	MaxTrigrams int
}

// DefaultParams returns the standard analysis parameters.
func DefaultParams() Params {
	return Params{
		WindowSize:    DefaultWindowSize,
		MinPairCount:  DefaultMinPairCount,
		MinEdgeWeight: DefaultMinEdgeWeight,
		MaxNodes:      DefaultMaxNodes,
		MaxTrigrams:   DefaultMaxTrigrams,
	}
}

// Validate rejects parameter combinations that would silently change
// the meaning of the analysis.
func (p Params) Validate() error {
	if p.WindowSize < 1 {
		return fmt.Errorf("%w: window size must be at least 1, got %d",
			internalerr.ErrInvalidConfig, p.WindowSize)
	}
	if p.MinPairCount < 1 {
		return fmt.Errorf("%w: minimum pair count must be at least 1, got %d",
			internalerr.ErrInvalidConfig, p.MinPairCount)
	}
	if p.MinEdgeWeight < 1 {
		return fmt.Errorf("%w: minimum edge weight must be at least 1, got %d",
			internalerr.ErrInvalidConfig, p.MinEdgeWeight)
	}
	if p.MaxNodes < 1 {
		return fmt.Errorf("%w: max nodes must be at least 1, got %d",
			internalerr.ErrInvalidConfig, p.MaxNodes)
	}
	if p.MaxTrigrams < 1 {
		return fmt.Errorf("%w: max trigrams must be at least 1, got %d",
			internalerr.ErrInvalidConfig, p.MaxTrigrams)
	}
	return nil
}

// PairCount pairs a canonical pair with its count, for ranked listings.
type PairCount struct {
	Pair  Pair
	Count int
}

// Report is the full output of one co-occurrence analysis run.
type Report struct {
	NumDocs int

	Pairs    map[Pair]int
	TopPairs []PairCount
	Trigrams []TrigramCount

	Graph   *Graph
	Metrics MetricsReport

	// Associations maps each requested keyword to its strongest
	// co-occurring tokens. Empty when no keywords were requested.
	Associations map[string][]WordCount

	Warnings []string
}

// Analyze runs the complete co-occurrence pipeline over cleaned token
// sequences: pair extraction, trigram extraction, graph construction,
// network metrics and optional keyword associations. Empty input is
// not an error; it produces an empty, well-formed report.
func Analyze(tokenSeqs [][]string, params Params, targetKeywords []string) (Report, error) {
	if err := params.Validate(); err != nil {
		return Report{}, err
	}

	report := Report{NumDocs: len(tokenSeqs)}

	report.Pairs = ExtractPairs(tokenSeqs, params.WindowSize, params.MinPairCount)
	report.TopPairs = rankPairs(report.Pairs, topCentral)
	report.Trigrams = ExtractTrigrams(tokenSeqs, params.MaxTrigrams)

	report.Graph = BuildGraph(report.Pairs, params.MinEdgeWeight, params.MaxNodes)
	report.Metrics = ComputeMetrics(report.Graph)
	report.Warnings = append(report.Warnings, report.Metrics.Warnings...)

	if len(targetKeywords) > 0 {
		report.Associations = KeywordAssociations(tokenSeqs, targetKeywords)
	}

	if len(report.Pairs) == 0 {
		report.Warnings = append(report.Warnings,
			"no co-occurrence pairs survived the minimum count filter")
	}

	return report, nil
}

// rankPairs orders pairs by count descending, ties broken by the
// canonical pair key ascending.
func rankPairs(pairs map[Pair]int, topN int) []PairCount {
	ranked := make([]PairCount, 0, len(pairs))
	for p, count := range pairs {
		ranked = append(ranked, PairCount{Pair: p, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		if ranked[i].Pair.A != ranked[j].Pair.A {
			return ranked[i].Pair.A < ranked[j].Pair.A
		}
		return ranked[i].Pair.B < ranked[j].Pair.B
	})
	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}
