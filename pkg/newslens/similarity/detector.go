// Package similarity detects near-duplicate news articles across
// sources. Documents are vectorized with TF-IDF, compared pairwise by
// cosine similarity, and matching pairs are classified into copy-paste
// severity tiers with per-source aggregation.
package similarity

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/newslens/newslens/pkg/newslens/internalerr"
)

// Severity tier boundaries. These are policy, not incidental: a pair
// scoring at or above Exact is treated as verbatim reuse, High as a
// light rewrite, Moderate as substantial overlap. Pairs admitted by a
// threshold below Moderate stay in the raw list without a tier.
const (
	ExactThreshold    = 0.95
	HighThreshold     = 0.80
	ModerateThreshold = 0.70
)

// DefaultThreshold is the standard minimum score for reporting a pair.
const DefaultThreshold = 0.7

// Document is one immutable news record handed to the engine.
type Document struct {
	Title     string
	Summary   string
	Source    string
	Published time.Time
}

// text is the analyzed form: title and summary joined.
func (d Document) text() string {
	return strings.TrimSpace(d.Title + " " + d.Summary)
}

// Pair is a similar document pair, I < J, with its cosine score.
type Pair struct {
	I, J  int
	Score float64
}

// SourceKey is a canonicalized (sorted) pair of source identifiers.
type SourceKey struct {
	A, B string
}

// NewSourceKey canonicalizes two source names.
func NewSourceKey(a, b string) SourceKey {
	if a > b {
		a, b = b, a
	}
	return SourceKey{A: a, B: b}
}

// MarshalText encodes the key as "a|b" so source-keyed maps serialize
// as plain JSON objects.
func (k SourceKey) MarshalText() ([]byte, error) {
	return []byte(k.A + "|" + k.B), nil
}

// UnmarshalText decodes a "|"-joined source key.
func (k *SourceKey) UnmarshalText(text []byte) error {
	a, b, ok := strings.Cut(string(text), "|")
	if !ok {
		return fmt.Errorf("%w: malformed source key %q", internalerr.ErrInvalidInput, text)
	}
	*k = NewSourceKey(a, b)
	return nil
}

// Patterns groups similar pairs into copy-paste severity tiers.
// SourcePatterns indexes only cross-source pairs: a near-duplicate
// within one outlet is not copy-paste journalism.
type Patterns struct {
	Exact    []Pair
	High     []Pair
	Moderate []Pair

	SourcePatterns map[SourceKey][]Pair
}

// SourceStats aggregates the similar pairs seen between one source pair.
type SourceStats struct {
	Count     int
	MeanScore float64
}

// Report is the full output of one similarity analysis run. When the
// corpus was degenerate (nothing to vectorize), Err carries the reason
// and the rest of the report is empty but well-formed.
type Report struct {
	NumDocs   int
	Threshold float64

	Pairs          []Pair
	Patterns       Patterns
	SourceAnalysis map[SourceKey]SourceStats

	Warnings []string
	Err      string
}

// Matrix is a dense symmetric cosine-similarity matrix with a unit
// diagonal.
type Matrix [][]float64

// ComputeMatrix builds the pairwise cosine matrix for a vector set.
// The diagonal is 1.0 by definition.
func ComputeMatrix(vectors []Vector) Matrix {
	n := len(vectors)
	m := make(Matrix, n)
	for i := range m {
		m[i] = make([]float64, n)
		m[i][i] = 1.0
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			score := Cosine(vectors[i], vectors[j])
			m[i][j] = score
			m[j][i] = score
		}
	}
	return m
}

// FindSimilarPairs walks the upper triangle of the matrix and keeps
// every pair scoring at least threshold, ordered by score descending
// with ties broken by (i, j) ascending.
func FindSimilarPairs(m Matrix, threshold float64) []Pair {
	if len(m) < 2 {
		return nil
	}
	var pairs []Pair
	for i := 0; i < len(m); i++ {
		for j := i + 1; j < len(m); j++ {
			if m[i][j] >= threshold {
				pairs = append(pairs, Pair{I: i, J: j, Score: m[i][j]})
			}
		}
	}
	// The scan above emits (i, j) ascending; a stable sort preserves
	// that order among equal scores.
	sort.SliceStable(pairs, func(a, b int) bool {
		return pairs[a].Score > pairs[b].Score
	})
	return pairs
}

// ClassifyPatterns assigns each pair exactly one severity tier and
// indexes cross-source pairs by their canonical source pair.
func ClassifyPatterns(pairs []Pair, docs []Document) Patterns {
	patterns := Patterns{SourcePatterns: make(map[SourceKey][]Pair)}
	for _, p := range pairs {
		switch {
		case p.Score >= ExactThreshold:
			patterns.Exact = append(patterns.Exact, p)
		case p.Score >= HighThreshold:
			patterns.High = append(patterns.High, p)
		case p.Score >= ModerateThreshold:
			patterns.Moderate = append(patterns.Moderate, p)
		}

		srcA, srcB := docs[p.I].Source, docs[p.J].Source
		if srcA != srcB {
			key := NewSourceKey(srcA, srcB)
			patterns.SourcePatterns[key] = append(patterns.SourcePatterns[key], p)
		}
	}
	return patterns
}

// AnalyzeSourceSimilarity aggregates pair counts and mean scores per
// canonical source pair, same-source pairs included.
func AnalyzeSourceSimilarity(pairs []Pair, docs []Document) map[SourceKey]SourceStats {
	sums := make(map[SourceKey]float64)
	counts := make(map[SourceKey]int)
	for _, p := range pairs {
		key := NewSourceKey(docs[p.I].Source, docs[p.J].Source)
		sums[key] += p.Score
		counts[key]++
	}
	out := make(map[SourceKey]SourceStats, len(counts))
	for key, count := range counts {
		out[key] = SourceStats{Count: count, MeanScore: sums[key] / float64(count)}
	}
	return out
}

// Detect runs the full similarity pipeline over a document batch.
// Fewer than two documents is a normal no-signal outcome, not an
// error. A degenerate corpus (no extractable terms) is caught at this
// boundary and surfaced through Report.Err with empty results. An
// invalid threshold is the only hard error.
func Detect(docs []Document, threshold float64) (Report, error) {
	if threshold < 0 || threshold > 1 {
		return Report{}, fmt.Errorf("%w: similarity threshold must be in [0, 1], got %g",
			internalerr.ErrInvalidConfig, threshold)
	}

	report := Report{
		NumDocs:        len(docs),
		Threshold:      threshold,
		Patterns:       Patterns{SourcePatterns: map[SourceKey][]Pair{}},
		SourceAnalysis: map[SourceKey]SourceStats{},
	}
	if len(docs) < 2 {
		report.Warnings = append(report.Warnings,
			"fewer than two documents; similarity is undefined")
		return report, nil
	}

	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.text()
	}

	var vectorizer Vectorizer
	vectors, warnings, err := vectorizer.Fit(texts)
	if err != nil {
		if errors.Is(err, internalerr.ErrInsufficientData) {
			report.Err = "corpus has no extractable terms"
			return report, nil
		}
		return Report{}, err
	}
	report.Warnings = append(report.Warnings, warnings...)

	matrix := ComputeMatrix(vectors)
	report.Pairs = FindSimilarPairs(matrix, threshold)
	report.Patterns = ClassifyPatterns(report.Pairs, docs)
	report.SourceAnalysis = AnalyzeSourceSimilarity(report.Pairs, docs)

	return report, nil
}
