// Package newslens is the analysis facade over the co-occurrence and
// similarity engines. It normalizes raw article text, runs the
// requested analysis and wraps the result in an identified, timestamped
// report the orchestration layer can persist as-is.
package newslens

import (
	"crypto/rand"
	"encoding/json"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/newslens/newslens/pkg/newslens/config"
	"github.com/newslens/newslens/pkg/newslens/cooccur"
	"github.com/newslens/newslens/pkg/newslens/similarity"
	"github.com/newslens/newslens/pkg/newslens/store"
	"github.com/newslens/newslens/pkg/newslens/textnorm"
	"github.com/newslens/newslens/pkg/newslens/trends"
)

// Document is one news record handed to the engine.
type Document struct {
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Source    string    `json:"source"`
	Published time.Time `json:"published"`
}

// Options configures an Engine.
type Options struct {
	Stopwords []string
	Analysis  config.Analysis
}

// Engine runs analyses over article batches. It holds no per-batch
// state; two calls with identical input produce identical analytical
// content (only the report ID and timestamp differ).
type Engine struct {
	norm     *textnorm.Normalizer
	analysis config.Analysis
	entropy  *ulid.MonotonicEntropy
}

// New creates an Engine, validating the analysis parameters eagerly.
func New(opts Options) (*Engine, error) {
	if err := opts.Analysis.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		norm:     textnorm.New(opts.Stopwords),
		analysis: opts.Analysis,
		entropy:  ulid.Monotonic(rand.Reader, 0),
	}, nil
}

// topPairTrends caps how many per-day pair trajectories the report
// carries.
const topPairTrends = 10

// CooccurrenceReport is an identified co-occurrence analysis result.
type CooccurrenceReport struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`

	Result     cooccur.Report      `json:"result"`
	Volume     trends.VolumeReport `json:"volume"`
	PairTrends []trends.PairTrend  `json:"pair_trends"`
}

// SimilarityReport is an identified similarity analysis result.
type SimilarityReport struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`

	Result similarity.Report `json:"result"`
}

// AnalyzeCooccurrence normalizes the batch and runs the full
// co-occurrence pipeline plus the temporal volume supplement.
// targetKeywords may be nil.
func (e *Engine) AnalyzeCooccurrence(docs []Document, targetKeywords []string) (CooccurrenceReport, error) {
	tokenSeqs := make([][]string, len(docs))
	records := make([]trends.Record, len(docs))
	for i, d := range docs {
		tokenSeqs[i] = e.norm.Normalize(d.Title + " " + d.Summary)
		records[i] = trends.Record{
			Title:     d.Title,
			Summary:   d.Summary,
			Source:    d.Source,
			Published: d.Published,
		}
	}

	result, err := cooccur.Analyze(tokenSeqs, e.analysis.CooccurParams(), targetKeywords)
	if err != nil {
		return CooccurrenceReport{}, err
	}

	tokensFor := func(r trends.Record) []string {
		return e.norm.Normalize(r.Title + " " + r.Summary)
	}

	return CooccurrenceReport{
		ID:          e.newID(),
		GeneratedAt: time.Now().UTC(),
		Result:      result,
		Volume:      trends.DailyVolume(records),
		PairTrends:  trends.PairTrends(records, tokensFor, e.analysis.CooccurParams(), topPairTrends),
	}, nil
}

// AnalyzeSimilarity runs copy-paste detection over the batch. The
// similarity engine vectorizes raw title+summary text itself, so no
// normalization pass happens here.
func (e *Engine) AnalyzeSimilarity(docs []Document) (SimilarityReport, error) {
	simDocs := make([]similarity.Document, len(docs))
	for i, d := range docs {
		simDocs[i] = similarity.Document{
			Title:     d.Title,
			Summary:   d.Summary,
			Source:    d.Source,
			Published: d.Published,
		}
	}

	result, err := similarity.Detect(simDocs, e.analysis.SimilarityThreshold)
	if err != nil {
		return SimilarityReport{}, err
	}

	return SimilarityReport{
		ID:          e.newID(),
		GeneratedAt: time.Now().UTC(),
		Result:      result,
	}, nil
}

// Normalize exposes the engine's normalizer for callers that need the
// cleaned token sequence of a single text.
func (e *Engine) Normalize(text string) []string {
	return e.norm.Normalize(text)
}

// Stored converts the report into its persistable form.
func (r CooccurrenceReport) Stored() (store.Report, error) {
	payload, err := json.Marshal(r)
	if err != nil {
		return store.Report{}, err
	}
	return store.Report{
		ID:          r.ID,
		Kind:        store.KindCooccurrence,
		GeneratedAt: r.GeneratedAt,
		NumDocs:     r.Result.NumDocs,
		Payload:     payload,
	}, nil
}

// Stored converts the report into its persistable form.
func (r SimilarityReport) Stored() (store.Report, error) {
	payload, err := json.Marshal(r)
	if err != nil {
		return store.Report{}, err
	}
	return store.Report{
		ID:          r.ID,
		Kind:        store.KindSimilarity,
		GeneratedAt: r.GeneratedAt,
		NumDocs:     r.Result.NumDocs,
		Payload:     payload,
	}, nil
}

func (e *Engine) newID() string {
	return ulid.MustNew(ulid.Now(), e.entropy).String()
}
