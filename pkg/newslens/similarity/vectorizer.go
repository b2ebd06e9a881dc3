package similarity

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/newslens/newslens/pkg/newslens/internalerr"
)

// Vocabulary bounds. Terms must appear in at least minDocFreq
// documents and at most maxDocFreqRatio of the corpus; the surviving
// terms are capped at maxVocabulary by corpus frequency.
const (
	maxVocabulary   = 1000
	minDocFreq      = 2
	maxDocFreqRatio = 0.95
)

// Vector is a sparse TF-IDF document vector, L2-normalized, keyed by
// vocabulary index.
type Vector map[int]float64

// Vectorizer turns a document corpus into TF-IDF vectors. It is
// scoped to a single analysis call: Fit builds the vocabulary and IDF
// weights from one corpus and the vectorizer is then discarded.
type Vectorizer struct {
	vocab map[string]int
	idf   []float64
}

// Fit builds the vocabulary over the corpus and returns one
// L2-normalized TF-IDF vector per document. Term weighting follows
// the standard smoothed form: tf * (ln((1+N)/(1+df)) + 1).
//
// When the document-frequency band removes every term (tiny or
// near-uniform corpora), the band is lifted and the full vocabulary
// is used instead; the caller receives a warning for that case.
// A corpus with no extractable terms at all returns
// internalerr.ErrInsufficientData.
func (v *Vectorizer) Fit(texts []string) ([]Vector, []string, error) {
	var warnings []string

	termsPerDoc := make([][]string, len(texts))
	df := make(map[string]int)
	tf := make(map[string]int)
	for i, text := range texts {
		terms := extractTerms(text)
		termsPerDoc[i] = terms
		seen := make(map[string]struct{}, len(terms))
		for _, term := range terms {
			tf[term]++
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}
	if len(df) == 0 {
		return nil, nil, internalerr.ErrInsufficientData
	}

	maxDF := int(maxDocFreqRatio * float64(len(texts)))
	kept := make([]string, 0, len(df))
	for term, count := range df {
		if count < minDocFreq || count > maxDF {
			continue
		}
		kept = append(kept, term)
	}
	if len(kept) == 0 {
		// Degenerate corpus: every term is either too rare or too
		// common. Fall back to the unfiltered vocabulary so that
		// near-identical documents still compare as such.
		warnings = append(warnings,
			"document-frequency band removed every term; using unfiltered vocabulary")
		for term := range df {
			kept = append(kept, term)
		}
	}

	// Cap by corpus frequency, ties broken lexicographically.
	sort.Slice(kept, func(i, j int) bool {
		if tf[kept[i]] != tf[kept[j]] {
			return tf[kept[i]] > tf[kept[j]]
		}
		return kept[i] < kept[j]
	})
	if len(kept) > maxVocabulary {
		kept = kept[:maxVocabulary]
	}
	sort.Strings(kept)

	v.vocab = make(map[string]int, len(kept))
	v.idf = make([]float64, len(kept))
	n := float64(len(texts))
	for i, term := range kept {
		v.vocab[term] = i
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	vectors := make([]Vector, len(texts))
	for i, terms := range termsPerDoc {
		vectors[i] = v.transform(terms)
	}
	return vectors, warnings, nil
}

// transform builds one normalized TF-IDF vector from a term list.
func (v *Vectorizer) transform(terms []string) Vector {
	vec := make(Vector)
	for _, term := range terms {
		if idx, ok := v.vocab[term]; ok {
			vec[idx]++
		}
	}
	var norm float64
	for idx, count := range vec {
		w := count * v.idf[idx]
		vec[idx] = w
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx, w := range vec {
			vec[idx] = w / norm
		}
	}
	return vec
}

// VocabularySize returns the number of fitted terms.
func (v *Vectorizer) VocabularySize() int { return len(v.vocab) }

// Cosine is the cosine similarity of two L2-normalized sparse vectors.
// TF-IDF weights are non-negative, so the result lies in [0, 1].
func Cosine(a, b Vector) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for idx, w := range a {
		dot += w * b[idx]
	}
	if dot > 1 {
		// guard against float drift above the theoretical bound
		dot = 1
	}
	return dot
}

// extractTerms lowercases text and splits it into alphanumeric runs.
// No length floor here: short-token filtering is the normalizer's job,
// and dropping terms at this layer would blind the engine to corpora
// of very short titles.
func extractTerms(text string) []string {
	var terms []string
	var current strings.Builder
	flush := func() {
		if current.Len() == 0 {
			return
		}
		terms = append(terms, current.String())
		current.Reset()
	}
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			current.WriteRune(unicode.ToLower(r))
		} else {
			flush()
		}
	}
	flush()
	return terms
}
