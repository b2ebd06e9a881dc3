package cooccur

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/newslens/newslens/pkg/newslens/internalerr"
)

// minTokenLen is the noise floor for pair and trigram formation.
// Tokens of two runes or fewer carry too little signal in headline text.
const minTokenLen = 3

// Pair is an unordered token pair, canonicalized so A < B.
type Pair struct {
	A, B string
}

// NewPair canonicalizes a token pair by lexicographic order.
func NewPair(a, b string) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

// MarshalText encodes the pair as its two tokens space-joined, so
// pair-keyed maps serialize as plain JSON objects. Tokens are
// letter-only by construction and cannot contain the separator.
func (p Pair) MarshalText() ([]byte, error) {
	return []byte(p.A + " " + p.B), nil
}

// UnmarshalText decodes a space-joined pair key.
func (p *Pair) UnmarshalText(text []byte) error {
	a, b, ok := strings.Cut(string(text), " ")
	if !ok || a == "" || b == "" {
		return fmt.Errorf("%w: malformed pair key %q", internalerr.ErrInvalidInput, text)
	}
	*p = NewPair(a, b)
	return nil
}

// Trigram is an ordered triple of consecutive tokens. Unlike pairs,
// order is preserved: "bakan açıklama yaptı" and "yaptı açıklama bakan"
// are distinct trigrams.
type Trigram struct {
	A, B, C string
}

// TrigramCount pairs a trigram with its corpus-wide occurrence count.
type TrigramCount struct {
	Trigram Trigram
	Count   int
}

// WordCount pairs a token with an occurrence count.
type WordCount struct {
	Word  string
	Count int
}

// ExtractPairs scans every document's token sequence with a forward
// window of windowSize tokens and accumulates canonical pair counts.
// Position i pairs with positions i+1 .. i+windowSize. Self-pairs and
// tokens shorter than three runes are skipped. Pairs with a total
// count below minCount are dropped.
//
// The result is a pure function of the input: no randomness, no
// floating point.
func ExtractPairs(tokenSeqs [][]string, windowSize, minCount int) map[Pair]int {
	counts := make(map[Pair]int)

	for _, tokens := range tokenSeqs {
		if len(tokens) < 2 {
			continue
		}
		for i := 0; i < len(tokens); i++ {
			if utf8.RuneCountInString(tokens[i]) < minTokenLen {
				continue
			}
			end := i + windowSize
			if end >= len(tokens) {
				end = len(tokens) - 1
			}
			for j := i + 1; j <= end; j++ {
				if tokens[j] == tokens[i] {
					continue
				}
				if utf8.RuneCountInString(tokens[j]) < minTokenLen {
					continue
				}
				counts[NewPair(tokens[i], tokens[j])]++
			}
		}
	}

	for p, count := range counts {
		if count < minCount {
			delete(counts, p)
		}
	}
	return counts
}

// ExtractTrigrams slides a window of three consecutive tokens over each
// document and counts exact ordered triples. Trigrams containing a
// token shorter than three runes are skipped. Returns at most
// maxResults trigrams ordered by count descending; ties keep
// first-seen order.
func ExtractTrigrams(tokenSeqs [][]string, maxResults int) []TrigramCount {
	counts := make(map[Trigram]int)
	var order []Trigram // insertion order for the stable tie-break

	for _, tokens := range tokenSeqs {
		for i := 0; i+2 < len(tokens); i++ {
			if utf8.RuneCountInString(tokens[i]) < minTokenLen ||
				utf8.RuneCountInString(tokens[i+1]) < minTokenLen ||
				utf8.RuneCountInString(tokens[i+2]) < minTokenLen {
				continue
			}
			tg := Trigram{A: tokens[i], B: tokens[i+1], C: tokens[i+2]}
			if _, seen := counts[tg]; !seen {
				order = append(order, tg)
			}
			counts[tg]++
		}
	}

	out := make([]TrigramCount, 0, len(order))
	for _, tg := range order {
		out = append(out, TrigramCount{Trigram: tg, Count: counts[tg]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if maxResults > 0 && len(out) > maxResults {
		out = out[:maxResults]
	}
	return out
}

// KeywordAssociations finds, for each target keyword, the tokens that
// most often share a document with it. A document participates when
// its joined lowercase text contains the keyword as a substring. Each
// keyword maps to its top 10 co-occurring tokens by count descending,
// ties broken lexicographically.
func KeywordAssociations(tokenSeqs [][]string, targetKeywords []string) map[string][]WordCount {
	const topN = 10

	associations := make(map[string][]WordCount, len(targetKeywords))
	joined := make([]string, len(tokenSeqs))
	for i, tokens := range tokenSeqs {
		joined[i] = strings.ToLower(strings.Join(tokens, " "))
	}

	for _, keyword := range targetKeywords {
		kw := strings.ToLower(keyword)
		counts := make(map[string]int)

		for i, text := range joined {
			if !strings.Contains(text, kw) {
				continue
			}
			for _, tok := range tokenSeqs[i] {
				lower := strings.ToLower(tok)
				if lower == kw || utf8.RuneCountInString(lower) < minTokenLen {
					continue
				}
				counts[lower]++
			}
		}

		associations[keyword] = topWordCounts(counts, topN)
	}
	return associations
}

// WordFrequencies counts token occurrences across all documents and
// returns the topN most frequent, ties broken lexicographically.
func WordFrequencies(tokenSeqs [][]string, topN int) []WordCount {
	counts := make(map[string]int)
	for _, tokens := range tokenSeqs {
		for _, tok := range tokens {
			if utf8.RuneCountInString(tok) < minTokenLen {
				continue
			}
			counts[tok]++
		}
	}
	return topWordCounts(counts, topN)
}

func topWordCounts(counts map[string]int, topN int) []WordCount {
	out := make([]WordCount, 0, len(counts))
	for word, count := range counts {
		out = append(out, WordCount{Word: word, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}
