// Package textnorm turns raw article text into the cleaned token
// sequences the analysis engines consume: lowercase, punctuation-free,
// digit-free, stopword-filtered, whitespace-tokenized.
package textnorm

import (
	"strings"
	"unicode"
)

// Normalizer handles text normalization and stopword filtering
type Normalizer struct {
	stopwords map[string]struct{}
}

// New creates a normalizer with the given stopword list
func New(stopwords []string) *Normalizer {
	stops := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		stops[strings.ToLower(w)] = struct{}{}
	}
	return &Normalizer{stopwords: stops}
}

// Normalize splits raw text into normalized tokens, removing
// punctuation, digit-only runs and stopwords.
func (n *Normalizer) Normalize(text string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		word := current.String()
		current.Reset()
		if n.isStopword(word) {
			return
		}
		tokens = append(tokens, word)
	}

	for _, r := range text {
		if unicode.IsLetter(r) {
			current.WriteRune(unicode.ToLower(r))
		} else {
			flush()
		}
	}
	flush()

	return tokens
}

// NormalizeAll normalizes a batch of raw texts, one token sequence per input.
func (n *Normalizer) NormalizeAll(texts []string) [][]string {
	out := make([][]string, len(texts))
	for i, text := range texts {
		out[i] = n.Normalize(text)
	}
	return out
}

// Join rebuilds a single cleaned string from a token sequence.
// Joining and re-splitting yields the original sequence.
func Join(tokens []string) string {
	return strings.Join(tokens, " ")
}

func (n *Normalizer) isStopword(word string) bool {
	_, ok := n.stopwords[word]
	return ok
}

// AddStopword adds a word to the stopword list
func (n *Normalizer) AddStopword(word string) {
	n.stopwords[strings.ToLower(word)] = struct{}{}
}

// RemoveStopword removes a word from the stopword list
func (n *Normalizer) RemoveStopword(word string) {
	delete(n.stopwords, strings.ToLower(word))
}
