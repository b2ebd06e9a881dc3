// Package config loads the analysis configuration: the stopword list
// and the engine parameters, both YAML files.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/newslens/newslens/pkg/newslens/cooccur"
	"github.com/newslens/newslens/pkg/newslens/internalerr"
	"github.com/newslens/newslens/pkg/newslens/similarity"
)

// Stoplist is the stopword list configuration
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, err
	}

	return &sl, nil
}

// Analysis holds the tunable parameters for both engines.
type Analysis struct {
	WindowSize          int     `yaml:"window_size"`
	MinPairCount        int     `yaml:"min_pair_count"`
	MinEdgeWeight       int     `yaml:"min_edge_weight"`
	MaxNodes            int     `yaml:"max_nodes"`
	MaxTrigrams         int     `yaml:"max_trigrams"`
	SimilarityThreshold float64 `yaml:"similarity_threshold"`

	TargetKeywords []string `yaml:"target_keywords"`
}

// DefaultAnalysis returns the standard parameters.
func DefaultAnalysis() Analysis {
	return Analysis{
		WindowSize:          cooccur.DefaultWindowSize,
		MinPairCount:        cooccur.DefaultMinPairCount,
		MinEdgeWeight:       cooccur.DefaultMinEdgeWeight,
		MaxNodes:            cooccur.DefaultMaxNodes,
		MaxTrigrams:         cooccur.DefaultMaxTrigrams,
		SimilarityThreshold: similarity.DefaultThreshold,
	}
}

// LoadAnalysis reads analysis parameters from a YAML file. Fields
// omitted in the file keep their defaults; the merged result is
// validated before being returned.
func LoadAnalysis(path string) (Analysis, error) {
	a := DefaultAnalysis()

	data, err := os.ReadFile(path)
	if err != nil {
		return Analysis{}, fmt.Errorf("read analysis config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &a); err != nil {
		return Analysis{}, fmt.Errorf("parse analysis config %s: %w", path, err)
	}
	if err := a.Validate(); err != nil {
		return Analysis{}, err
	}
	return a, nil
}

// Validate checks the combined parameter set.
func (a Analysis) Validate() error {
	if err := a.CooccurParams().Validate(); err != nil {
		return err
	}
	if a.SimilarityThreshold < 0 || a.SimilarityThreshold > 1 {
		return fmt.Errorf("%w: similarity threshold must be in [0, 1], got %g",
			internalerr.ErrInvalidConfig, a.SimilarityThreshold)
	}
	return nil
}

// CooccurParams projects the co-occurrence engine's parameters.
func (a Analysis) CooccurParams() cooccur.Params {
	return cooccur.Params{
		WindowSize:    a.WindowSize,
		MinPairCount:  a.MinPairCount,
		MinEdgeWeight: a.MinEdgeWeight,
		MaxNodes:      a.MaxNodes,
		MaxTrigrams:   a.MaxTrigrams,
	}
}
