package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/newslens/newslens/pkg/newslens/internalerr"
)

func TestLoadStoplist(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "stoplist.yaml")

	content := `terms:
  - ve
  - bir
  - bu
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	sl, err := LoadStoplist(path)
	if err != nil {
		t.Fatalf("Failed to load stoplist: %v", err)
	}

	if len(sl.Terms) != 3 {
		t.Errorf("Expected 3 terms, got %d", len(sl.Terms))
	}
}

func TestLoadAnalysisDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "analysis.yaml")

	content := `window_size: 5
similarity_threshold: 0.6
target_keywords:
  - ekonomi
  - siyaset
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	a, err := LoadAnalysis(path)
	if err != nil {
		t.Fatalf("Failed to load analysis config: %v", err)
	}

	if a.WindowSize != 5 {
		t.Errorf("Expected window size 5, got %d", a.WindowSize)
	}
	if a.SimilarityThreshold != 0.6 {
		t.Errorf("Expected threshold 0.6, got %f", a.SimilarityThreshold)
	}
	// Omitted fields keep their defaults.
	if a.MaxNodes != DefaultAnalysis().MaxNodes {
		t.Errorf("Expected default max nodes, got %d", a.MaxNodes)
	}
	if len(a.TargetKeywords) != 2 {
		t.Errorf("Expected 2 target keywords, got %v", a.TargetKeywords)
	}
}

func TestLoadAnalysisInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "analysis.yaml")

	content := `window_size: 0
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadAnalysis(path)
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidateThreshold(t *testing.T) {
	a := DefaultAnalysis()
	a.SimilarityThreshold = 1.5
	if err := a.Validate(); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for threshold 1.5, got %v", err)
	}
}
