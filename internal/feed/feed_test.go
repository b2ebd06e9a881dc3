package feed

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromJSONL(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "articles.jsonl")

	content := `{"url":"https://example.com/1","title":"Ekonomi haberleri","summary":"<p>Bakan <b>açıklama</b> yaptı</p>","source":"example","published":"2026-08-01T10:00:00Z"}
not valid json
{"url":"https://example.com/2","title":"Spor","summary":"Maç sonuçları","source":"example","published":"2026-08-02T10:00:00Z"}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	items, err := LoadFromJSONL(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items (malformed line skipped), got %d", len(items))
	}
	if items[0].Summary != "Bakan açıklama yaptı" {
		t.Errorf("summary markup should be stripped, got %q", items[0].Summary)
	}
}

func TestLoadFromJSONLEmpty(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "empty.jsonl")
	if err := os.WriteFile(path, []byte("\n\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromJSONL(path); err == nil {
		t.Error("file with no valid items should error")
	}
}

func TestStripHTML(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"plain text", "plain text"},
		{"<p>Hello <b>world</b></p>", "Hello world"},
		{"a &amp; b", "a & b"},
		{"  spaced   out  ", "spaced out"},
		{"", ""},
	}
	for _, c := range cases {
		if got := StripHTML(c.in); got != c.want {
			t.Errorf("StripHTML(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
