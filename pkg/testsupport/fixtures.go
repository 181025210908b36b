package testsupport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-blockhtml/pkg/block"
	"github.com/goliatone/go-blockhtml/pkg/config"
	"github.com/goliatone/go-blockhtml/pkg/engine"
)

// LoadDocument reads an editor payload fixture.
func LoadDocument(t *testing.T, path string) block.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T.
func LoadDocumentFromPath(path string) (block.Document, error) {
	if path == "" {
		return block.Document{}, errors.New("testsupport: document path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return block.Document{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := block.ParseDocument(data)
	if err != nil {
		return block.Document{}, fmt.Errorf("testsupport: parse document: %w", err)
	}
	return doc, nil
}

// MustLoadConfig loads every configuration file below dir.
func MustLoadConfig(t *testing.T, dir string) config.Config {
	t.Helper()

	cfg, err := config.LoadFS(os.DirFS(dir))
	if err != nil {
		t.Fatalf("load config %s: %v", dir, err)
	}
	return cfg
}

// MustRenderGolden renders the document fixture at docPath and compares the
// HTML followed by the footnote entries with the golden file at goldenPath.
// With UPDATE_GOLDENS set the golden is rewritten instead.
func MustRenderGolden(t *testing.T, e *engine.Engine, docPath, goldenPath string) engine.Result {
	t.Helper()

	res, err := e.Render(Context(), LoadDocument(t, docPath))
	if err != nil {
		t.Fatalf("render %s: %v", docPath, err)
	}

	got := GoldenText(res)
	if WriteMaybeGolden(t, goldenPath, []byte(got)) {
		return res
	}
	want := MustReadGoldenString(t, goldenPath)
	if diff := CompareGolden(want, got); diff != "" {
		t.Fatalf("golden mismatch %s (-want +got):\n%s", goldenPath, diff)
	}
	return res
}

// GoldenText is the snapshot form of a result: the HTML on its first line,
// then one line per footnote entry.
func GoldenText(res engine.Result) string {
	lines := append([]string{res.HTML}, res.Footnotes.Entries()...)
	return strings.Join(lines, "\n") + "\n"
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
