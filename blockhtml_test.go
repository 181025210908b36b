package blockhtml

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-blockhtml/pkg/engine"
	blockerrors "github.com/goliatone/go-blockhtml/pkg/errors"
	"github.com/goliatone/go-blockhtml/pkg/testsupport"
)

func TestRenderArticleGolden(t *testing.T) {
	cfg := testsupport.MustLoadConfig(t, filepath.Join("testdata", "theme"))
	e, err := NewEngine(engine.WithConfig(cfg), engine.WithCache(true))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	res := testsupport.MustRenderGolden(t, e,
		filepath.Join("testdata", "article.json"),
		filepath.Join("testdata", "article.golden"),
	)
	if res.Stats.Blocks != 5 || len(res.Warnings) != 0 {
		t.Fatalf("unexpected stats %+v warnings %v", res.Stats, res.Warnings)
	}
}

func TestRenderJSONWithDefaultTheme(t *testing.T) {
	payload := []byte(`[
		{"type": "paragraph", "data": {"text": "Hi <a href=\"https://example.com\">there</a>"}},
		{"type": "delimiter", "data": {}}
	]`)
	res, err := RenderJSON(context.Background(), payload)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(res.HTML, "<p style=") || !strings.Contains(res.HTML, "***") {
		t.Fatalf("unexpected html: %s", res.HTML)
	}
	if diff := cmp.Diff([]string{"[1]: https://example.com"}, res.Footnotes.Entries()); diff != "" {
		t.Fatalf("ledger mismatch (-want +got):\n%s", diff)
	}

	if _, err := RenderJSON(context.Background(), []byte(`[{"data": {}}]`)); err == nil {
		t.Fatalf("expected error for block without type")
	}
	if _, err := RenderJSON(context.Background(), []byte(`[{"type": "table", "data": {}}]`)); !blockerrors.IsConfiguration(err) {
		t.Fatalf("expected configuration error for unknown type, got %v", err)
	}
}

func TestRenderPage(t *testing.T) {
	doc := testsupport.LoadDocument(t, filepath.Join("testdata", "article.json"))
	out, err := RenderPage(context.Background(), doc)
	if err != nil {
		t.Fatalf("render page: %v", err)
	}
	if !strings.Contains(out, "References") || !strings.Contains(out, "[1]: https://go.dev/doc/") {
		t.Fatalf("expected reference list in page:\n%s", out)
	}
}

func TestEmbeddedFilesystems(t *testing.T) {
	for name, fsys := range map[string]fs.FS{
		"config": EmbeddedConfig(),
		"page":   EmbeddedPageTemplates(),
	} {
		entries, err := fs.ReadDir(fsys, ".")
		if err != nil || len(entries) == 0 {
			t.Fatalf("%s: expected embedded files, got %v (%v)", name, entries, err)
		}
	}

	cfg, err := LoadConfig(EmbeddedConfig())
	if err != nil {
		t.Fatalf("load embedded config: %v", err)
	}
	if !cfg.Templates.Has("paragraph") {
		t.Fatalf("embedded config lacks paragraph template")
	}
}
