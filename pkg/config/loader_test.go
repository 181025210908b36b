package config

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	blockerrors "github.com/goliatone/go-blockhtml/pkg/errors"
	"github.com/goliatone/go-blockhtml/pkg/style"
	"github.com/goliatone/go-blockhtml/pkg/template"
)

func TestDefaultThemeLoads(t *testing.T) {
	cfg, err := Default()
	if err != nil {
		t.Fatalf("load default: %v", err)
	}

	wantTypes := []string{"code", "delimiter", "header", "list", "markdown", "paragraph", "quote"}
	if diff := cmp.Diff(wantTypes, cfg.Templates.Types()); diff != "" {
		t.Fatalf("types mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"default", "h1", "h2", "h3", "h4"}, cfg.Templates.Variants("header")); diff != "" {
		t.Fatalf("header variants mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"https://mp.weixin.qq.com/"}, cfg.Permalinks); diff != "" {
		t.Fatalf("permalinks mismatch (-want +got):\n%s", diff)
	}
	if _, ok := cfg.Inline.Lookup("sup"); !ok {
		t.Fatalf("expected sup entry in inline table")
	}

	root, err := cfg.Templates.Resolve("header", "h1")
	if err != nil {
		t.Fatalf("resolve h1: %v", err)
	}
	if root.Tag != "h1" {
		t.Fatalf("h1 variant tag = %q", root.Tag)
	}

	para, err := cfg.Templates.Resolve("paragraph", "")
	if err != nil {
		t.Fatalf("resolve paragraph: %v", err)
	}
	want := "margin: 0 0 16px; font-size: 15px; line-height: 1.75; color: #3f3f3f; letter-spacing: 0.5px;"
	if got := style.Serialize(para.Style); got != want {
		t.Fatalf("paragraph style order not preserved:\n got %q\nwant %q", got, want)
	}

	quote, err := cfg.Templates.Resolve("quote", "")
	if err != nil {
		t.Fatalf("resolve quote: %v", err)
	}
	if len(quote.Children) != 2 || quote.Children[1].Field != "caption" || !quote.Children[1].OmitEmpty {
		t.Fatalf("unexpected quote template: %#v", quote.Children)
	}

	if _, err := MustDefault().Templates.Resolve("markdown", ""); err != nil {
		t.Fatalf("markdown template from json file: %v", err)
	}
}

func TestLoadFSMergesFormats(t *testing.T) {
	fsys := fstest.MapFS{
		"a.json": {Data: []byte(`{
			"templates": {"paragraph": {"default": {"tag": "p", "style": {"fontSize": "14px", "color": "#333"}, "children": [{"tag": "span", "content": true}]}}},
			"permalinks": ["https://self.example/"]
		}`)},
		"b.yaml": {Data: []byte(`
templates:
  header:
    default:
      tag: h2
      style: "font-weight: bold; margin: 0 !important"
      content: true
inline:
  strong: "font-weight:bold;"
`)},
		"c.toml": {Data: []byte(`
permalinks = ["https://self.example/", "https://other.example/"]

[inline]
a = "color:#07c160;"

[templates.delimiter.default]
tag = "hr"
style = "border: 0; height: 1px"
`)},
		"README.md": {Data: []byte("ignored")},
	}

	cfg, err := LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if diff := cmp.Diff([]string{"delimiter", "header", "paragraph"}, cfg.Templates.Types()); diff != "" {
		t.Fatalf("types mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"https://self.example/", "https://other.example/"}, cfg.Permalinks); diff != "" {
		t.Fatalf("permalinks mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "strong"}, cfg.Inline.Tags()); diff != "" {
		t.Fatalf("inline tags mismatch (-want +got):\n%s", diff)
	}

	cases := map[string]string{
		"paragraph": "font-size: 14px; color: #333;",
		"header":    "font-weight: bold; margin: 0 !important;",
		"delimiter": "border: 0; height: 1px;",
	}
	for blockType, want := range cases {
		root, err := cfg.Templates.Resolve(blockType, "")
		if err != nil {
			t.Fatalf("resolve %s: %v", blockType, err)
		}
		if got := style.Serialize(root.Style); got != want {
			t.Fatalf("%s style = %q, want %q", blockType, got, want)
		}
	}
}

func TestLoadFSRejectsInvalidConfig(t *testing.T) {
	cases := map[string]struct {
		files fstest.MapFS
		isCfg bool
		want  string
	}{
		"duplicate template": {
			files: fstest.MapFS{
				"a.yaml": {Data: []byte("templates:\n  paragraph:\n    default: {tag: p, content: true}\n")},
				"b.yaml": {Data: []byte("templates:\n  paragraph:\n    default: {tag: div, content: true}\n")},
			},
			isCfg: true,
			want:  "duplicate template",
		},
		"content with children": {
			files: fstest.MapFS{
				"a.yaml": {Data: []byte("templates:\n  paragraph:\n    default:\n      tag: p\n      content: true\n      children:\n        - {tag: span, content: true}\n")},
			},
			isCfg: true,
		},
		"missing default variant": {
			files: fstest.MapFS{
				"a.yaml": {Data: []byte("templates:\n  header:\n    h1: {tag: h1, content: true}\n")},
			},
			isCfg: true,
			want:  `missing "default" variant`,
		},
		"unknown inline tag": {
			files: fstest.MapFS{
				"a.yaml": {Data: []byte("inline:\n  blink: \"color: red;\"\ntemplates:\n  paragraph:\n    default: {tag: p, content: true}\n")},
			},
			isCfg: true,
			want:  "blink",
		},
		"duplicate inline entry": {
			files: fstest.MapFS{
				"a.yaml": {Data: []byte("inline:\n  b: \"font-weight: bold;\"\n")},
				"b.toml": {Data: []byte("[inline]\nb = \"font-weight: 700;\"\n")},
			},
			isCfg: true,
			want:  "duplicate entry",
		},
		"no templates": {
			files: fstest.MapFS{
				"a.yaml": {Data: []byte("permalinks: [\"https://x.example/\"]\n")},
			},
			isCfg: true,
			want:  "no templates configured",
		},
		"no files": {
			files: fstest.MapFS{"notes.txt": {Data: []byte("x")}},
			isCfg: true,
			want:  "no configuration files found",
		},
		"nested style value": {
			files: fstest.MapFS{
				"a.yaml": {Data: []byte("templates:\n  paragraph:\n    default:\n      tag: p\n      style:\n        margin: {top: 1px}\n")},
			},
			want: "value must be a scalar",
		},
		"empty file": {
			files: fstest.MapFS{"a.json": {Data: []byte("  \n")}},
			want:  "is empty",
		},
	}

	for name, tc := range cases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadFS(tc.files)
			if err == nil {
				t.Fatalf("expected error")
			}
			if tc.isCfg && !blockerrors.IsConfiguration(err) {
				t.Fatalf("expected configuration error, got %v", err)
			}
			if tc.want != "" && !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestParseSingleFile(t *testing.T) {
	cfg, err := Parse([]byte(`
[templates.paragraph.default]
tag = "p"
attrs = { class = "lead" }

[[templates.paragraph.default.children]]
tag = "span"
content = true
`), "theme.toml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	root, err := cfg.Templates.Resolve("paragraph", "missing")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := template.Node{
		Tag:      "p",
		Attrs:    map[string]string{"class": "lead"},
		Children: []template.Node{{Tag: "span", Content: true}},
	}
	if diff := cmp.Diff(want, root); diff != "" {
		t.Fatalf("node mismatch (-want +got):\n%s", diff)
	}

	if _, err := Parse([]byte("x"), "theme.ini"); err == nil || !strings.Contains(err.Error(), "unsupported file type") {
		t.Fatalf("expected unsupported file type error, got %v", err)
	}
}

func TestLoadFSNil(t *testing.T) {
	if _, err := LoadFS(nil); err == nil {
		t.Fatalf("expected error for nil filesystem")
	}
}
