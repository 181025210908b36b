package template

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	blockerrors "github.com/goliatone/go-blockhtml/pkg/errors"
	"github.com/goliatone/go-blockhtml/pkg/style"
)

func headingSet() Set {
	return NewSet().
		Add("header", "", Container("h2", nil, ContentLeaf("span", nil))).
		Add("header", "h1", Container("h1", style.Of("fontSize", "22px"), ContentLeaf("span", nil))).
		Add("header", "h2", Container("h2", style.Of("fontSize", "20px"), ContentLeaf("span", nil))).
		Add("paragraph", "default", Container("p", nil, ContentLeaf("span", nil)))
}

func TestResolve(t *testing.T) {
	set := headingSet()

	cases := []struct {
		name      string
		blockType string
		variant   string
		wantTag   string
		wantStyle string
	}{
		{name: "exact variant", blockType: "header", variant: "h1", wantTag: "h1", wantStyle: "font-size: 22px;"},
		{name: "second variant", blockType: "header", variant: "h2", wantTag: "h2", wantStyle: "font-size: 20px;"},
		{name: "unknown variant falls back", blockType: "header", variant: "h5", wantTag: "h2"},
		{name: "empty variant is default", blockType: "paragraph", variant: "", wantTag: "p"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			root, err := set.Resolve(tc.blockType, tc.variant)
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if root.Tag != tc.wantTag {
				t.Fatalf("tag = %q, want %q", root.Tag, tc.wantTag)
			}
			if got := style.Serialize(root.Style); got != tc.wantStyle {
				t.Fatalf("style = %q, want %q", got, tc.wantStyle)
			}
		})
	}
}

func TestResolveUnregisteredType(t *testing.T) {
	_, err := headingSet().Resolve("table", "default")
	if err == nil {
		t.Fatalf("expected configuration error")
	}
	if !blockerrors.IsConfiguration(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	var cfgErr *blockerrors.ConfigurationError
	if !errors.As(err, &cfgErr) || cfgErr.Name != "table" {
		t.Fatalf("unexpected error: %#v", err)
	}
}

func TestResolveWithoutDefaultVariant(t *testing.T) {
	set := NewSet().Add("list", "ordered", Container("ol", nil, ContentLeaf("li", nil)))

	if _, err := set.Resolve("list", "ordered"); err != nil {
		t.Fatalf("exact match should resolve: %v", err)
	}
	if _, err := set.Resolve("list", "unordered"); !blockerrors.IsConfiguration(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if err := set.Validate(); !blockerrors.IsConfiguration(err) {
		t.Fatalf("validate should require a default variant, got %v", err)
	}
}

func TestValidateRejectsContentWithChildren(t *testing.T) {
	bad := Node{Tag: "p", Content: true, Children: []Node{{Tag: "span"}}}
	set := NewSet().Add("paragraph", "default", Container("section", nil, bad))

	err := set.Validate()
	if !blockerrors.IsConfiguration(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if !strings.Contains(err.Error(), "content node cannot have children") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestValidateNodeErrors(t *testing.T) {
	deep := ContentLeaf("span", nil)
	for i := 0; i < MaxDepth; i++ {
		deep = Container("div", nil, deep)
	}

	cases := map[string]Node{
		"missing tag":           {Style: style.Of("color", "red")},
		"bad tag":               {Tag: "p class"},
		"style attr":            {Tag: "p", Attrs: map[string]string{"style": "color: red"}},
		"bad attr":              {Tag: "p", Attrs: map[string]string{"on click": "x"}},
		"field on container":    {Tag: "p", Field: "caption"},
		"exceeds maximum depth": deep,
	}
	for name, node := range cases {
		node := node
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if err := node.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}

	ok := Container("figure", nil, FieldLeaf("figcaption", nil, "caption"))
	ok.Attrs = map[string]string{"data-role": "quote"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid node rejected: %v", err)
	}
}

func TestMerge(t *testing.T) {
	base := headingSet()
	extra := NewSet().Add("quote", "default", Container("blockquote", nil, ContentLeaf("p", nil)))
	if err := base.Merge(extra); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if diff := cmp.Diff([]string{"header", "paragraph", "quote"}, base.Types()); diff != "" {
		t.Fatalf("types mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"default", "h1", "h2"}, base.Variants("header")); diff != "" {
		t.Fatalf("variants mismatch (-want +got):\n%s", diff)
	}

	dup := NewSet().Add("paragraph", "default", Container("div", nil))
	if err := base.Merge(dup); !blockerrors.IsConfiguration(err) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	base := headingSet()
	clone := base.Clone()
	clone.Add("header", "h3", Container("h3", nil))

	if len(base.Variants("header")) != 3 {
		t.Fatalf("clone mutation leaked into original: %v", base.Variants("header"))
	}
}

func TestNodeDecoding(t *testing.T) {
	jsonPayload := `{"tag":"p","style":{"margin":"0"},"children":[{"tag":"span","content":true}]}`
	yamlPayload := "tag: p\nstyle:\n  margin: \"0\"\nchildren:\n  - tag: span\n    content: true\n"

	var fromJSON, fromYAML Node
	if err := json.Unmarshal([]byte(jsonPayload), &fromJSON); err != nil {
		t.Fatalf("json: %v", err)
	}
	if err := yaml.Unmarshal([]byte(yamlPayload), &fromYAML); err != nil {
		t.Fatalf("yaml: %v", err)
	}

	want := Container("p", style.Of("margin", "0"), ContentLeaf("span", nil))
	if diff := cmp.Diff(want, fromJSON); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, fromYAML); diff != "" {
		t.Fatalf("yaml mismatch (-want +got):\n%s", diff)
	}
	if fromJSON.Children[0].Kind() != KindContent || fromJSON.Kind() != KindContainer {
		t.Fatalf("unexpected kinds")
	}
}

func TestWalk(t *testing.T) {
	root := Container("blockquote", nil, ContentLeaf("p", nil), FieldLeaf("cite", nil, "caption"))
	var tags []string
	root.Walk(func(n Node) { tags = append(tags, n.Tag) })
	if diff := cmp.Diff([]string{"blockquote", "p", "cite"}, tags); diff != "" {
		t.Fatalf("walk order mismatch (-want +got):\n%s", diff)
	}
}
