package template

import (
	"fmt"
	"strings"

	blockerrors "github.com/goliatone/go-blockhtml/pkg/errors"
	"github.com/goliatone/go-blockhtml/pkg/style"
)

// MaxDepth bounds template nesting.
const MaxDepth = 64

// Kind distinguishes content leaves from containers.
type Kind int

const (
	// KindContainer renders its children in order.
	KindContainer Kind = iota
	// KindContent injects block content and has no children.
	KindContent
)

func (k Kind) String() string {
	switch k {
	case KindContent:
		return "content"
	default:
		return "container"
	}
}

// Node describes one element of a block template.
type Node struct {
	Tag   string            `json:"tag" yaml:"tag" toml:"tag"`
	Style style.Map         `json:"style,omitempty" yaml:"style,omitempty" toml:"style,omitempty"`
	Attrs map[string]string `json:"attrs,omitempty" yaml:"attrs,omitempty" toml:"attrs,omitempty"`

	// Content marks the injection point for block content. Content nodes have
	// no children.
	Content bool `json:"content,omitempty" yaml:"content,omitempty" toml:"content,omitempty"`
	// Field selects the data field injected by a content node. Empty means the
	// processor's primary content.
	Field string `json:"field,omitempty" yaml:"field,omitempty" toml:"field,omitempty"`
	// OmitEmpty drops a content node whose resolved content is empty.
	OmitEmpty bool `json:"omitEmpty,omitempty" yaml:"omitEmpty,omitempty" toml:"omitEmpty,omitempty"`

	Children []Node `json:"children,omitempty" yaml:"children,omitempty" toml:"children,omitempty"`
}

// Kind reports whether n is a content leaf or a container.
func (n Node) Kind() Kind {
	if n.Content {
		return KindContent
	}
	return KindContainer
}

// Container builds a container node.
func Container(tag string, s style.Map, children ...Node) Node {
	return Node{Tag: tag, Style: s, Children: children}
}

// ContentLeaf builds a content node injecting the primary content.
func ContentLeaf(tag string, s style.Map) Node {
	return Node{Tag: tag, Style: s, Content: true}
}

// FieldLeaf builds a content node injecting the named data field.
func FieldLeaf(tag string, s style.Map, field string) Node {
	return Node{Tag: tag, Style: s, Content: true, Field: field}
}

// Validate checks that the tree rooted at n is well formed.
func (n Node) Validate() error {
	return n.validate("", 1)
}

func (n Node) validate(path string, depth int) error {
	here := joinPath(path, n.Tag)
	if depth > MaxDepth {
		return fmt.Errorf("node %s: exceeds maximum depth %d", here, MaxDepth)
	}
	if strings.TrimSpace(n.Tag) == "" {
		return fmt.Errorf("node %s: tag is required", here)
	}
	if !validTagName(n.Tag) {
		return fmt.Errorf("node %s: invalid tag name %q", here, n.Tag)
	}
	for name := range n.Attrs {
		if !validAttrName(name) {
			return fmt.Errorf("node %s: invalid attribute name %q", here, name)
		}
		if strings.EqualFold(name, "style") {
			return fmt.Errorf("node %s: use the style map instead of a style attribute", here)
		}
	}
	if n.Content && len(n.Children) > 0 {
		return fmt.Errorf("node %s: content node cannot have children", here)
	}
	if !n.Content && (n.Field != "" || n.OmitEmpty) {
		return fmt.Errorf("node %s: field and omitEmpty apply to content nodes only", here)
	}
	for idx, child := range n.Children {
		if err := child.validate(fmt.Sprintf("%s[%d]", here, idx), depth+1); err != nil {
			return err
		}
	}
	return nil
}

// Walk visits n and its descendants in pre-order.
func (n Node) Walk(fn func(Node)) {
	fn(n)
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

func joinPath(parent, tag string) string {
	if parent == "" {
		return tag
	}
	return parent + ">" + tag
}

func validTagName(tag string) bool {
	for i, r := range tag {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '-'):
		default:
			return false
		}
	}
	return tag != ""
}

func validAttrName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == ':', r == '.':
		default:
			return false
		}
	}
	return true
}

func invalidNode(blockType, variant string, err error) error {
	return &blockerrors.ConfigurationError{
		Subject: "template",
		Name:    blockType,
		Variant: variant,
		Reason:  "invalid node",
		Err:     err,
	}
}
