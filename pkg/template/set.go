package template

import (
	"sort"
	"strings"

	blockerrors "github.com/goliatone/go-blockhtml/pkg/errors"
)

// DefaultVariant names the variant every registered block type must carry.
const DefaultVariant = "default"

// Set maps block type -> variant -> template root. A Set is read-only once
// loaded and may be shared between concurrent conversions.
type Set map[string]map[string]Node

// NewSet returns an empty set.
func NewSet() Set {
	return make(Set)
}

// Add registers root for (blockType, variant). An empty variant means the
// default one. Existing entries are replaced.
func (s Set) Add(blockType, variant string, root Node) Set {
	blockType = normalize(blockType)
	variant = variantKey(variant)
	if s[blockType] == nil {
		s[blockType] = make(map[string]Node)
	}
	s[blockType][variant] = root
	return s
}

// Resolve looks up the template for (blockType, variant), falling back to the
// default variant. A block type without templates, or without a default
// variant, is a configuration error.
func (s Set) Resolve(blockType, variant string) (Node, error) {
	blockType = normalize(blockType)
	variants, ok := s[blockType]
	if !ok || len(variants) == 0 {
		return Node{}, blockerrors.NewConfigurationError("template", blockType, "block type is not registered")
	}
	if root, ok := variants[variantKey(variant)]; ok {
		return root, nil
	}
	if root, ok := variants[DefaultVariant]; ok {
		return root, nil
	}
	return Node{}, &blockerrors.ConfigurationError{
		Subject: "template",
		Name:    blockType,
		Variant: variant,
		Reason:  "no matching or default variant",
	}
}

// Has reports whether blockType has any template.
func (s Set) Has(blockType string) bool {
	return len(s[normalize(blockType)]) > 0
}

// Types returns the registered block types sorted by name.
func (s Set) Types() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Variants returns the variant names registered for blockType, sorted.
func (s Set) Variants(blockType string) []string {
	variants := s[normalize(blockType)]
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks every registered template. Each type needs a default
// variant and every node must be well formed.
func (s Set) Validate() error {
	for _, blockType := range s.Types() {
		variants := s[blockType]
		if _, ok := variants[DefaultVariant]; !ok {
			return blockerrors.NewConfigurationError("template", blockType, `missing "default" variant`)
		}
		for _, variant := range s.Variants(blockType) {
			if err := variants[variant].Validate(); err != nil {
				return invalidNode(blockType, variant, err)
			}
		}
	}
	return nil
}

// Merge copies other into s. A (type, variant) pair present in both sets is a
// configuration error.
func (s Set) Merge(other Set) error {
	for blockType, variants := range other {
		key := normalize(blockType)
		for variant, root := range variants {
			vkey := variantKey(variant)
			if _, exists := s[key][vkey]; exists {
				return &blockerrors.ConfigurationError{
					Subject: "template",
					Name:    key,
					Variant: vkey,
					Reason:  "duplicate template",
				}
			}
			s.Add(key, vkey, root)
		}
	}
	return nil
}

// Clone returns a copy of s whose variant maps are not shared.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for blockType, variants := range s {
		copied := make(map[string]Node, len(variants))
		for variant, root := range variants {
			copied[variant] = root
		}
		out[blockType] = copied
	}
	return out
}

func normalize(name string) string {
	return strings.TrimSpace(name)
}

func variantKey(variant string) string {
	variant = strings.TrimSpace(variant)
	if variant == "" {
		return DefaultVariant
	}
	return variant
}
