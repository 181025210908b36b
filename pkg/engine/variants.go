package engine

import (
	"strconv"

	"github.com/goliatone/go-blockhtml/pkg/block"
	"github.com/goliatone/go-blockhtml/pkg/processor"
	"github.com/goliatone/go-blockhtml/pkg/template"
)

// VariantFunc picks the template variant for a block from its normalised
// data. It must be a pure function of data. An empty result selects the
// default variant.
type VariantFunc func(data block.Data) string

func builtinVariants() map[string]VariantFunc {
	return map[string]VariantFunc{
		processor.TypeHeader: HeaderVariant,
		processor.TypeList:   ListVariant,
	}
}

// HeaderVariant selects "h{level}".
func HeaderVariant(data block.Data) string {
	return "h" + strconv.Itoa(data.Int("level", 2))
}

// ListVariant selects "ordered" or "unordered".
func ListVariant(data block.Data) string {
	if data.String("style") == processor.ListOrdered {
		return processor.ListOrdered
	}
	return processor.ListUnordered
}

func (e *Engine) variantFor(blockType string, data block.Data) string {
	if fn, ok := e.variants[blockType]; ok {
		if variant := fn(data); variant != "" {
			return variant
		}
	}
	return template.DefaultVariant
}
