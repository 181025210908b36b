package engine

import (
	"strings"

	"github.com/goliatone/go-blockhtml/pkg/config"
	blockerrors "github.com/goliatone/go-blockhtml/pkg/errors"
	"github.com/goliatone/go-blockhtml/pkg/inline"
	"github.com/goliatone/go-blockhtml/pkg/processor"
	"github.com/goliatone/go-blockhtml/pkg/template"
)

// Option customises the engine configuration.
type Option func(*Engine)

// WithTemplates sets the template set used to resolve block types.
func WithTemplates(set template.Set) Option {
	return func(e *Engine) {
		e.templates = set.Clone()
	}
}

// WithInlineStyles sets the inline style table applied at content points.
func WithInlineStyles(table inline.StyleTable) Option {
	return func(e *Engine) {
		e.inline = table.Clone()
	}
}

// WithProcessors injects a processor registry. The built-in registry is used
// when omitted.
func WithProcessors(registry *processor.Registry) Option {
	return func(e *Engine) {
		e.processors = registry
	}
}

// WithPermalinkPrefixes marks hrefs starting with any prefix as internal
// permalinks that are never footnoted.
func WithPermalinkPrefixes(prefixes ...string) Option {
	return func(e *Engine) {
		for _, prefix := range prefixes {
			if prefix = strings.TrimSpace(prefix); prefix != "" {
				e.permalinks = append(e.permalinks, prefix)
			}
		}
	}
}

// WithVariantSelector registers fn as the variant selector for blockType,
// replacing any built-in selector.
func WithVariantSelector(blockType string, fn VariantFunc) Option {
	return func(e *Engine) {
		blockType = strings.TrimSpace(blockType)
		if blockType == "" || fn == nil {
			return
		}
		if e.variants == nil {
			e.variants = make(map[string]VariantFunc)
		}
		e.variants[blockType] = fn
	}
}

// WithCache toggles the per-conversion fragment cache.
func WithCache(enabled bool) Option {
	return func(e *Engine) {
		e.cache = enabled
	}
}

// WithVerbatimReferences records every external href as-is in the footnote
// ledger.
func WithVerbatimReferences() Option {
	return func(e *Engine) {
		e.verbatim = true
	}
}

// WithConfig applies a loaded configuration: templates, inline styles and
// permalink prefixes.
func WithConfig(cfg config.Config) Option {
	return func(e *Engine) {
		WithTemplates(cfg.Templates)(e)
		WithInlineStyles(cfg.Inline)(e)
		WithPermalinkPrefixes(cfg.Permalinks...)(e)
	}
}

// Engine renders block documents into inline-styled HTML. It is immutable
// after New and safe for concurrent Render calls; each call owns its own
// footnote ledger and cache.
type Engine struct {
	templates  template.Set
	inline     inline.StyleTable
	processors *processor.Registry
	permalinks []string
	variants   map[string]VariantFunc
	cache      bool
	verbatim   bool

	normalizer *inline.Normalizer
}

// New constructs an Engine. A template set is required; the processor
// registry defaults to the built-ins and the inline style table to empty.
func New(options ...Option) (*Engine, error) {
	e := &Engine{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	if err := e.applyDefaults(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Engine) applyDefaults() error {
	if len(e.templates) == 0 {
		return blockerrors.NewConfigurationError("template set", "", "no templates configured")
	}
	if err := e.templates.Validate(); err != nil {
		return err
	}
	if e.inline == nil {
		e.inline = make(inline.StyleTable)
	}
	if err := e.inline.Validate(); err != nil {
		return err
	}
	if e.processors == nil {
		e.processors = processor.NewDefaultRegistry()
	}

	variants := builtinVariants()
	for blockType, fn := range e.variants {
		variants[blockType] = fn
	}
	e.variants = variants

	opts := []inline.Option{inline.WithPermalinkPrefixes(e.permalinks...)}
	if e.verbatim {
		opts = append(opts, inline.WithVerbatimReferences())
	}
	e.normalizer = inline.NewNormalizer(e.inline, opts...)
	return nil
}

// Templates returns the block types the engine can render.
func (e *Engine) Templates() []string {
	return e.templates.Types()
}

// CacheEnabled reports whether conversions use the fragment cache.
func (e *Engine) CacheEnabled() bool {
	return e.cache
}
