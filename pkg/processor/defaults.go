package processor

import (
	"github.com/microcosm-cc/bluemonday"
)

// Option customises NewDefaultRegistry.
type Option func(*defaultsConfig)

type defaultsConfig struct {
	sanitize  bool
	policy    *bluemonday.Policy
	delimiter string
}

// WithSanitizer wraps every built-in processor with Sanitize. A nil policy
// uses InlinePolicy.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(cfg *defaultsConfig) {
		cfg.sanitize = true
		cfg.policy = policy
	}
}

// WithDelimiterSymbol overrides the text rendered for delimiter blocks.
func WithDelimiterSymbol(symbol string) Option {
	return func(cfg *defaultsConfig) {
		cfg.delimiter = symbol
	}
}

// NewDefaultRegistry constructs a registry pre-populated with the built-in
// processors. TextProcessor is the default for unregistered types. The
// markdown processor is deferred so goldmark is only set up when a document
// actually contains markdown blocks.
func NewDefaultRegistry(options ...Option) *Registry {
	cfg := defaultsConfig{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	wrap := func(p Processor) Processor {
		if cfg.sanitize {
			return Sanitize(p, cfg.policy)
		}
		return p
	}

	registry := New()
	registry.MustRegister(TypeParagraph, wrap(TextProcessor{}))
	registry.MustRegister(TypeHeader, wrap(HeaderProcessor{}))
	registry.MustRegister(TypeList, wrap(ListProcessor{}))
	registry.MustRegister(TypeQuote, wrap(QuoteProcessor{}))
	registry.MustRegister(TypeCode, wrap(CodeProcessor{}))
	registry.MustRegister(TypeDelimiter, wrap(DelimiterProcessor{Symbol: cfg.delimiter}))

	if err := registry.RegisterDeferred(TypeMarkdown, func(DeferredOptions) (Processor, error) {
		return wrap(NewMarkdownProcessor()), nil
	}, DeferredOptions{}); err != nil {
		panic(err)
	}

	registry.SetDefault(wrap(TextProcessor{}))
	return registry
}
