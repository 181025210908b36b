package page

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strconv"
	"strings"
	"sync"

	gotemplate "github.com/goliatone/go-template"

	"github.com/goliatone/go-blockhtml/pkg/engine"
	"github.com/goliatone/go-blockhtml/pkg/inline"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

const defaultTemplate = "article.tpl"

// Styles are the inline styles of the article wrapper and reference list.
type Styles struct {
	Article   string
	Footnotes string
	Heading   string
	Entry     string
}

// DefaultStyles matches the embedded default theme.
var DefaultStyles = Styles{
	Article:   "padding: 0 8px; font-family: -apple-system, BlinkMacSystemFont, 'Helvetica Neue', sans-serif;",
	Footnotes: "margin-top: 24px; padding-top: 12px; border-top: 1px solid #eeeeee;",
	Heading:   "margin: 0 0 8px; font-size: 14px; font-weight: bold; color: #3f3f3f;",
	Entry:     "margin: 0 0 4px; font-size: 12px; line-height: 1.6; color: #888888; word-break: break-all;",
}

// Option configures a Composer.
type Option func(*config)

type config struct {
	templates fs.FS
	name      string
	source    string
	heading   string
	styles    Styles
	globals   map[string]any
}

// WithFS loads the page template name from fsys instead of the embedded one.
func WithFS(fsys fs.FS, name string) Option {
	return func(cfg *config) {
		cfg.templates = fsys
		if name = strings.TrimSpace(name); name != "" {
			cfg.name = name
		}
	}
}

// WithTemplateString uses src as the page template.
func WithTemplateString(src string) Option {
	return func(cfg *config) {
		cfg.source = src
	}
}

// WithHeading sets the title of the reference list.
func WithHeading(heading string) Option {
	return func(cfg *config) {
		cfg.heading = heading
	}
}

// WithStyles overrides the wrapper and reference list styles.
func WithStyles(styles Styles) Option {
	return func(cfg *config) {
		cfg.styles = styles
	}
}

// WithGlobalData seeds values available to the page template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globals == nil {
			cfg.globals = make(map[string]any, len(data))
		}
		for key, value := range data {
			if key = strings.TrimSpace(key); key != "" {
				cfg.globals[key] = value
			}
		}
	}
}

// Composer places a rendered body and its footnote ledger into one article
// fragment. Values are autoescaped; only the body is inserted verbatim.
type Composer struct {
	renderer *gotemplate.Engine
	name     string
	source   string
	heading  string
	styles   Styles
}

// New builds a Composer from the embedded article template unless a custom
// template is configured. The template is rendered once up front so a missing
// or broken template fails here rather than on first use.
func New(options ...Option) (*Composer, error) {
	cfg := &config{
		templates: embeddedFS(),
		name:      defaultTemplate,
		heading:   "References",
		styles:    DefaultStyles,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}
	if cfg.templates == nil && cfg.source == "" {
		return nil, errors.New("page: need a template filesystem or template source")
	}

	loaderFS := cfg.templates
	if loaderFS == nil {
		loaderFS = embeddedFS()
	}
	ext := path.Ext(cfg.name)
	if ext == "" {
		ext = path.Ext(defaultTemplate)
	}
	renderer, err := gotemplate.NewRenderer(
		gotemplate.WithFS(loaderFS),
		gotemplate.WithExtension(ext),
		gotemplate.WithGlobalData(cfg.globals),
	)
	if err != nil {
		return nil, fmt.Errorf("page: create renderer: %w", err)
	}

	c := &Composer{
		renderer: renderer,
		name:     strings.TrimSuffix(cfg.name, ext),
		source:   cfg.source,
		heading:  cfg.heading,
		styles:   cfg.styles,
	}
	if _, err := c.render(c.context("", "", nil)); err != nil {
		return nil, fmt.Errorf("page: load template: %w", err)
	}
	return c, nil
}

// Compose renders body with the footnotes as a trailing reference list. A nil
// or empty ledger omits the list.
func (c *Composer) Compose(id, body string, footnotes *inline.Ledger) (string, error) {
	if c == nil || c.renderer == nil {
		return "", errors.New("page: composer is nil")
	}
	out, err := c.render(c.context(id, body, footnotes))
	if err != nil {
		return "", fmt.Errorf("page: execute template: %w", err)
	}
	return out, nil
}

// ComposeResult composes a conversion result.
func (c *Composer) ComposeResult(res engine.Result) (string, error) {
	return c.Compose(res.ID, res.HTML, res.Footnotes)
}

func (c *Composer) render(data map[string]any) (string, error) {
	if c.source != "" {
		return c.renderer.RenderString(c.source, data)
	}
	return c.renderer.RenderTemplate(c.name, data)
}

// context builds the template data. Indices are passed as strings because the
// renderer round-trips data through JSON, which would turn them into floats.
func (c *Composer) context(id, body string, footnotes *inline.Ledger) map[string]any {
	notes := footnotes.Footnotes()
	entries := make([]any, 0, len(notes))
	for _, note := range notes {
		entries = append(entries, map[string]any{
			"index":     strconv.Itoa(note.Index),
			"reference": note.Reference,
			"label":     note.Label,
			"entry":     note.String(),
		})
	}
	return map[string]any{
		"id":              id,
		"body":            body,
		"footnotes":       entries,
		"heading":         c.heading,
		"article_style":   c.styles.Article,
		"footnotes_style": c.styles.Footnotes,
		"heading_style":   c.styles.Heading,
		"entry_style":     c.styles.Entry,
	}
}

var (
	defaultOnce     sync.Once
	defaultComposer *Composer
	defaultErr      error
)

// Compose renders res with the embedded article template.
func Compose(res engine.Result) (string, error) {
	defaultOnce.Do(func() {
		defaultComposer, defaultErr = New()
	})
	if defaultErr != nil {
		return "", defaultErr
	}
	return defaultComposer.ComposeResult(res)
}

func embeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// TemplatesFS exposes the embedded page templates.
func TemplatesFS() fs.FS {
	return embeddedFS()
}
