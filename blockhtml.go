// Package blockhtml converts block-structured documents (as produced by
// Editor.js style editors) into HTML that carries all of its styling in
// inline style attributes, for hosts that strip stylesheets.
//
// The quickest path renders with the embedded default theme:
//
//	res, err := blockhtml.RenderJSON(ctx, payload)
//	// res.HTML holds the body, res.Footnotes the extracted link references.
//
// Lower level building blocks live under pkg/: engine (orchestration),
// template and inline (configuration model and markup normalizer), processor
// (block data normalisation), config (file loading) and page (article
// composition).
package blockhtml

import (
	"context"
	"fmt"

	"github.com/goliatone/go-blockhtml/pkg/block"
	"github.com/goliatone/go-blockhtml/pkg/config"
	"github.com/goliatone/go-blockhtml/pkg/engine"
	"github.com/goliatone/go-blockhtml/pkg/page"
)

// Document aliases block.Document for callers of the top-level package.
type Document = block.Document

// Block aliases block.Block.
type Block = block.Block

// Result aliases engine.Result.
type Result = engine.Result

// NewEngine builds an engine on the embedded default theme. Options are
// applied after the theme, so WithConfig or WithTemplates replace it.
func NewEngine(options ...engine.Option) (*engine.Engine, error) {
	cfg, err := config.Default()
	if err != nil {
		return nil, fmt.Errorf("blockhtml: default theme: %w", err)
	}
	opts := append([]engine.Option{engine.WithConfig(cfg)}, options...)
	return engine.New(opts...)
}

// Render converts doc with a fresh engine built from options.
func Render(ctx context.Context, doc Document, options ...engine.Option) (Result, error) {
	e, err := NewEngine(options...)
	if err != nil {
		return Result{}, err
	}
	return e.Render(ctx, doc)
}

// RenderJSON decodes an editor payload and renders it.
func RenderJSON(ctx context.Context, payload []byte, options ...engine.Option) (Result, error) {
	doc, err := ParseDocument(payload)
	if err != nil {
		return Result{}, err
	}
	return Render(ctx, doc, options...)
}

// RenderPage renders doc and composes the body with its reference list.
func RenderPage(ctx context.Context, doc Document, options ...engine.Option) (string, error) {
	res, err := Render(ctx, doc, options...)
	if err != nil {
		return "", err
	}
	return page.Compose(res)
}
