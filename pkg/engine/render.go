package engine

import (
	"context"
	"errors"
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-blockhtml/pkg/block"
	blockerrors "github.com/goliatone/go-blockhtml/pkg/errors"
	"github.com/goliatone/go-blockhtml/pkg/inline"
	"github.com/goliatone/go-blockhtml/pkg/processor"
	"github.com/goliatone/go-blockhtml/pkg/style"
	"github.com/goliatone/go-blockhtml/pkg/template"
)

// Result is the output of one conversion. The footnote ledger is handed back
// to the caller; the engine never appends it to HTML.
type Result struct {
	ID        string
	HTML      string
	Footnotes *inline.Ledger
	Warnings  []Warning
	Stats     Stats
}

// Stats counts the work done by one conversion.
type Stats struct {
	Blocks      int
	CacheHits   int
	CacheMisses int
}

// Warning is a malformed content report tied to the block it came from.
type Warning struct {
	BlockIndex int
	BlockType  string
	Content    blockerrors.MalformedContentWarning
}

func (w Warning) Error() string {
	return fmt.Sprintf("block %d (%s): %s", w.BlockIndex, w.BlockType, w.Content.Error())
}

func (w Warning) Unwrap() error {
	return w.Content
}

// voidElements never take a closing tag or children.
var voidElements = map[string]bool{
	"br": true, "hr": true, "img": true, "wbr": true,
}

// Render converts doc block by block. Footnote numbering runs across the
// whole document. Any configuration or processor failure aborts the
// conversion and the returned Result is empty.
func (e *Engine) Render(ctx context.Context, doc block.Document) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("engine: context is required")
	}

	conv := &conversion{
		engine: e,
		id:     uuid.NewString(),
		ledger: inline.NewLedger(),
	}
	if e.cache {
		conv.cache = newFragmentCache()
	}
	tracer().Debugf("engine[%s]: rendering %d blocks", conv.id, len(doc.Blocks))

	var out strings.Builder
	for idx, blk := range doc.Blocks {
		if err := ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("engine: block %d: %w", idx, err)
		}
		fragment, err := conv.renderBlock(idx, blk)
		if err != nil {
			tracer().Errorf("engine[%s]: %v", conv.id, err)
			return Result{}, err
		}
		out.WriteString(fragment)
		conv.stats.Blocks++
	}

	tracer().Infof("engine[%s]: rendered %d blocks, %d footnotes, %d warnings",
		conv.id, conv.stats.Blocks, conv.ledger.Len(), len(conv.warnings))
	return Result{
		ID:        conv.id,
		HTML:      out.String(),
		Footnotes: conv.ledger,
		Warnings:  conv.warnings,
		Stats:     conv.stats,
	}, nil
}

// conversion holds the state of one Render call.
type conversion struct {
	engine   *Engine
	id       string
	ledger   *inline.Ledger
	cache    *fragmentCache
	warnings []Warning
	stats    Stats
}

func (c *conversion) renderBlock(idx int, blk block.Block) (string, error) {
	p, err := c.engine.processors.GetProcessor(blk.Type)
	if err != nil {
		return "", fmt.Errorf("engine: block %d (%s): %w", idx, blk.Type, err)
	}
	data, err := p.Normalize(blk.Data)
	if err != nil {
		return "", fmt.Errorf("engine: block %d (%s): normalize: %w", idx, blk.Type, err)
	}
	variant := c.engine.variantFor(blk.Type, data)
	root, err := c.engine.templates.Resolve(blk.Type, variant)
	if err != nil {
		return "", fmt.Errorf("engine: block %d: %w", idx, err)
	}

	var key fingerprint
	cacheable := false
	if c.cache != nil {
		key, cacheable = fingerprintOf(blk.Type, variant, data)
		if cacheable {
			if hit, ok := c.cache.get(key); ok {
				c.stats.CacheHits++
				c.collect(idx, blk.Type, hit.warnings)
				return hit.html, nil
			}
			c.stats.CacheMisses++
		}
	}

	r := blockRender{
		conv:      c,
		processor: p,
		data:      data,
	}
	before := c.ledger.Len()
	var out strings.Builder
	r.expand(&out, root)

	// A fragment holding footnote markers depends on the ledger position.
	if cacheable && c.ledger.Len() == before {
		c.cache.put(key, fragment{html: out.String(), warnings: r.warnings})
	}
	c.collect(idx, blk.Type, r.warnings)
	return out.String(), nil
}

func (c *conversion) collect(idx int, blockType string, warnings []inline.Warning) {
	for _, w := range warnings {
		c.warnings = append(c.warnings, Warning{BlockIndex: idx, BlockType: blockType, Content: w})
	}
}

// blockRender expands the template tree of a single block.
type blockRender struct {
	conv      *conversion
	processor processor.Processor
	data      block.Data
	warnings  []inline.Warning
}

func (r *blockRender) expand(out *strings.Builder, n template.Node) {
	if n.Kind() == template.KindContent {
		r.expandContent(out, n)
		return
	}
	tag := strings.ToLower(n.Tag)
	writeOpen(out, tag, n)
	if voidElements[tag] {
		return
	}
	for _, child := range n.Children {
		r.expand(out, child)
	}
	writeClose(out, tag)
}

// expandContent emits the node once per resolved content string.
func (r *blockRender) expandContent(out *strings.Builder, n template.Node) {
	contents := processor.Content(r.processor, r.data, n.Field)
	if n.OmitEmpty && allEmpty(contents) {
		return
	}
	tag := strings.ToLower(n.Tag)
	for _, content := range contents {
		writeOpen(out, tag, n)
		if voidElements[tag] {
			continue
		}
		normalized, warnings := r.conv.engine.normalizer.Normalize(content, r.conv.ledger)
		r.warnings = append(r.warnings, warnings...)
		out.WriteString(normalized)
		writeClose(out, tag)
	}
}

func writeOpen(out *strings.Builder, tag string, n template.Node) {
	out.WriteByte('<')
	out.WriteString(tag)
	if css := style.Serialize(n.Style); css != "" {
		out.WriteString(` style="`)
		out.WriteString(inline.EscapeAttr(css))
		out.WriteByte('"')
	}
	if len(n.Attrs) > 0 {
		names := make([]string, 0, len(n.Attrs))
		for name := range n.Attrs {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			out.WriteByte(' ')
			out.WriteString(name)
			out.WriteString(`="`)
			out.WriteString(html.EscapeString(n.Attrs[name]))
			out.WriteByte('"')
		}
	}
	out.WriteByte('>')
}

func writeClose(out *strings.Builder, tag string) {
	out.WriteString("</")
	out.WriteString(tag)
	out.WriteByte('>')
}

func allEmpty(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
