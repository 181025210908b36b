package processor

import (
	"html"
	"strings"

	"github.com/goliatone/go-blockhtml/pkg/block"
)

// Built-in block types.
const (
	TypeParagraph = "paragraph"
	TypeHeader    = "header"
	TypeList      = "list"
	TypeQuote     = "quote"
	TypeCode      = "code"
	TypeDelimiter = "delimiter"
	TypeMarkdown  = "markdown"
)

// List styles.
const (
	ListOrdered   = "ordered"
	ListUnordered = "unordered"
)

const (
	defaultHeaderLevel = 2
	defaultDelimiter   = "***"
)

// TextProcessor guarantees a string "text" field. It is the default
// processor of NewDefaultRegistry and serves paragraphs.
type TextProcessor struct{}

func (TextProcessor) Normalize(raw block.Data) (block.Data, error) {
	out := raw.Clone()
	out[PrimaryField] = raw.String(PrimaryField)
	return out, nil
}

// HeaderProcessor guarantees "text" and a "level" between 1 and 6.
type HeaderProcessor struct{}

func (HeaderProcessor) Normalize(raw block.Data) (block.Data, error) {
	out := raw.Clone()
	out[PrimaryField] = raw.String(PrimaryField)
	out["level"] = clamp(raw.Int("level", defaultHeaderLevel), 1, 6)
	return out, nil
}

// ListProcessor guarantees a "style" of ordered/unordered and a flat
// "items" string list. Nested items ({content, items}) and checklist items
// ({text, checked}) are flattened depth first.
type ListProcessor struct{}

func (ListProcessor) Normalize(raw block.Data) (block.Data, error) {
	out := raw.Clone()
	listStyle := strings.ToLower(strings.TrimSpace(raw.String("style")))
	if listStyle != ListOrdered {
		listStyle = ListUnordered
	}
	out["style"] = listStyle
	out["items"] = flattenItems(raw["items"], nil)
	return out, nil
}

// Content injects one string per item for the primary content.
func (ListProcessor) Content(data block.Data, field string) []string {
	if field == "" || field == "items" {
		return data.Strings("items")
	}
	return []string{data.String(field)}
}

func flattenItems(value any, acc []string) []string {
	switch items := value.(type) {
	case []string:
		return append(acc, items...)
	case []any:
		for _, item := range items {
			switch v := item.(type) {
			case string:
				acc = append(acc, v)
			case map[string]any:
				data := block.Data(v)
				text := data.String("content")
				if text == "" {
					text = data.String("text")
				}
				acc = append(acc, text)
				acc = flattenItems(v["items"], acc)
			}
		}
	}
	if acc == nil {
		return []string{}
	}
	return acc
}

// QuoteProcessor guarantees "text", "caption" and "alignment".
type QuoteProcessor struct{}

func (QuoteProcessor) Normalize(raw block.Data) (block.Data, error) {
	out := raw.Clone()
	out[PrimaryField] = raw.String(PrimaryField)
	out["caption"] = raw.String("caption")
	alignment := strings.ToLower(strings.TrimSpace(raw.String("alignment")))
	if alignment != "center" {
		alignment = "left"
	}
	out["alignment"] = alignment
	return out, nil
}

// CodeProcessor escapes "code" so the normaliser never sees markup inside a
// code block. Line breaks are kept; templates render them with a
// white-space rule.
type CodeProcessor struct{}

func (CodeProcessor) Normalize(raw block.Data) (block.Data, error) {
	out := raw.Clone()
	code := strings.ReplaceAll(raw.String("code"), "\r\n", "\n")
	out["code"] = html.EscapeString(code)
	out["language"] = strings.TrimSpace(raw.String("language"))
	return out, nil
}

// Content injects the escaped code for the primary content.
func (CodeProcessor) Content(data block.Data, field string) []string {
	if field == "" {
		field = "code"
	}
	return []string{data.String(field)}
}

// DelimiterProcessor injects a fixed symbol.
type DelimiterProcessor struct {
	Symbol string
}

func (p DelimiterProcessor) Normalize(raw block.Data) (block.Data, error) {
	out := raw.Clone()
	symbol := p.Symbol
	if symbol == "" {
		symbol = defaultDelimiter
	}
	out[PrimaryField] = symbol
	return out, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
