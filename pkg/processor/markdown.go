package processor

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	mdhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/goliatone/go-blockhtml/pkg/block"
)

// MarkdownProcessor converts the "markdown" field into inline markup stored
// under "paragraphs". Every string uses the inline vocabulary only, so it can
// sit inside a single content leaf:
//
//   - paragraphs render their inline content
//   - headings become <strong> text
//   - list items become one string each, prefixed with "• " or "n. "
//   - block quotes become <em> text, one string per inner paragraph
//   - code blocks become <code> with <br> between lines
//
// Thematic breaks, raw HTML and link titles are dropped.
type MarkdownProcessor struct {
	md goldmark.Markdown
}

const bulletPrefix = "• "

// NewMarkdownProcessor builds a processor using goldmark's CommonMark parser.
func NewMarkdownProcessor() *MarkdownProcessor {
	return &MarkdownProcessor{md: goldmark.New()}
}

func (p *MarkdownProcessor) Normalize(raw block.Data) (block.Data, error) {
	out := raw.Clone()
	source := []byte(raw.String("markdown"))
	paragraphs, err := p.render(source)
	if err != nil {
		return nil, fmt.Errorf("processor: markdown: %w", err)
	}
	out["paragraphs"] = paragraphs
	return out, nil
}

// Content injects one string per rendered paragraph.
func (p *MarkdownProcessor) Content(data block.Data, field string) []string {
	if field == "" || field == "paragraphs" {
		return data.Strings("paragraphs")
	}
	return []string{data.String(field)}
}

func (p *MarkdownProcessor) render(source []byte) ([]string, error) {
	if len(bytes.TrimSpace(source)) == 0 {
		return []string{}, nil
	}
	md := p.md
	if md == nil {
		md = goldmark.New()
	}

	doc := md.Parser().Parse(text.NewReader(source))
	w := &markdownWriter{source: source, out: make([]string, 0, doc.ChildCount())}
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		if err := w.block(node); err != nil {
			return nil, err
		}
	}
	return w.out, nil
}

// markdownWriter flattens a goldmark tree into inline strings.
type markdownWriter struct {
	source []byte
	out    []string
}

func (w *markdownWriter) emit(prefix, body, suffix string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	w.out = append(w.out, prefix+body+suffix)
}

func (w *markdownWriter) block(node ast.Node) error {
	switch n := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		body, err := w.inlines(n)
		if err != nil {
			return err
		}
		w.emit("", body, "")
	case *ast.Heading:
		body, err := w.inlines(n)
		if err != nil {
			return err
		}
		w.emit("<strong>", body, "</strong>")
	case *ast.List:
		return w.list(n)
	case *ast.Blockquote:
		inner := &markdownWriter{source: w.source}
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			if err := inner.block(child); err != nil {
				return err
			}
		}
		for _, line := range inner.out {
			w.emit("<em>", line, "</em>")
		}
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		w.emit("<code>", w.codeLines(n), "</code>")
	case *ast.ThematicBreak, *ast.HTMLBlock:
	default:
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			if err := w.block(child); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *markdownWriter) list(list *ast.List) error {
	number := list.Start
	if number == 0 {
		number = 1
	}
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		prefix := bulletPrefix
		if list.IsOrdered() {
			prefix = strconv.Itoa(number) + ". "
			number++
		}
		for child := item.FirstChild(); child != nil; child = child.NextSibling() {
			switch child.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				body, err := w.inlines(child)
				if err != nil {
					return err
				}
				w.emit(prefix, body, "")
				prefix = ""
			default:
				if err := w.block(child); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (w *markdownWriter) codeLines(node ast.Node) string {
	lines := node.Lines()
	parts := make([]string, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		value := strings.TrimRight(string(line.Value(w.source)), "\r\n")
		parts = append(parts, string(util.EscapeHTML([]byte(value))))
	}
	return strings.Join(parts, "<br>")
}

func (w *markdownWriter) inlines(parent ast.Node) (string, error) {
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		w.inline(bw, child)
	}
	if err := bw.Flush(); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

func (w *markdownWriter) children(bw *bufio.Writer, node ast.Node) {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		w.inline(bw, child)
	}
}

func (w *markdownWriter) inline(bw *bufio.Writer, node ast.Node) {
	switch n := node.(type) {
	case *ast.Text:
		mdhtml.DefaultWriter.Write(bw, n.Segment.Value(w.source))
		switch {
		case n.HardLineBreak():
			bw.WriteString("<br>")
		case n.SoftLineBreak():
			bw.WriteByte('\n')
		}
	case *ast.String:
		if n.IsCode() {
			bw.Write(n.Value)
			return
		}
		mdhtml.DefaultWriter.Write(bw, n.Value)
	case *ast.Emphasis:
		tag := "em"
		if n.Level >= 2 {
			tag = "strong"
		}
		bw.WriteString("<" + tag + ">")
		w.children(bw, n)
		bw.WriteString("</" + tag + ">")
	case *ast.CodeSpan:
		bw.WriteString("<code>")
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			if t, ok := child.(*ast.Text); ok {
				value := bytes.ReplaceAll(t.Segment.Value(w.source), []byte("\n"), []byte(" "))
				bw.Write(util.EscapeHTML(value))
			}
		}
		bw.WriteString("</code>")
	case *ast.Link:
		w.anchor(bw, n.Destination, func() { w.children(bw, n) })
	case *ast.AutoLink:
		url := n.URL(w.source)
		label := n.Label(w.source)
		if n.AutoLinkType == ast.AutoLinkEmail && !bytes.HasPrefix(bytes.ToLower(url), []byte("mailto:")) {
			url = append([]byte("mailto:"), url...)
		}
		w.anchor(bw, url, func() { bw.Write(util.EscapeHTML(label)) })
	case *ast.Image:
		w.children(bw, n)
	case *ast.RawHTML:
	default:
		w.children(bw, n)
	}
}

// anchor writes a bare <a href> so the inline normalizer footnotes it.
func (w *markdownWriter) anchor(bw *bufio.Writer, destination []byte, body func()) {
	if len(destination) == 0 || mdhtml.IsDangerousURL(destination) {
		body()
		return
	}
	bw.WriteString(`<a href="`)
	bw.Write(util.EscapeHTML(util.URLEscape(destination, true)))
	bw.WriteString(`">`)
	body()
	bw.WriteString("</a>")
}
