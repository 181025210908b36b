package inline

import (
	"html"
	"regexp"
	"strconv"
	"strings"

	blockerrors "github.com/goliatone/go-blockhtml/pkg/errors"
)

// Warning reports malformed inline content. The content still renders.
type Warning = blockerrors.MalformedContentWarning

var (
	anchorPattern   = regexp.MustCompile(`(?is)<a(\s[^>]*)?>(.*?)</a\s*>`)
	hrefPattern     = regexp.MustCompile(`(?is)(?:^|\s)href\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s"'>]+))`)
	openTagPattern  = regexp.MustCompile(`(?i)<(code|u|mark|i|em|strong|b|sup)(\s[^>]*)?>`)
	schemePattern   = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9+.\-]*)://(.*)$`)
	hostTerminators = "/?#"
)

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithPermalinkPrefixes marks hrefs starting with any of prefixes as internal
// permalinks. Such anchors are left untouched and never footnoted.
func WithPermalinkPrefixes(prefixes ...string) Option {
	return func(n *Normalizer) {
		for _, prefix := range prefixes {
			if prefix = strings.TrimSpace(prefix); prefix != "" {
				n.permalinks = append(n.permalinks, prefix)
			}
		}
	}
}

// WithVerbatimReferences records every non-permalink href as-is instead of
// turning scheme-prefixed, non URL-shaped hrefs into plain-text labels.
func WithVerbatimReferences() Option {
	return func(n *Normalizer) {
		n.verbatim = true
	}
}

// Normalizer rewrites inline markup into inline-styled tags and extracts
// hyperlinks into footnotes. It holds configuration only; the footnote
// counter lives on the Ledger passed to Normalize, so one Normalizer can
// serve concurrent conversions.
type Normalizer struct {
	table      StyleTable
	permalinks []string
	verbatim   bool
}

// NewNormalizer builds a normalizer for table.
func NewNormalizer(table StyleTable, options ...Option) *Normalizer {
	n := &Normalizer{table: table.Clone()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(n)
	}
	return n
}

// Normalize rewrites content in two passes: anchors first (footnoting
// external links at ledger's counter), then opening tags of the inline
// vocabulary. The anchor pass must run first because the <sup> marker it
// emits is styled by the tag pass. Malformed spans pass through unmodified
// and are reported as warnings.
func (n *Normalizer) Normalize(content string, ledger *Ledger) (string, []Warning) {
	if content == "" {
		return "", nil
	}
	if ledger == nil {
		ledger = NewLedger()
	}

	warnings := scan(content)
	for _, w := range warnings {
		tracer().Debugf("inline: %s", w.Error())
	}

	anchored, protected := n.anchorPass(content, ledger)
	return n.tagPass(anchored, protected), warnings
}

// span is a half-open byte range of output that the tag pass must not touch.
type span struct {
	start, end int
}

func (n *Normalizer) anchorPass(content string, ledger *Ledger) (string, []span) {
	matches := anchorPattern.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return content, nil
	}

	var (
		b         strings.Builder
		protected []span
		last      int
	)
	b.Grow(len(content) + len(matches)*64)

	for _, m := range matches {
		b.WriteString(content[last:m[0]])
		last = m[1]

		raw := content[m[0]:m[1]]
		href := hrefOf(submatch(content, m, 1))
		text := submatch(content, m, 2)

		if strings.TrimSpace(href) == "" || n.isPermalink(href) {
			start := b.Len()
			b.WriteString(raw)
			if href != "" {
				protected = append(protected, span{start: start, end: b.Len()})
			}
			continue
		}

		reference, label := n.reference(html.UnescapeString(href))
		note := ledger.Append(reference, label)
		b.WriteString(n.footnoteMarkup(text, note.Index))
	}
	b.WriteString(content[last:])
	return b.String(), protected
}

// hrefOf extracts the href value from an anchor's attribute list. Other
// attributes (target, title, rel) are dropped with the anchor.
func hrefOf(attrs string) string {
	m := hrefPattern.FindStringSubmatch(attrs)
	if m == nil {
		return ""
	}
	for _, value := range m[1:] {
		if value != "" {
			return value
		}
	}
	return ""
}

func (n *Normalizer) footnoteMarkup(text string, index int) string {
	var b strings.Builder
	b.WriteString(openTag("span", n.entry(TagA)))
	b.WriteString(text)
	b.WriteString(openTag(TagSup, n.entry(TagSup)))
	b.WriteByte('[')
	b.WriteString(strconv.Itoa(index))
	b.WriteString("]</sup></span>")
	return b.String()
}

func (n *Normalizer) tagPass(content string, protected []span) string {
	if len(n.table) == 0 {
		return content
	}
	matches := openTagPattern.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return content
	}

	var b strings.Builder
	b.Grow(len(content) + len(matches)*32)
	last := 0
	for _, m := range matches {
		if insideAny(m[0], protected) {
			continue
		}
		tag := strings.ToLower(content[m[2]:m[3]])
		entry, ok := n.table.Lookup(tag)
		if !ok {
			continue
		}
		b.WriteString(content[last:m[0]])
		b.WriteString(openTag(tag, entry))
		last = m[1]
	}
	b.WriteString(content[last:])
	return b.String()
}

// reference decides how href is recorded in the ledger. Scheme-prefixed
// hrefs without a dot in the host position are not URL shaped: the scheme is
// stripped and the remainder recorded as a label.
func (n *Normalizer) reference(href string) (string, bool) {
	if n.verbatim {
		return href, false
	}
	m := schemePattern.FindStringSubmatch(href)
	if m == nil {
		return href, false
	}
	rest := m[2]
	host := rest
	if idx := strings.IndexAny(rest, hostTerminators); idx >= 0 {
		host = rest[:idx]
	}
	if strings.Contains(host, ".") {
		return href, false
	}
	return rest, true
}

func (n *Normalizer) isPermalink(href string) bool {
	for _, prefix := range n.permalinks {
		if strings.HasPrefix(href, prefix) {
			return true
		}
	}
	return false
}

func (n *Normalizer) entry(tag string) string {
	entry, _ := n.table.Lookup(tag)
	return entry
}

func openTag(tag, css string) string {
	if css == "" {
		return "<" + tag + ">"
	}
	return "<" + tag + ` style="` + EscapeAttr(css) + `">`
}

// EscapeAttr escapes the characters that would terminate a double-quoted
// attribute value.
func EscapeAttr(value string) string {
	if !strings.ContainsAny(value, `"&`) {
		return value
	}
	value = strings.ReplaceAll(value, "&", "&amp;")
	return strings.ReplaceAll(value, `"`, "&quot;")
}

func submatch(s string, m []int, group int) string {
	start, end := m[2*group], m[2*group+1]
	if start < 0 {
		return ""
	}
	return s[start:end]
}

func insideAny(offset int, spans []span) bool {
	for _, s := range spans {
		if offset >= s.start && offset < s.end {
			return true
		}
	}
	return false
}
