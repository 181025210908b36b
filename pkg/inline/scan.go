package inline

import (
	"strings"

	"golang.org/x/net/html"
)

type openElement struct {
	tag    string
	offset int
	raw    string
}

// scan walks content with the HTML tokenizer and reports vocabulary tags that
// are unbalanced, nested anchors and anchors without an href. Tags outside the
// vocabulary are ignored.
func scan(content string) []Warning {
	if !strings.Contains(content, "<") {
		return nil
	}

	var (
		warnings []Warning
		stack    []openElement
		offset   int
	)
	z := html.NewTokenizer(strings.NewReader(content))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		raw := string(z.Raw())
		start := offset
		offset += len(raw)

		switch tt {
		case html.StartTagToken:
			name, hasAttr := z.TagName()
			tag := string(name)
			if !InVocabulary(tag) {
				continue
			}
			if tag == TagA {
				if !hasHref(z, hasAttr) {
					warnings = append(warnings, Warning{Offset: start, Snippet: raw, Reason: "anchor without href"})
				}
				if containsTag(stack, TagA) {
					warnings = append(warnings, Warning{Offset: start, Snippet: raw, Reason: "nested anchor"})
				}
			}
			stack = append(stack, openElement{tag: tag, offset: start, raw: raw})
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if !InVocabulary(tag) {
				continue
			}
			idx := lastIndex(stack, tag)
			if idx < 0 {
				warnings = append(warnings, Warning{Offset: start, Snippet: raw, Reason: "unexpected closing tag"})
				continue
			}
			for _, open := range stack[idx+1:] {
				warnings = append(warnings, Warning{Offset: open.offset, Snippet: open.raw, Reason: "unclosed tag"})
			}
			stack = stack[:idx]
		}
	}

	for _, open := range stack {
		warnings = append(warnings, Warning{Offset: open.offset, Snippet: open.raw, Reason: "unclosed tag"})
	}
	return warnings
}

func hasHref(z *html.Tokenizer, hasAttr bool) bool {
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		if strings.EqualFold(string(key), "href") && strings.TrimSpace(string(val)) != "" {
			return true
		}
	}
	return false
}

func containsTag(stack []openElement, tag string) bool {
	return lastIndex(stack, tag) >= 0
}

func lastIndex(stack []openElement, tag string) int {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].tag == tag {
			return i
		}
	}
	return -1
}
