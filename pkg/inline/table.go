package inline

import (
	"sort"
	"strings"

	blockerrors "github.com/goliatone/go-blockhtml/pkg/errors"
	"github.com/goliatone/go-blockhtml/pkg/style"
)

// Inline tags understood by the normalizer.
const (
	TagCode   = "code"
	TagU      = "u"
	TagMark   = "mark"
	TagI      = "i"
	TagEm     = "em"
	TagStrong = "strong"
	TagB      = "b"
	TagSup    = "sup"
	TagA      = "a"
)

// Vocabulary lists the supported inline tags.
var Vocabulary = []string{TagCode, TagU, TagMark, TagI, TagEm, TagStrong, TagB, TagSup, TagA}

// InVocabulary reports whether tag is a supported inline tag.
func InVocabulary(tag string) bool {
	tag = strings.ToLower(tag)
	for _, known := range Vocabulary {
		if known == tag {
			return true
		}
	}
	return false
}

// StyleTable maps inline tags to the CSS string applied at content injection
// points. Entries are emitted verbatim.
type StyleTable map[string]string

// Lookup returns the entry for tag. Empty entries count as missing.
func (t StyleTable) Lookup(tag string) (string, bool) {
	entry := strings.TrimSpace(t[strings.ToLower(tag)])
	if entry == "" {
		return "", false
	}
	return entry, true
}

// Tags returns the tags with an entry, sorted.
func (t StyleTable) Tags() []string {
	tags := make([]string, 0, len(t))
	for tag := range t {
		if _, ok := t.Lookup(tag); ok {
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags
}

// Validate rejects tags outside the vocabulary and entries that are not a
// parseable CSS declaration list.
func (t StyleTable) Validate() error {
	tags := make([]string, 0, len(t))
	for tag := range t {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	for _, tag := range tags {
		if !InVocabulary(tag) {
			return blockerrors.NewConfigurationError("inline style", tag, "tag is not part of the inline vocabulary")
		}
		if _, err := style.ParseInline(t[tag]); err != nil {
			return &blockerrors.ConfigurationError{
				Subject: "inline style",
				Name:    tag,
				Reason:  "invalid CSS",
				Err:     err,
			}
		}
	}
	return nil
}

// Clone returns a copy of t.
func (t StyleTable) Clone() StyleTable {
	out := make(StyleTable, len(t))
	for tag, entry := range t {
		out[tag] = entry
	}
	return out
}
