package processor

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-blockhtml/pkg/block"
)

var (
	inlinePolicyOnce sync.Once
	inlinePolicy     *bluemonday.Policy
)

// InlinePolicy returns a bluemonday policy that keeps the inline vocabulary
// (plus <br> and <a href>) and strips everything else.
func InlinePolicy() *bluemonday.Policy {
	inlinePolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowElements("code", "u", "mark", "i", "em", "strong", "b", "sup", "br")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowStandardURLs()
		// The normalizer only recognises anchors carrying a lone href.
		policy.RequireNoFollowOnLinks(false)
		inlinePolicy = policy
	})
	return inlinePolicy
}

// Sanitize wraps p so that every string it emits is passed through policy.
// A nil policy uses InlinePolicy.
func Sanitize(p Processor, policy *bluemonday.Policy) Processor {
	if policy == nil {
		policy = InlinePolicy()
	}
	return &sanitizing{inner: p, policy: policy}
}

type sanitizing struct {
	inner  Processor
	policy *bluemonday.Policy
}

func (s *sanitizing) Normalize(raw block.Data) (block.Data, error) {
	data, err := s.inner.Normalize(raw)
	if err != nil {
		return nil, err
	}
	out := make(block.Data, len(data))
	for key, value := range data {
		out[key] = s.clean(value)
	}
	return out, nil
}

func (s *sanitizing) Content(data block.Data, field string) []string {
	return Content(s.inner, data, field)
}

func (s *sanitizing) clean(value any) any {
	switch v := value.(type) {
	case string:
		return s.policy.Sanitize(v)
	case []string:
		out := make([]string, len(v))
		for i, item := range v {
			out[i] = s.policy.Sanitize(item)
		}
		return out
	default:
		return value
	}
}
