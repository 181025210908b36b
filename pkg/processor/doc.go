// Package processor normalises raw block data before rendering. A Registry
// routes block types to processors, falling back to a designated default for
// unknown types. Entries are either eager instances or deferred factories
// that are constructed once, on first use.
package processor

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'blockhtml.processor'.
func tracer() tracing.Trace {
	return tracing.Select("blockhtml.processor")
}
