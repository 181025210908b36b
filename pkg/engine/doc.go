// Package engine renders block documents into inline-styled HTML.
//
// For every block the engine normalises the block data through the processor
// registry, picks a template variant from the normalised data, resolves the
// template and expands it depth-first. Content nodes pass their text through
// the inline normalizer, which numbers external links as footnotes on a ledger
// owned by the conversion. The ledger is returned with the result; the engine
// never appends it to the HTML.
//
// A conversion either succeeds as a whole or returns an error and an empty
// Result. Malformed inline content is reported as warnings.
package engine

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'blockhtml.engine'.
func tracer() tracing.Trace {
	return tracing.Select("blockhtml.engine")
}
