// Package inline normalises the rich inline markup found inside block content
// (code, u, mark, i, em, strong, b, sup and a) into inline-styled tags, and
// turns external hyperlinks into numbered footnotes recorded on a
// per-conversion Ledger.
package inline

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'blockhtml.inline'.
func tracer() tracing.Trace {
	return tracing.Select("blockhtml.inline")
}
