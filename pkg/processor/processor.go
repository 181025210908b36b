package processor

import (
	"github.com/goliatone/go-blockhtml/pkg/block"
)

// PrimaryField is the data field injected by content nodes that do not name
// a field, unless the processor resolves content itself.
const PrimaryField = "text"

// Processor normalises raw block data into safe data: defaults applied,
// required fields present, values coerced to the types templates expect.
// Implementations must not mutate raw.
type Processor interface {
	Normalize(raw block.Data) (block.Data, error)
}

// Func adapts a function into a Processor.
type Func func(raw block.Data) (block.Data, error)

// Normalize calls the underlying function.
func (fn Func) Normalize(raw block.Data) (block.Data, error) {
	return fn(raw)
}

// ContentResolver is implemented by processors that decide which strings a
// content node injects. field is the node's Field; an empty field asks for the
// primary content. Returning several strings repeats the content node once
// per string (list items, paragraphs).
type ContentResolver interface {
	Content(data block.Data, field string) []string
}

// Content resolves the strings a content node injects for data normalised by
// p. Processors without a ContentResolver inject the named field, or
// PrimaryField when field is empty.
func Content(p Processor, data block.Data, field string) []string {
	if resolver, ok := p.(ContentResolver); ok {
		return resolver.Content(data, field)
	}
	if field == "" {
		field = PrimaryField
	}
	return []string{data.String(field)}
}
