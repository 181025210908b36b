// Package block defines the structured document representation consumed by the
// renderer: an ordered list of typed blocks carrying free-form data, as
// produced by block-style editors such as Editor.js.
package block

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Data carries the block payload. Processors treat it as read-only input and
// return fresh maps.
type Data map[string]any

// Block is one structured content unit.
type Block struct {
	ID   string `json:"id,omitempty"`
	Type string `json:"type"`
	Data Data   `json:"data"`
}

// Document is the ordered block sequence of one conversion.
type Document struct {
	Time    int64   `json:"time,omitempty"`
	Version string  `json:"version,omitempty"`
	Blocks  []Block `json:"blocks"`
}

// New builds a document from blocks.
func New(blocks ...Block) Document {
	return Document{Blocks: blocks}
}

// ParseDocument decodes an editor payload. Both the `{"blocks": [...]}`
// envelope and a bare JSON array of blocks are accepted.
func ParseDocument(data []byte) (Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Document{}, fmt.Errorf("block: document is empty")
	}

	if trimmed[0] == '[' {
		var blocks []Block
		if err := json.Unmarshal(trimmed, &blocks); err != nil {
			return Document{}, fmt.Errorf("block: decode block list: %w", err)
		}
		return Document{Blocks: blocks}, validateBlocks(blocks)
	}

	var doc Document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return Document{}, fmt.Errorf("block: decode document: %w", err)
	}
	return doc, validateBlocks(doc.Blocks)
}

// ReadDocument decodes a document from r.
func ReadDocument(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("block: read document: %w", err)
	}
	return ParseDocument(data)
}

func validateBlocks(blocks []Block) error {
	for idx, b := range blocks {
		if strings.TrimSpace(b.Type) == "" {
			return fmt.Errorf("block: block %d has no type", idx)
		}
	}
	return nil
}

// Clone returns a shallow copy of d. Nested maps and slices are shared.
func (d Data) Clone() Data {
	out := make(Data, len(d))
	for key, value := range d {
		out[key] = value
	}
	return out
}

// String returns the field as a string. Numbers and booleans are formatted;
// anything else yields "".
func (d Data) String(key string) string {
	switch v := d[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// Int returns the field as an int, falling back to def when the field is
// absent or not numeric.
func (d Data) Int(key string, def int) int {
	switch v := d[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

// Strings returns the field as a string slice. Non-string elements are
// skipped.
func (d Data) Strings(key string) []string {
	switch v := d[key].(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
