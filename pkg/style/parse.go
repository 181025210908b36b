package style

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/aymerick/douceur/parser"
	"gopkg.in/yaml.v3"
)

// ParseInline parses a CSS declaration list such as
// "font-size: 14px; color: #333" into an ordered Map.
func ParseInline(css string) (Map, error) {
	trimmed := strings.TrimSpace(css)
	if trimmed == "" {
		return nil, nil
	}
	// douceur drops the value of a final declaration that lacks its ';'.
	if !strings.HasSuffix(trimmed, ";") {
		trimmed += ";"
	}
	decls, err := parser.ParseDeclarations(trimmed)
	if err != nil {
		return nil, fmt.Errorf("style: parse %q: %w", trimmed, err)
	}
	if len(decls) == 0 {
		return nil, fmt.Errorf("style: parse %q: no declarations found", trimmed)
	}
	out := make(Map, 0, len(decls))
	for _, decl := range decls {
		name := strings.TrimSpace(decl.Property)
		value := strings.TrimSpace(decl.Value)
		if value == "" {
			return nil, fmt.Errorf("style: parse %q: property %q has no value", trimmed, name)
		}
		if decl.Important {
			value += " !important"
		}
		out = append(out, Declaration{Name: name, Value: value})
	}
	return out, nil
}

// UnmarshalText accepts the CSS string form. TOML configuration relies on it.
func (m *Map) UnmarshalText(text []byte) error {
	parsed, err := ParseInline(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// UnmarshalJSON accepts either a CSS string or a flat JSON object, keeping the
// object's key order.
func (m *Map) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*m = nil
		return nil
	}
	if trimmed[0] == '"' {
		var css string
		if err := json.Unmarshal(trimmed, &css); err != nil {
			return fmt.Errorf("style: decode css string: %w", err)
		}
		return m.UnmarshalText([]byte(css))
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("style: decode object: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("style: expected object or string, got %v", tok)
	}

	var out Map
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("style: decode key: %w", err)
		}
		key, _ := keyTok.(string)

		var raw any
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("style: decode %q: %w", key, err)
		}
		value, err := scalarString(raw)
		if err != nil {
			return fmt.Errorf("style: property %q: %w", key, err)
		}
		out = append(out, Declaration{Name: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("style: decode object end: %w", err)
	}
	*m = out
	return nil
}

// UnmarshalYAML accepts either a CSS string scalar or a flat mapping, keeping
// the mapping order.
func (m *Map) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*m = nil
			return nil
		}
		return m.UnmarshalText([]byte(node.Value))
	case yaml.MappingNode:
		out := make(Map, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			if value.Kind != yaml.ScalarNode {
				return fmt.Errorf("style: property %q (line %d): value must be a scalar", key.Value, value.Line)
			}
			out = append(out, Declaration{Name: key.Value, Value: value.Value})
		}
		*m = out
		return nil
	default:
		return fmt.Errorf("style: line %d: expected mapping or string", node.Line)
	}
}

func scalarString(v any) (string, error) {
	switch value := v.(type) {
	case string:
		return value, nil
	case json.Number:
		return value.String(), nil
	case bool:
		return strconv.FormatBool(value), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("value must be a scalar, got %T", v)
	}
}
