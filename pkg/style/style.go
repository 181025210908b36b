package style

import (
	"strings"
	"unicode"
)

// Declaration is a single CSS property/value pair. Name may be written in
// camelCase or kebab-case; Serialize normalises it.
type Declaration struct {
	Name  string
	Value string
}

// Map is an ordered collection of declarations. Order is preserved from the
// configuration source and reproduced verbatim by Serialize.
type Map []Declaration

// Of builds a Map from alternating name/value pairs. A trailing name without a
// value is ignored.
func Of(pairs ...string) Map {
	if len(pairs) < 2 {
		return nil
	}
	out := make(Map, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Declaration{Name: pairs[i], Value: pairs[i+1]})
	}
	return out
}

// Get returns the value for name, comparing kebab-case forms.
func (m Map) Get(name string) (string, bool) {
	key := Kebab(name)
	for _, decl := range m {
		if Kebab(decl.Name) == key {
			return decl.Value, true
		}
	}
	return "", false
}

// With returns a copy of m with name set to value. An existing declaration
// keeps its position; a new one is appended.
func (m Map) With(name, value string) Map {
	out := make(Map, len(m), len(m)+1)
	copy(out, m)
	key := Kebab(name)
	for i, decl := range out {
		if Kebab(decl.Name) == key {
			out[i].Value = value
			return out
		}
	}
	return append(out, Declaration{Name: name, Value: value})
}

// Len reports the number of declarations.
func (m Map) Len() int {
	return len(m)
}

func (m Map) String() string {
	return Serialize(m)
}

// Serialize renders m as an inline CSS string: `prop: value;` per declaration
// in insertion order, joined by a single space. An empty map yields "".
func Serialize(m Map) string {
	if len(m) == 0 {
		return ""
	}
	var b strings.Builder
	for i, decl := range m {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(Kebab(decl.Name))
		b.WriteString(": ")
		b.WriteString(decl.Value)
		b.WriteByte(';')
	}
	return b.String()
}

// Kebab converts a camelCase property name to kebab-case. Names already in
// kebab-case are returned unchanged; a leading capital produces a vendor
// prefix (WebkitBoxShadow -> -webkit-box-shadow). The Microsoft prefix is
// conventionally written lowercase, so msTransform -> -ms-transform too.
func Kebab(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	hasUpper := false
	for _, r := range name {
		if unicode.IsUpper(r) {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return name
	}

	var b strings.Builder
	b.Grow(len(name) + 4)
	if len(name) > 2 && strings.HasPrefix(name, "ms") && unicode.IsUpper(rune(name[2])) {
		b.WriteString("-ms")
		name = name[2:]
	}
	for _, r := range name {
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
