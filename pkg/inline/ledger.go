package inline

import "strconv"

// Footnote is one extracted hyperlink reference.
type Footnote struct {
	Index     int    `json:"index"`
	Reference string `json:"reference"`
	// Label is set when the reference is a plain-text label rather than a
	// link (scheme-prefixed hrefs that are not URL shaped).
	Label bool `json:"label,omitempty"`
}

// String renders the footnote as "[index]: reference".
func (f Footnote) String() string {
	return "[" + strconv.Itoa(f.Index) + "]: " + f.Reference
}

// Ledger collects footnotes for one document conversion and owns the
// footnote counter. Indices start at 1 and increase by one per footnote.
// A Ledger must not be shared between conversions.
type Ledger struct {
	next      int
	footnotes []Footnote
}

// NewLedger returns an empty ledger starting at index 1.
func NewLedger() *Ledger {
	return &Ledger{next: 1}
}

// Next returns the index the next footnote will receive.
func (l *Ledger) Next() int {
	if l.next < 1 {
		l.next = 1
	}
	return l.next
}

// Append records reference under the current index and advances the counter.
func (l *Ledger) Append(reference string, label bool) Footnote {
	note := Footnote{Index: l.Next(), Reference: reference, Label: label}
	l.footnotes = append(l.footnotes, note)
	l.next++
	return note
}

// Len reports how many footnotes were recorded.
func (l *Ledger) Len() int {
	if l == nil {
		return 0
	}
	return len(l.footnotes)
}

// Footnotes returns a copy of the recorded footnotes in index order.
func (l *Ledger) Footnotes() []Footnote {
	if l == nil || len(l.footnotes) == 0 {
		return nil
	}
	return append([]Footnote(nil), l.footnotes...)
}

// Entries returns the "[index]: reference" form of every footnote.
func (l *Ledger) Entries() []string {
	if l == nil || len(l.footnotes) == 0 {
		return nil
	}
	out := make([]string, len(l.footnotes))
	for i, note := range l.footnotes {
		out[i] = note.String()
	}
	return out
}
