// Package page composes a rendered document body and its footnote ledger into
// one article fragment using a go-template (pongo2) page template. The engine
// never appends the ledger itself; callers that want a trailing reference list
// use this package.
package page
