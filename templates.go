package blockhtml

import (
	"io/fs"

	"github.com/goliatone/go-blockhtml/pkg/config"
	"github.com/goliatone/go-blockhtml/pkg/page"
)

// EmbeddedConfig exposes the default theme files so callers can copy or
// layer on top of them.
func EmbeddedConfig() fs.FS {
	return config.EmbeddedFS()
}

// EmbeddedPageTemplates exposes the built-in article templates.
func EmbeddedPageTemplates() fs.FS {
	return page.TemplatesFS()
}
