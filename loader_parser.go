package blockhtml

import (
	"io/fs"

	"github.com/goliatone/go-blockhtml/pkg/block"
	"github.com/goliatone/go-blockhtml/pkg/config"
)

// ParseDocument decodes an editor payload, either the envelope object or a
// bare array of blocks.
func ParseDocument(payload []byte) (Document, error) {
	return block.ParseDocument(payload)
}

// LoadConfig loads templates, inline styles and permalink prefixes from
// every JSON, YAML and TOML file in fsys.
func LoadConfig(fsys fs.FS) (config.Config, error) {
	return config.LoadFS(fsys)
}
