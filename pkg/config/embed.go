package config

import (
	"embed"
	"io/fs"
	"sync"
)

//go:embed theme/*
var embeddedTheme embed.FS

var (
	defaultOnce sync.Once
	defaultCfg  Config
	defaultErr  error
)

// EmbeddedFS returns the bundled default theme. Callers may pass it to
// LoadFS, or layer their own files on top of a copy.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedTheme, "theme")
	if err != nil {
		// The embed directive guarantees the subpath exists, so panic is
		// acceptable here.
		panic(err)
	}
	return sub
}

// Default loads the embedded theme once and returns it. The returned
// templates and style table must be treated as read-only.
func Default() (Config, error) {
	defaultOnce.Do(func() {
		defaultCfg, defaultErr = LoadFS(EmbeddedFS())
	})
	return defaultCfg, defaultErr
}

// MustDefault panics if the embedded theme fails to load.
func MustDefault() Config {
	cfg, err := Default()
	if err != nil {
		panic(err)
	}
	return cfg
}
