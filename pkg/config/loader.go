package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	blockerrors "github.com/goliatone/go-blockhtml/pkg/errors"
	"github.com/goliatone/go-blockhtml/pkg/inline"
	"github.com/goliatone/go-blockhtml/pkg/template"
)

// Config is the read-only rendering configuration: block templates, the
// inline style table and the internal permalink prefixes.
type Config struct {
	Templates  template.Set
	Inline     inline.StyleTable
	Permalinks []string
}

// Validate checks templates and inline styles.
func (c Config) Validate() error {
	if len(c.Templates) == 0 {
		return blockerrors.NewConfigurationError("template set", "", "no templates configured")
	}
	if err := c.Templates.Validate(); err != nil {
		return err
	}
	return c.Inline.Validate()
}

type documentFile struct {
	Permalinks []string                            `json:"permalinks" yaml:"permalinks" toml:"permalinks"`
	Inline     map[string]string                   `json:"inline" yaml:"inline" toml:"inline"`
	Templates  map[string]map[string]template.Node `json:"templates" yaml:"templates" toml:"templates"`
}

// LoadFS walks fsys and merges every JSON, YAML and TOML file it finds into
// one Config. Duplicate templates or inline entries across files are
// rejected. The merged result is validated.
func LoadFS(fsys fs.FS) (Config, error) {
	cfg := Config{
		Templates: template.NewSet(),
		Inline:    make(inline.StyleTable),
	}
	if fsys == nil {
		return Config{}, fmt.Errorf("config: filesystem is nil")
	}

	var paths []string
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isConfigFile(path) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return Config{}, fmt.Errorf("config: walk: %w", err)
	}
	if len(paths) == 0 {
		return Config{}, blockerrors.NewConfigurationError("config", "", "no configuration files found")
	}
	sort.Strings(paths)

	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		doc, err := parseDocument(data, path)
		if err != nil {
			return Config{}, err
		}
		if err := merge(&cfg, doc, path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	tracer().Infof("config: loaded %d block types from %d files", len(cfg.Templates), len(paths))
	return cfg, nil
}

// Parse decodes a single configuration file. The format is picked from the
// file extension of name.
func Parse(data []byte, name string) (Config, error) {
	doc, err := parseDocument(data, name)
	if err != nil {
		return Config{}, err
	}
	cfg := Config{Templates: template.NewSet(), Inline: make(inline.StyleTable)}
	if err := merge(&cfg, doc, name); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("config: file %s is empty", source)
	}

	var err error
	switch strings.ToLower(filepath.Ext(source)) {
	case ".json":
		err = json.Unmarshal(data, &doc)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	case ".toml":
		err = toml.Unmarshal(data, &doc)
	default:
		return documentFile{}, fmt.Errorf("config: %s: unsupported file type", source)
	}
	if err != nil {
		return documentFile{}, fmt.Errorf("config: parse %s: %w", source, err)
	}
	return doc, nil
}

func merge(cfg *Config, doc documentFile, source string) error {
	for blockType, variants := range doc.Templates {
		set := template.NewSet()
		for variant, root := range variants {
			set.Add(blockType, variant, root)
		}
		if err := cfg.Templates.Merge(set); err != nil {
			return fmt.Errorf("config: %s: %w", source, err)
		}
	}

	for tag, entry := range doc.Inline {
		key := strings.ToLower(strings.TrimSpace(tag))
		if _, exists := cfg.Inline[key]; exists {
			return fmt.Errorf("config: %s: %w", source, blockerrors.NewConfigurationError("inline style", key, "duplicate entry"))
		}
		cfg.Inline[key] = strings.TrimSpace(entry)
	}

	for _, prefix := range doc.Permalinks {
		prefix = strings.TrimSpace(prefix)
		if prefix == "" || contains(cfg.Permalinks, prefix) {
			continue
		}
		cfg.Permalinks = append(cfg.Permalinks, prefix)
	}
	return nil
}

func isConfigFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml", ".toml":
		return true
	default:
		return false
	}
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
