package catalog

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/datashed/datashed/dataset"
	"github.com/datashed/datashed/version"
)

// Entry describes one dataset in a catalog config file.
type Entry struct {
	Type        string         `yaml:"type"`
	Filepath    string         `yaml:"filepath"`
	LoadArgs    map[string]any `yaml:"load_args"`
	SaveArgs    map[string]any `yaml:"save_args"`
	Versioned   bool           `yaml:"versioned"`
	LoadVersion string         `yaml:"load_version"`
	SaveVersion string         `yaml:"save_version"`
}

// Config maps dataset names to their entries, mirroring the on-disk YAML:
//
//	weather:
//	  type: json
//	  filepath: data/weather.json
//	  versioned: true
//	  save_args:
//	    indent: 2
type Config map[string]Entry

// ParseConfig decodes a catalog config document.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse catalog config: %w", err)
	}
	return cfg, nil
}

// LoadConfigFile reads and decodes a catalog config file.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog config: %w", err)
	}
	return ParseConfig(data)
}

// FromConfig builds a catalog with one dataset per config entry.
func FromConfig(cfg Config, opts ...Option) (*Catalog, error) {
	c := New(opts...)

	// Deterministic construction order makes config errors reproducible.
	names := make([]string, 0, len(cfg))
	for name := range cfg {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ds, err := buildDataset(cfg[name])
		if err != nil {
			return nil, fmt.Errorf("dataset %q: %w", name, err)
		}
		if err := c.Add(name, ds); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// buildDataset constructs the adapter an entry describes.
func buildDataset(entry Entry) (dataset.Dataset, error) {
	if entry.Filepath == "" {
		return nil, dataset.ErrEmptyFilepath
	}

	var opts []dataset.Option
	if entry.LoadArgs != nil {
		opts = append(opts, dataset.WithLoadArgs(dataset.Options(entry.LoadArgs)))
	}
	if entry.SaveArgs != nil {
		opts = append(opts, dataset.WithSaveArgs(dataset.Options(entry.SaveArgs)))
	}
	if v := entryVersion(entry); v != nil {
		opts = append(opts, dataset.WithVersion(v))
	}

	switch entry.Type {
	case "json":
		return dataset.NewJSON(entry.Filepath, opts...)
	case "yaml":
		return dataset.NewYAML(entry.Filepath, opts...)
	case "text":
		return dataset.NewText(entry.Filepath, opts...)
	default:
		return nil, fmt.Errorf("unknown dataset type %q", entry.Type)
	}
}

// entryVersion derives the version descriptor for an entry. Pinning either
// token implies versioning even without the versioned flag.
func entryVersion(entry Entry) *version.Version {
	if !entry.Versioned && entry.LoadVersion == "" && entry.SaveVersion == "" {
		return nil
	}
	return &version.Version{
		Load: entry.LoadVersion,
		Save: entry.SaveVersion,
	}
}
