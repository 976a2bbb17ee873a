package dataset

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/datashed/datashed/version"
)

// YAMLDataset encodes a value as YAML and saves it to a local file, or reads
// in and decodes an existing YAML file.
//
// Save args: "indent" (int) sets the indentation width, default 2.
type YAMLDataset struct {
	filepath string
	loadArgs Options
	saveArgs Options
	version  *version.Version
}

// NewYAML creates a YAML adapter for the given logical filepath.
func NewYAML(path string, opts ...Option) (*YAMLDataset, error) {
	if path == "" {
		return nil, ErrEmptyFilepath
	}
	c := applyOptions(opts)
	return &YAMLDataset{
		filepath: path,
		loadArgs: mergeOptions(Options{}, c.loadArgs),
		saveArgs: mergeOptions(Options{"indent": 2}, c.saveArgs),
		version:  c.version,
	}, nil
}

// Describe returns the adapter configuration.
func (d *YAMLDataset) Describe() map[string]any {
	return map[string]any{
		"filepath":  d.filepath,
		"load_args": d.loadArgs,
		"save_args": d.saveArgs,
		"version":   d.version,
	}
}

// Load resolves the configured version and decodes the file content.
func (d *YAMLDataset) Load() (any, error) {
	path, err := version.ResolveLoad(d.filepath, d.version)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var value any
	if err := yaml.Unmarshal(data, &value); err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return value, nil
}

// Save encodes value and writes it to the resolved save path, then checks
// load/save path consistency the same way the JSON adapter does.
func (d *YAMLDataset) Save(value any) error {
	savePath, err := version.ResolveSave(d.filepath, d.version)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(savePath), 0o755); err != nil {
		return fmt.Errorf("failed to create directories for %s: %w", savePath, err)
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(intOption(d.saveArgs, "indent", 2))
	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("failed to encode YAML for %s: %w", savePath, err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to encode YAML for %s: %w", savePath, err)
	}
	if err := os.WriteFile(savePath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", savePath, err)
	}

	loadPath, err := version.ResolveLoad(d.filepath, d.version)
	if err != nil {
		return err
	}
	return version.CheckConsistency(loadPath, savePath)
}

// Exists reports whether the dataset resolves to a regular file.
func (d *YAMLDataset) Exists() (bool, error) {
	path, err := version.ResolveLoad(d.filepath, d.version)
	if err != nil {
		var resErr *version.ResolutionError
		if errors.As(err, &resErr) {
			return false, nil
		}
		return false, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}
