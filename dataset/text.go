package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/datashed/datashed/version"
)

// TextDataset saves and loads raw text files. Load returns the file content
// as a string; Save accepts a string or []byte. There are no codec options,
// but load and save args are still carried for Describe symmetry.
type TextDataset struct {
	filepath string
	loadArgs Options
	saveArgs Options
	version  *version.Version
}

// NewText creates a text adapter for the given logical filepath.
func NewText(path string, opts ...Option) (*TextDataset, error) {
	if path == "" {
		return nil, ErrEmptyFilepath
	}
	c := applyOptions(opts)
	return &TextDataset{
		filepath: path,
		loadArgs: mergeOptions(Options{}, c.loadArgs),
		saveArgs: mergeOptions(Options{}, c.saveArgs),
		version:  c.version,
	}, nil
}

// Describe returns the adapter configuration.
func (d *TextDataset) Describe() map[string]any {
	return map[string]any{
		"filepath":  d.filepath,
		"load_args": d.loadArgs,
		"save_args": d.saveArgs,
		"version":   d.version,
	}
}

// Load resolves the configured version and returns the file content.
func (d *TextDataset) Load() (any, error) {
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
	return string(data), nil
}

// Save writes value to the resolved save path, then checks load/save path
// consistency.
func (d *TextDataset) Save(value any) error {
	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("text dataset expects string or []byte, got %T", value)
	}

	savePath, err := version.ResolveSave(d.filepath, d.version)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(savePath), 0o755); err != nil {
		return fmt.Errorf("failed to create directories for %s: %w", savePath, err)
	}
	if err := os.WriteFile(savePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", savePath, err)
	}

	loadPath, err := version.ResolveLoad(d.filepath, d.version)
	if err != nil {
		return err
	}
	return version.CheckConsistency(loadPath, savePath)
}

// Exists reports whether the dataset resolves to a regular file.
func (d *TextDataset) Exists() (bool, error) {
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
