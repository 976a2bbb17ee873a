package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/datashed/datashed/version"
)

// JSONDataset encodes a value as JSON and saves it to a local file, or reads
// in and decodes an existing JSON file. The file holds a single UTF-8 JSON
// document; saves default to 4-space indentation.
//
// Load args: "use_number" (bool) decodes numbers as json.Number instead of
// float64. Save args: "indent" (int) sets the indentation width, 0 writes
// compact output.
type JSONDataset struct {
	filepath string
	loadArgs Options
	saveArgs Options
	version  *version.Version
}

// NewJSON creates a JSON adapter for the given logical filepath.
func NewJSON(path string, opts ...Option) (*JSONDataset, error) {
	if path == "" {
		return nil, ErrEmptyFilepath
	}
	c := applyOptions(opts)
	return &JSONDataset{
		filepath: path,
		loadArgs: mergeOptions(Options{}, c.loadArgs),
		saveArgs: mergeOptions(Options{"indent": 4}, c.saveArgs),
		version:  c.version,
	}, nil
}

// Describe returns the adapter configuration.
func (d *JSONDataset) Describe() map[string]any {
	return map[string]any{
		"filepath":  d.filepath,
		"load_args": d.loadArgs,
		"save_args": d.saveArgs,
		"version":   d.version,
	}
}

// Load resolves the configured version and decodes the file content.
func (d *JSONDataset) Load() (any, error) {
	path, err := version.ResolveLoad(d.filepath, d.version)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	decoder := json.NewDecoder(file)
	if boolOption(d.loadArgs, "use_number") {
		decoder.UseNumber()
	}

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return value, nil
}

// Save encodes value and writes it to the resolved save path, creating
// parent directories as needed. After the write it re-resolves the load path
// and verifies both point at the same file; a mismatch is reported even
// though the write already happened.
func (d *JSONDataset) Save(value any) error {
	savePath, err := version.ResolveSave(d.filepath, d.version)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(savePath), 0o755); err != nil {
		return fmt.Errorf("failed to create directories for %s: %w", savePath, err)
	}

	data, err := d.encode(value)
	if err != nil {
		return fmt.Errorf("failed to encode JSON for %s: %w", savePath, err)
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

// Exists reports whether the dataset resolves to a regular file. A version
// that cannot be resolved means no data has been saved yet.
func (d *JSONDataset) Exists() (bool, error) {
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

func (d *JSONDataset) encode(value any) ([]byte, error) {
	indent := intOption(d.saveArgs, "indent", 0)
	if indent > 0 {
		return json.MarshalIndent(value, "", strings.Repeat(" ", indent))
	}
	return json.Marshal(value)
}
