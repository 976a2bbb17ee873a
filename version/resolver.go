package version

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ErrNoVersions indicates that load resolution found no saved versions for a
// dataset.
var ErrNoVersions = errors.New("no versions found")

// ErrVersionExists indicates that save resolution targeted a version that is
// already on disk. Versions are immutable; saving over one is rejected.
var ErrVersionExists = errors.New("version already exists")

// ResolutionError is returned when a concrete path cannot be determined for
// a logical filepath and version.
type ResolutionError struct {
	Filepath string
	Err      error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve version for %q: %v", e.Filepath, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// ConsistencyError is returned when the load path re-resolved after a save
// does not match the path that was written.
type ConsistencyError struct {
	LoadPath string
	SavePath string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("save path %q does not match load path %q", e.SavePath, e.LoadPath)
}

// VersionedPath returns the concrete path for one version token:
// <filepath>/<token>/<basename(filepath)>.
func VersionedPath(path, token string) string {
	return filepath.Join(path, token, filepath.Base(path))
}

// ResolveLoad determines the concrete path to read for the given logical
// filepath. A nil version returns the filepath unchanged. An explicit load
// token is used verbatim; otherwise the latest saved version is selected.
func ResolveLoad(path string, v *Version) (string, error) {
	if v == nil {
		return path, nil
	}
	if v.Load != "" {
		return VersionedPath(path, v.Load), nil
	}
	token, err := latestToken(path)
	if err != nil {
		return "", &ResolutionError{Filepath: path, Err: err}
	}
	return VersionedPath(path, token), nil
}

// ResolveSave determines the concrete path to write for the given logical
// filepath. A nil version returns the filepath unchanged. An explicit save
// token is used verbatim; otherwise a timestamp token is generated. Saving
// to a version that already exists is an error.
func ResolveSave(path string, v *Version) (string, error) {
	if v == nil {
		return path, nil
	}
	token := v.Save
	if token == "" {
		token = GenerateToken()
	}
	versioned := VersionedPath(path, token)
	if _, err := os.Stat(versioned); err == nil {
		return "", &ResolutionError{Filepath: path, Err: fmt.Errorf("%w: %s", ErrVersionExists, token)}
	}
	return versioned, nil
}

// CheckConsistency verifies that a re-resolved load path matches the save
// path that was just written. The two diverge when a concurrent writer
// produced a newer version between the write and the check.
func CheckConsistency(loadPath, savePath string) error {
	if filepath.Clean(loadPath) != filepath.Clean(savePath) {
		return &ConsistencyError{LoadPath: loadPath, SavePath: savePath}
	}
	return nil
}

// Tokens returns the version tokens saved under a logical filepath, oldest
// first. Only tokens whose leaf file exists count as versions. A missing
// directory yields an empty slice, not an error.
func Tokens(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}

	var tokens []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := os.Stat(VersionedPath(path, entry.Name()))
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		tokens = append(tokens, entry.Name())
	}
	sort.Strings(tokens)
	return tokens, nil
}

// latestToken returns the greatest saved token. Token layout sorts
// newest-last.
func latestToken(path string) (string, error) {
	tokens, err := Tokens(path)
	if err != nil {
		return "", err
	}
	if len(tokens) == 0 {
		return "", ErrNoVersions
	}
	return tokens[len(tokens)-1], nil
}
