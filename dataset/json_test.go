package dataset_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/datashed/datashed/dataset"
	"github.com/datashed/datashed/version"
)

func TestNewJSON(t *testing.T) {
	t.Run("RequiresFilepath", func(t *testing.T) {
		_, err := dataset.NewJSON("")
		if !errors.Is(err, dataset.ErrEmptyFilepath) {
			t.Fatalf("expected ErrEmptyFilepath, got %v", err)
		}
	})

	t.Run("DescribeReportsConfiguration", func(t *testing.T) {
		v := &version.Version{Load: "2026-01-01T00.00.00.000Z"}
		ds, err := dataset.NewJSON("data/things.json",
			dataset.WithSaveArgs(dataset.Options{"indent": 2}),
			dataset.WithVersion(v),
		)
		if err != nil {
			t.Fatal(err)
		}

		desc := ds.Describe()
		if desc["filepath"] != "data/things.json" {
			t.Errorf("unexpected filepath: %v", desc["filepath"])
		}
		saveArgs := desc["save_args"].(dataset.Options)
		if saveArgs["indent"] != 2 {
			t.Errorf("save args override not applied: %v", saveArgs)
		}
		if desc["version"] != v {
			t.Errorf("version not reported: %v", desc["version"])
		}
	})
}

func TestJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.json")
	ds, err := dataset.NewJSON(path)
	if err != nil {
		t.Fatal(err)
	}

	value := map[string]any{
		"a_string": "Hello, World!",
		"a_list":   []any{1, 2, 3},
	}
	if err := ds.Save(value); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	reloaded, err := ds.Load()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}

	// JSON decoding turns numbers into float64.
	want := map[string]any{
		"a_string": "Hello, World!",
		"a_list":   []any{float64(1), float64(2), float64(3)},
	}
	if diff := cmp.Diff(want, reloaded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONSaveIndentation(t *testing.T) {
	t.Run("DefaultsToFourSpaces", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.json")
		ds, err := dataset.NewJSON(path)
		if err != nil {
			t.Fatal(err)
		}
		if err := ds.Save(map[string]any{"a": 1}); err != nil {
			t.Fatal(err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), "\n    \"a\"") {
			t.Errorf("expected 4-space indentation, got:\n%s", data)
		}
	})

	t.Run("IndentOverride", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.json")
		ds, err := dataset.NewJSON(path, dataset.WithSaveArgs(dataset.Options{"indent": 2}))
		if err != nil {
			t.Fatal(err)
		}
		if err := ds.Save(map[string]any{"a": 1}); err != nil {
			t.Fatal(err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), "\n  \"a\"") {
			t.Errorf("expected 2-space indentation, got:\n%s", data)
		}
	})

	t.Run("ZeroIndentWritesCompact", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.json")
		ds, err := dataset.NewJSON(path, dataset.WithSaveArgs(dataset.Options{"indent": 0}))
		if err != nil {
			t.Fatal(err)
		}
		if err := ds.Save(map[string]any{"a": 1}); err != nil {
			t.Fatal(err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if strings.Contains(string(data), "\n") {
			t.Errorf("expected compact output, got:\n%s", data)
		}
	})
}

func TestJSONSaveCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deeply", "nested", "dirs", "test.json")
	ds, err := dataset.NewJSON(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := ds.Save([]any{"x"}); err != nil {
		t.Fatalf("save should create parent directories: %v", err)
	}

	// Saving again must not trip over existing directories.
	if err := ds.Save([]any{"y"}); err != nil {
		t.Fatalf("save into existing directories failed: %v", err)
	}
}

func TestJSONLoadErrors(t *testing.T) {
	t.Run("MissingFileIsNotFound", func(t *testing.T) {
		ds, err := dataset.NewJSON(filepath.Join(t.TempDir(), "missing.json"))
		if err != nil {
			t.Fatal(err)
		}
		_, err = ds.Load()
		var notFound *dataset.NotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
	})

	t.Run("MalformedContentIsDecodeError", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
			t.Fatal(err)
		}
		ds, err := dataset.NewJSON(path)
		if err != nil {
			t.Fatal(err)
		}
		_, err = ds.Load()
		var decodeErr *dataset.DecodeError
		if !errors.As(err, &decodeErr) {
			t.Fatalf("expected DecodeError, got %v", err)
		}
		if decodeErr.Path != path {
			t.Errorf("error does not name the file: %+v", decodeErr)
		}
	})
}

func TestJSONUseNumber(t *testing.T) {
	path := filepath.Join(t.TempDir(), "numbers.json")
	if err := os.WriteFile(path, []byte(`{"n": 9007199254740993}`), 0o644); err != nil {
		t.Fatal(err)
	}

	ds, err := dataset.NewJSON(path, dataset.WithLoadArgs(dataset.Options{"use_number": true}))
	if err != nil {
		t.Fatal(err)
	}
	value, err := ds.Load()
	if err != nil {
		t.Fatal(err)
	}

	n := value.(map[string]any)["n"]
	num, ok := n.(json.Number)
	if !ok {
		t.Fatalf("expected json.Number, got %T", n)
	}
	if num.String() != "9007199254740993" {
		t.Errorf("precision lost: %s", num)
	}
}

func TestJSONExists(t *testing.T) {
	t.Run("FalseBeforeSaveTrueAfter", func(t *testing.T) {
		ds, err := dataset.NewJSON(filepath.Join(t.TempDir(), "test.json"))
		if err != nil {
			t.Fatal(err)
		}

		exists, err := ds.Exists()
		if err != nil {
			t.Fatal(err)
		}
		if exists {
			t.Error("expected false before any save")
		}

		if err := ds.Save(map[string]any{"a": 1}); err != nil {
			t.Fatal(err)
		}

		exists, err = ds.Exists()
		if err != nil {
			t.Fatal(err)
		}
		if !exists {
			t.Error("expected true after save")
		}
	})

	t.Run("DirectoryIsNotADataset", func(t *testing.T) {
		dir := t.TempDir()
		ds, err := dataset.NewJSON(dir)
		if err != nil {
			t.Fatal(err)
		}
		exists, err := ds.Exists()
		if err != nil {
			t.Fatal(err)
		}
		if exists {
			t.Error("a directory must not count as an existing dataset")
		}
	})
}

func TestJSONVersioned(t *testing.T) {
	t.Run("RoundTripWithAutoVersion", func(t *testing.T) {
		base := filepath.Join(t.TempDir(), "test.json")
		ds, err := dataset.NewJSON(base, dataset.WithVersion(&version.Version{}))
		if err != nil {
			t.Fatal(err)
		}

		exists, err := ds.Exists()
		if err != nil {
			t.Fatal(err)
		}
		if exists {
			t.Error("empty version tree must read as not existing")
		}

		value := map[string]any{"a": "b"}
		if err := ds.Save(value); err != nil {
			t.Fatalf("versioned save failed: %v", err)
		}

		reloaded, err := ds.Load()
		if err != nil {
			t.Fatalf("versioned load failed: %v", err)
		}
		if diff := cmp.Diff(value, reloaded); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}

		exists, err = ds.Exists()
		if err != nil {
			t.Fatal(err)
		}
		if !exists {
			t.Error("expected true after versioned save")
		}
	})

	t.Run("ExplicitLoadToken", func(t *testing.T) {
		base := filepath.Join(t.TempDir(), "test.json")
		old, err := dataset.NewJSON(base, dataset.WithVersion(&version.Version{Save: "2026-01-01T00.00.00.000Z"}))
		if err != nil {
			t.Fatal(err)
		}
		if err := old.Save(map[string]any{"rev": "old"}); err != nil {
			t.Fatal(err)
		}
		newer, err := dataset.NewJSON(base, dataset.WithVersion(&version.Version{Save: "2026-01-02T00.00.00.000Z"}))
		if err != nil {
			t.Fatal(err)
		}
		if err := newer.Save(map[string]any{"rev": "new"}); err != nil {
			t.Fatal(err)
		}

		pinned, err := dataset.NewJSON(base, dataset.WithVersion(&version.Version{Load: "2026-01-01T00.00.00.000Z"}))
		if err != nil {
			t.Fatal(err)
		}
		value, err := pinned.Load()
		if err != nil {
			t.Fatal(err)
		}
		if value.(map[string]any)["rev"] != "old" {
			t.Errorf("expected pinned version content, got %v", value)
		}

		latest, err := dataset.NewJSON(base, dataset.WithVersion(&version.Version{}))
		if err != nil {
			t.Fatal(err)
		}
		value, err = latest.Load()
		if err != nil {
			t.Fatal(err)
		}
		if value.(map[string]any)["rev"] != "new" {
			t.Errorf("expected latest version content, got %v", value)
		}
	})

	t.Run("SaveToExistingVersionRejected", func(t *testing.T) {
		base := filepath.Join(t.TempDir(), "test.json")
		ds, err := dataset.NewJSON(base, dataset.WithVersion(&version.Version{Save: "2026-01-01T00.00.00.000Z"}))
		if err != nil {
			t.Fatal(err)
		}
		if err := ds.Save(map[string]any{"a": 1}); err != nil {
			t.Fatal(err)
		}
		err = ds.Save(map[string]any{"a": 2})
		if !errors.Is(err, version.ErrVersionExists) {
			t.Fatalf("expected ErrVersionExists, got %v", err)
		}
	})

	t.Run("SaveBehindLatestIsInconsistent", func(t *testing.T) {
		base := filepath.Join(t.TempDir(), "test.json")
		newer, err := dataset.NewJSON(base, dataset.WithVersion(&version.Version{Save: "2026-01-02T00.00.00.000Z"}))
		if err != nil {
			t.Fatal(err)
		}
		if err := newer.Save(map[string]any{"rev": "new"}); err != nil {
			t.Fatal(err)
		}

		// Writing an older version succeeds on disk but fails the post-save
		// consistency check, since load would resolve the newer one.
		older, err := dataset.NewJSON(base, dataset.WithVersion(&version.Version{Save: "2026-01-01T00.00.00.000Z"}))
		if err != nil {
			t.Fatal(err)
		}
		err = older.Save(map[string]any{"rev": "old"})
		var consErr *version.ConsistencyError
		if !errors.As(err, &consErr) {
			t.Fatalf("expected ConsistencyError, got %v", err)
		}
		// The write itself is not rolled back.
		if _, statErr := os.Stat(version.VersionedPath(base, "2026-01-01T00.00.00.000Z")); statErr != nil {
			t.Errorf("expected the file to remain on disk: %v", statErr)
		}
	})
}
