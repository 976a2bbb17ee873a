// Package version resolves logical dataset filepaths to concrete versioned
// paths on disk. A versioned dataset keeps every saved copy under
// <filepath>/<token>/<basename(filepath)>, so multiple historical copies of
// the same logical path coexist and loads can target any of them.
package version

import (
	"time"
)

// TokenLayout is the time layout for generated version tokens. Dots stand in
// for colons so tokens are valid path segments on every filesystem, and the
// layout sorts lexicographically in chronological order.
const TokenLayout = "2006-01-02T15.04.05.000Z"

// Version selects which concrete copy of a dataset to read and write.
// An empty Load means "latest existing version"; an empty Save means
// "autogenerate a new token". A nil *Version disables versioning entirely
// and operations use the logical filepath as-is.
type Version struct {
	Load string
	Save string
}

// GenerateToken returns a fresh save-version token derived from the current
// UTC time.
func GenerateToken() string {
	return time.Now().UTC().Format(TokenLayout)
}
