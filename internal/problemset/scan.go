package problemset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Summary describes one problem set file in a directory listing.
type Summary struct {
	Name  string
	Path  string
	Count int

	// Err is set when the file could not be counted; Count is then 0.
	Err error
}

// Count returns the number of problems in a file without keeping them.
// For CSV this is the number of non-blank records after the header,
// including records Load would skip.
func Count(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open problem set: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return countCSV(f)
	case ".json":
		return countJSON(f)
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Scan lists the problem set files in dir, sorted by file name. A file
// that cannot be read is listed with Err set rather than failing the scan.
// A missing directory yields an empty list.
func Scan(dir string) ([]Summary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read problem set dir: %w", err)
	}

	var out []Summary
	for _, e := range entries {
		if e.IsDir() || !Supported(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		n, err := Count(path)
		out = append(out, Summary{Name: e.Name(), Path: path, Count: n, Err: err})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
