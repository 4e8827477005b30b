package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// dateLayout is the dated-file naming convention.
const dateLayout = "2006-01-02"

// Dir manages the per-date lesson JSON files consumed by the frontend.
type Dir struct {
	path string
}

// NewDir creates a Dir rooted at path.
func NewDir(path string) *Dir {
	return &Dir{path: path}
}

// Path returns the directory path.
func (d *Dir) Path() string {
	return d.path
}

// lessonPath returns the file path for a date.
func (d *Dir) lessonPath(date string) string {
	return filepath.Join(d.path, date+".json")
}

// WriteLesson writes the lesson JSON for a date, overwriting any existing
// file for that date.
func (d *Dir) WriteLesson(date string, contentJSON []byte) error {
	if err := os.MkdirAll(d.path, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	if err := os.WriteFile(d.lessonPath(date), contentJSON, 0644); err != nil {
		return fmt.Errorf("write lesson file: %w", err)
	}
	return nil
}

// Exists reports whether a lesson file exists for a date.
func (d *Dir) Exists(date string) bool {
	_, err := os.Stat(d.lessonPath(date))
	return err == nil
}

// MostRecent returns the date and content of the newest lesson file.
func (d *Dir) MostRecent() (date string, contentJSON []byte, err error) {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, ErrNotFound
		}
		return "", nil, fmt.Errorf("read data directory: %w", err)
	}

	var dates []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		dates = append(dates, strings.TrimSuffix(name, ".json"))
	}
	if len(dates) == 0 {
		return "", nil, ErrNotFound
	}

	// Dated names sort lexicographically in chronological order.
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	date = dates[0]

	contentJSON, err = os.ReadFile(d.lessonPath(date))
	if err != nil {
		return "", nil, fmt.Errorf("read lesson file: %w", err)
	}
	return date, contentJSON, nil
}
