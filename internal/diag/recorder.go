// Package diag persists raw failing model responses for later inspection.
// Writes are best-effort: the retry loop calls the recorder but never
// inspects its outcome.
package diag

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Recorder receives raw model output that failed extraction or validation.
type Recorder interface {
	RecordFailure(raw string)
}

// FileRecorder writes one file per failed attempt under a diagnostics
// directory, named by a UTC timestamp with second resolution.
type FileRecorder struct {
	dir string
	now func() time.Time
}

// NewFileRecorder creates a recorder writing into dir.
func NewFileRecorder(dir string) *FileRecorder {
	return &FileRecorder{
		dir: dir,
		now: time.Now,
	}
}

// RecordFailure writes the raw response to resp_<timestamp>.txt. Failures to
// write are logged and swallowed.
func (r *FileRecorder) RecordFailure(raw string) {
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		slog.Debug("create diagnostics dir failed", "dir", r.dir, "error", err)
		return
	}

	name := fmt.Sprintf("resp_%s.txt", r.now().UTC().Format("20060102_150405"))
	path := filepath.Join(r.dir, name)

	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		slog.Debug("write diagnostics file failed", "path", path, "error", err)
		return
	}

	slog.Info("saved failing response", "path", path)
}

// Nop discards all failures. Used when diagnostics are disabled and in tests.
type Nop struct{}

func (Nop) RecordFailure(string) {}
