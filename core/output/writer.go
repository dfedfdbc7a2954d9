// Package output writes rendered results to stdout or to files named after
// the operation that produced them.
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gaurav-prasanna/finpipe/core"
)

// Writer writes rendered output. With no directory it writes to Stdout.
type Writer struct {
	OutputDir string
	Stdout    io.Writer
}

// New creates a Writer. A non-empty outputDir is created if missing.
func New(outputDir string, stdout io.Writer) (*Writer, error) {
	if stdout == nil {
		stdout = os.Stdout
	}
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}
	return &Writer{OutputDir: outputDir, Stdout: stdout}, nil
}

// Write stores data and returns the file path, or "" when written to stdout.
func (w *Writer) Write(meta core.OutputMeta, data []byte, ext string) (string, error) {
	if w.OutputDir == "" {
		if _, err := w.Stdout.Write(data); err != nil {
			return "", fmt.Errorf("writing output: %w", err)
		}
		return "", nil
	}

	path := filepath.Join(w.OutputDir, Filename(meta)+ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// Filename builds source_operation[_param] with every part sanitized.
// Example: fnguide, snapshot, 005930 → fnguide_snapshot_005930
func Filename(meta core.OutputMeta) string {
	parts := []string{sanitize(meta.Source), sanitize(meta.Operation)}
	if meta.Param != "" {
		parts = append(parts, sanitize(meta.Param))
	}
	return strings.Join(parts, "_")
}

// sanitize replaces non-alphanumeric characters with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
