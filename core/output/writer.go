// Package output handles file naming and writing for rendered letters.
// Filenames combine the recipient name with a short random id so repeated
// renders for the same recipient never clobber each other.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Writer writes rendered letters to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// WriteLetter writes the rendered document and returns its path.
// Filename: <recipient>_<shortid>.pdf (e.g. jane_doe_3f8a91c2.pdf).
func (w *Writer) WriteLetter(recipientName string, data []byte) (string, error) {
	name := sanitizeName(recipientName)
	if name == "" {
		name = "letter"
	}
	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	path := filepath.Join(w.OutputDir, fmt.Sprintf("%s_%s.pdf", name, id))

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// sanitizeName lowercases and replaces non-alphanumeric characters with
// underscores, collapsing runs.
func sanitizeName(s string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, ch := range strings.ToLower(s) {
		switch {
		case (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9'):
			b.WriteRune(ch)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteRune('_')
			}
			lastUnderscore = true
		}
	}
	return strings.Trim(b.String(), "_")
}
