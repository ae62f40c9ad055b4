package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/qepting91/persona-lens/internal/domain"
)

// Writer persists finished profiles under a single output directory.
// Filenames derive only from the username; reruns overwrite.
type Writer struct {
	OutputDir string
	Now       func() time.Time
}

func NewWriter(outputDir string) *Writer {
	return &Writer{OutputDir: outputDir, Now: time.Now}
}

// SaveProfile writes the plain-text report: the generated persona plus a
// trailing generation-timestamp line. Returns the file path.
func (w *Writer) SaveProfile(username, persona string) (string, error) {
	if err := w.ensureDir(); err != nil {
		return "", err
	}

	path := w.ProfilePath(username)
	content := fmt.Sprintf("%s\n\nProfile Generated: %s", persona, w.Now().Format("2006-01-02 15:04:05"))
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// SaveExport writes the structured JSON export.
func (w *Writer) SaveExport(export domain.Export) (string, error) {
	if err := w.ensureDir(); err != nil {
		return "", err
	}

	path := w.ExportPath(export.Username)
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

func (w *Writer) ProfilePath(username string) string {
	return filepath.Join(w.OutputDir, username+"_digital_profile.txt")
}

func (w *Writer) ExportPath(username string) string {
	return filepath.Join(w.OutputDir, username+"_profile_data.json")
}

func (w *Writer) ensureDir() error {
	return os.MkdirAll(w.OutputDir, 0755)
}
