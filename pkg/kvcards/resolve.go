package kvcards

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/kvcards-go/pkg/kvcards/models"
)

// spreadsheetExts lists the container extensions excelize can open.
var spreadsheetExts = []string{".xlsx", ".xlsm", ".xltx", ".xltm", ".xlam"}

// IsSpreadsheet reports whether path has a supported workbook extension.
func IsSpreadsheet(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range spreadsheetExts {
		if ext == e {
			return true
		}
	}
	return false
}

// Resolve classifies a raw path against the filesystem.
func Resolve(raw string) models.PathResolution {
	if raw == "" {
		return models.NotFound()
	}
	if _, err := os.Stat(raw); err == nil {
		return models.Exists(raw)
	}
	parent := filepath.Dir(filepath.Clean(raw))
	if info, err := os.Stat(parent); err == nil && info.IsDir() {
		return models.ParentExists(raw)
	}
	return models.NotFound()
}

// Candidates lists autocomplete paths for a resolution.
// Exists on a directory yields its entries; ParentExists yields the parent's
// entries whose name starts with the typed name. Entries are sorted by name.
func Candidates(res models.PathResolution) ([]string, error) {
	switch res.Kind {
	case models.PathExists:
		info, err := os.Stat(res.Path)
		if err != nil {
			return nil, &FilesystemError{Op: "stat", Path: res.Path, Err: err}
		}
		if !info.IsDir() {
			return nil, nil
		}
		return listDir(res.Path, "")
	case models.PathParentExists:
		clean := filepath.Clean(res.Path)
		return listDir(filepath.Dir(clean), filepath.Base(clean))
	case models.PathNotFound:
		return nil, nil
	default:
		return nil, nil
	}
}

// Autocomplete is Candidates with filesystem failures degraded to no candidates.
func Autocomplete(res models.PathResolution) []string {
	paths, err := Candidates(res)
	if err != nil {
		return nil
	}
	return paths
}

func listDir(dir, prefix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &FilesystemError{Op: "readdir", Path: dir, Err: err}
	}

	var paths []string
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), prefix) {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	return paths, nil
}
