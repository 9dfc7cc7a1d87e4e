package files_manager

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// SourceExt is the container extension this program converts from.
const SourceExt = ".heic"

// FindHeicFiles walks root recursively and returns every file whose name
// ends with .heic, case-insensitively, in traversal order. Symlinked
// directories are not followed.
func FindHeicFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(strings.ToLower(d.Name()), SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	return files, nil
}

// CheckInputFile verifies that path names an existing regular file.
func CheckInputFile(path string) error {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return fmt.Errorf("input file '%s' does not exist", path)
	}
	return nil
}

// CheckInputDir verifies that path names an existing directory.
func CheckInputDir(path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("input directory '%s' does not exist", path)
	}
	return nil
}
