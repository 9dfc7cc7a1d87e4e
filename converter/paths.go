package converter

import (
	"path/filepath"
	"strings"
)

// ResolveOutputPath derives the converted file's path. The file name is
// the source base name with every dot replaced by an underscore plus the
// lowercased format extension, so photo.HEIC becomes photo_HEIC.jpeg.
// An empty outputDir means "next to the source"; a non-empty outputDir
// is always treated as a directory.
func ResolveOutputPath(inputPath, outputDir, format string) string {
	name := strings.ReplaceAll(filepath.Base(inputPath), ".", "_") + "." + strings.ToLower(format)
	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), name)
	}
	return filepath.Join(outputDir, name)
}
