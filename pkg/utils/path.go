package utils

import (
	"path/filepath"
	"regexp"
	"strings"
)

var dangerousChars = regexp.MustCompile(`[<>:"|?*\x00-\x1f\x7f]`)

// SanitizeFileName sanitizes a filename to ensure it's safe for storage
func SanitizeFileName(filename string) string {
	// Remove path components
	filename = filepath.Base(filename)

	filename = dangerousChars.ReplaceAllString(filename, "_")
	filename = strings.TrimSpace(filename)

	if filename == "" || filename == "." || filename == ".." {
		filename = "file"
	}

	return filename
}
