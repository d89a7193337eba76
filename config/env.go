package config

import (
	"os"
	"path/filepath"
	"strings"
)

// GetDefaultFolder returns the folder scanned when the caller names none
func GetDefaultFolder() string {
	if folder := os.Getenv("BULKIMAGE_FOLDER"); folder != "" {
		return folder
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if can't get home dir
		return "."
	}

	return filepath.Join(homeDir, "Pictures")
}

// GetExtraExtensions returns the image extensions listed in BULKIMAGE_EXTENSIONS
// (comma separated, e.g. ".webp,tif"), lower-cased with a leading dot
func GetExtraExtensions() []string {
	var exts []string
	for _, ext := range strings.Split(os.Getenv("BULKIMAGE_EXTENSIONS"), ",") {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	return exts
}
