package services

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ValidateFileName checks that name refers to an entry directly inside a folder
func ValidateFileName(name string) error {
	// Check for empty name
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("empty file name not allowed")
	}

	// Check for path traversal attempts
	if strings.Contains(name, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	// Only plain names, no separators
	if strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return fmt.Errorf("nested paths not allowed")
	}

	return nil
}

// ContentType sniffs the MIME type of a file from its content
func ContentType(filePath string) string {
	mtype, err := mimetype.DetectFile(filePath)
	if err != nil {
		return "application/octet-stream"
	}
	return mtype.String()
}
