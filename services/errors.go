package services

import "errors"

var (
	// ErrNotFound is returned when a scan target is missing or is not a directory
	ErrNotFound = errors.New("folder not found")

	// ErrAccessDenied is returned when a scan target cannot be listed
	ErrAccessDenied = errors.New("folder access denied")

	// ErrDirectoryCreate is returned when the output subfolder cannot be created
	ErrDirectoryCreate = errors.New("cannot create output folder")

	// ErrSessionNotFound is returned for unknown session IDs
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidSettings is returned when staged edit settings fail validation
	ErrInvalidSettings = errors.New("invalid edit settings")
)
