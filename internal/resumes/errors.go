package resumes

import "errors"

var (
	ErrNotFound     = errors.New("resume not found")
	ErrForbidden    = errors.New("resume belongs to another user")
	ErrInvalidInput = errors.New("invalid input")
	// ErrFileMissing means the retained upload backing a rescan is gone.
	// This is a hard failure; there is no fallback to re-upload.
	ErrFileMissing = errors.New("retained resume file is missing")
)
