package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateStageName validates the stage name from the export settings.
// The stage name prefixes generated shape names, so it must be a
// non-empty string without whitespace or control characters.
func ValidateStageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidSchema, "_meta.stageName cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidSchema, "_meta.stageName too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidSchema, "_meta.stageName contains invalid characters: %q", name)
		}
	}

	return nil
}

// ValidateFramerate validates the project framerate handed to the stage.
func ValidateFramerate(fps float64) error {
	if math.IsNaN(fps) || math.IsInf(fps, 0) {
		return New(ErrCodeInvalidSchema, "_meta.framerate must be a finite number")
	}
	if fps <= 0 {
		return New(ErrCodeInvalidSchema, "_meta.framerate must be positive, got %g", fps)
	}
	return nil
}

// ValidatePath validates an output path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	for _, part := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	return nil
}
