package errors

import (
	"strings"
	"unicode"
)

// ValidateElementID validates a page element id such as the star container id.
//
// HTML ids must be non-empty and must not contain whitespace. Control
// characters are rejected as well so ids can be echoed into logs safely.
func ValidateElementID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "element id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidID, "element id too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidID, "element id cannot contain whitespace")
		}
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidID, "element id contains invalid control characters")
		}
	}

	return nil
}

// ValidateOutputPath validates a local output path for rendered artifacts.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateOutputPath(path string) error {
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

	if strings.HasSuffix(path, "/") {
		return New(ErrCodeInvalidPath, "path must name a file, not a directory")
	}

	return nil
}
