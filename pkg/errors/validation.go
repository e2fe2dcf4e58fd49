package errors

import (
	"strings"
	"unicode"
)

// maxFileNameLength is the longest file name component most filesystems accept.
const maxFileNameLength = 255

// ValidateFileName validates a string that becomes a single file name
// component, such as a plot title used as "<title>.png".
//
// Validation rules:
//   - Name cannot be empty or only whitespace
//   - No control characters or null bytes
//   - No path separators or characters rejected by common filesystems
//   - No "." or ".." names
//   - Maximum length of 255 bytes
func ValidateFileName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidPath, "file name cannot be empty")
	}

	if len(name) > maxFileNameLength {
		return New(ErrCodeInvalidPath, "file name too long (max %d bytes)", maxFileNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "file name contains invalid control characters")
		}
	}

	// Characters rejected by Windows or that would create a path on Unix.
	if i := strings.IndexAny(name, `/\:*?"<>|`); i >= 0 {
		return New(ErrCodeInvalidPath, "file name contains invalid character: %q", name[i])
	}

	if name == "." || name == ".." {
		return New(ErrCodeInvalidPath, "file name cannot be %q", name)
	}

	return nil
}
