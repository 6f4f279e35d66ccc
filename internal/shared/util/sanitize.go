package util

import (
	"errors"
	"strings"
	"unicode"
)

const maxFileNameLen = 128

var errInvalidFileName = errors.New("invalid file name")

// SanitizeFileName makes name safe to use as the last segment of an object
// key: separators and whitespace become '_', control characters are dropped
// and the result is capped at 128 bytes. Traversal patterns are rejected.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errInvalidFileName
	}
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r == '/' || r == '\\' || unicode.IsSpace(r):
			b.WriteRune('_')
		case unicode.IsControl(r):
		default:
			b.WriteRune(r)
		}
	}
	s := b.String()
	if len(s) > maxFileNameLen {
		s = strings.ToValidUTF8(s[len(s)-maxFileNameLen:], "")
	}
	if s == "" {
		return "", errInvalidFileName
	}
	return s, nil
}
