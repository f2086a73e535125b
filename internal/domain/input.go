package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const maxInputRefLength = 255

// ValidateInputRef rejects references that could escape the uploads
// directory or break log lines. References are file ids, optionally with
// an extension, never paths.
func ValidateInputRef(ref string) error {
	switch {
	case strings.TrimSpace(ref) == "":
		return fmt.Errorf("%w: empty reference", ErrInvalidInput)
	case len(ref) > maxInputRefLength:
		return fmt.Errorf("%w: reference longer than %d bytes", ErrInvalidInput, maxInputRefLength)
	case !utf8.ValidString(ref):
		return fmt.Errorf("%w: reference is not valid UTF-8", ErrInvalidInput)
	case strings.Contains(ref, ".."):
		return fmt.Errorf("%w: %q", ErrInvalidInput, ref)
	}
	for _, r := range ref {
		if r < 32 || r == 127 || strings.ContainsRune(`/\:"`, r) {
			return fmt.Errorf("%w: %q", ErrInvalidInput, ref)
		}
	}
	return nil
}
