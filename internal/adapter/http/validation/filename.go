// Package validation checks file names that end up in paths or headers.
package validation

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const maxNameBytes = 255

var ErrUnsafeName = errors.New("unsafe file name")

// replaced never appear in a sanitized name.
var replaced = map[rune]bool{
	'"':  true,
	'\\': true,
	'/':  true,
	':':  true,
}

// SanitizeFilename replaces control characters, quotes, colons and path
// separators with '_'. The result is at most 255 bytes and keeps its
// extension. Empty input becomes "file".
func SanitizeFilename(name string) string {
	var sb strings.Builder
	sb.Grow(len(name))
	for _, r := range name {
		if r < 32 || r == 127 || replaced[r] {
			sb.WriteRune('_')
			continue
		}
		sb.WriteRune(r)
	}

	out := strings.TrimSpace(sb.String())
	if strings.Trim(out, "_") == "" {
		return "file"
	}
	if len(out) > maxNameBytes {
		out = truncate(out)
	}
	return out
}

func truncate(name string) string {
	ext := filepath.Ext(name)
	if ext == "" || len(ext) >= maxNameBytes {
		return cutBytes(name, maxNameBytes)
	}
	return cutBytes(strings.TrimSuffix(name, ext), maxNameBytes-len(ext)) + ext
}

// cutBytes never splits a multi-byte rune.
func cutBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// CheckArchiveName accepts a bare archive file name such as
// "frames_<id>.zip" and rejects anything that could leave the output
// directory.
func CheckArchiveName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%w: %q", ErrUnsafeName, name)
	case strings.Contains(name, ".."), filepath.Base(name) != name:
		return fmt.Errorf("%w: %q", ErrUnsafeName, name)
	case SanitizeFilename(name) != name:
		return fmt.Errorf("%w: %q", ErrUnsafeName, name)
	case !strings.EqualFold(filepath.Ext(name), ".zip"):
		return fmt.Errorf("%w: not an archive: %q", ErrUnsafeName, name)
	}
	return nil
}

// ContentDisposition returns an attachment header value for name.
func ContentDisposition(name string) string {
	return fmt.Sprintf("attachment; filename=%q", SanitizeFilename(name))
}
