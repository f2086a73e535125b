package uploads

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/framer/internal/domain"
	"github.com/bnema/framer/internal/port"
)

// Locator resolves an input reference against the uploads directory. The
// upload service stores files as <file id><original extension>, so the
// reference matches a file named exactly ref or ref followed by an
// extension.
type Locator struct {
	dir string
}

func NewLocator(dir string) *Locator {
	return &Locator{dir: dir}
}

func (l *Locator) Locate(_ context.Context, inputRef string) (string, error) {
	if err := domain.ValidateInputRef(inputRef); err != nil {
		return "", err
	}

	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return "", fmt.Errorf("%w: read uploads: %v", domain.ErrInputNotFound, err)
	}

	match := ""
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		name := e.Name()
		if name == inputRef {
			return filepath.Join(l.dir, name), nil
		}
		if match == "" && isExtensionOf(name, inputRef) {
			match = name
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %s", domain.ErrInputNotFound, inputRef)
	}
	return filepath.Join(l.dir, match), nil
}

// isExtensionOf reports whether name is ref plus an extension.
func isExtensionOf(name, ref string) bool {
	rest, ok := strings.CutPrefix(name, ref)
	return ok && strings.HasPrefix(rest, ".")
}

var _ port.InputLocator = (*Locator)(nil)
