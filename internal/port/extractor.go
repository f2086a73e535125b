package port

import (
	"context"

	"github.com/bnema/framer/internal/domain"
)

type InputLocator interface {
	Locate(ctx context.Context, inputRef string) (path string, err error)
}

type FrameExtractor interface {
	ExtractFrames(ctx context.Context, inputPath, outputDir string) error
	Available() bool
}

type Archiver interface {
	Archive(ctx context.Context, files []string, destPath string) error
}

type Notifier interface {
	NotifyCompleted(ctx context.Context, job domain.Job) error
}
