package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bnema/framer/internal/domain"
	"github.com/bnema/framer/internal/port"
)

// ProgressFunc persists a progress value. A non-nil error stops processing.
type ProgressFunc func(ctx context.Context, progress int) error

type Result struct {
	OutputRef  string
	FrameCount int
}

type Processor struct {
	locator   port.InputLocator
	extractor port.FrameExtractor
	archiver  port.Archiver
	tempDir   string
	outputDir string
	timeout   time.Duration
}

func NewProcessor(
	locator port.InputLocator,
	extractor port.FrameExtractor,
	archiver port.Archiver,
	tempDir string,
	outputDir string,
	timeout time.Duration,
) *Processor {
	return &Processor{
		locator:   locator,
		extractor: extractor,
		archiver:  archiver,
		tempDir:   tempDir,
		outputDir: outputDir,
		timeout:   timeout,
	}
}

// Process turns the job's input into frames_<id>.zip in the output
// directory. The job-scoped work directory is removed on every path.
func (p *Processor) Process(ctx context.Context, job *domain.Job, report ProgressFunc) (Result, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	inputPath, err := p.locator.Locate(ctx, job.InputRef)
	if err != nil {
		return Result{}, err
	}
	if err := report(ctx, domain.ProgressLocated); err != nil {
		return Result{}, err
	}

	workDir := filepath.Join(p.tempDir, job.ID)
	if err := os.MkdirAll(workDir, 0755); err != nil {
		return Result{}, fmt.Errorf("%w: create work dir: %v", domain.ErrExtractionFailed, err)
	}
	defer os.RemoveAll(workDir)

	if err := p.extractor.ExtractFrames(ctx, inputPath, workDir); err != nil {
		return Result{}, timeoutOr(ctx, err)
	}

	frames, err := filepath.Glob(filepath.Join(workDir, "*.png"))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	if len(frames) == 0 {
		return Result{}, domain.ErrNoFramesExtracted
	}
	if err := report(ctx, domain.ProgressExtracted); err != nil {
		return Result{}, err
	}

	outputRef := domain.ArchiveName(job.ID)
	if err := os.MkdirAll(p.outputDir, 0755); err != nil {
		return Result{}, fmt.Errorf("%w: create output dir: %v", domain.ErrPackagingFailed, err)
	}
	archivePath := filepath.Join(p.outputDir, outputRef)
	if err := p.archiver.Archive(ctx, frames, archivePath); err != nil {
		return Result{}, timeoutOr(ctx, err)
	}
	if err := report(ctx, domain.ProgressPackaged); err != nil {
		_ = os.Remove(archivePath)
		return Result{}, err
	}

	return Result{OutputRef: outputRef, FrameCount: len(frames)}, nil
}

func timeoutOr(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, domain.ErrTimeout) {
		return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	}
	return err
}
