package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/framer/internal/domain"
	"github.com/bnema/framer/internal/port"
)

var (
	ErrEmptyPath   = errors.New("path is empty")
	ErrInvalidPath = errors.New("path contains null byte")
)

// FramePattern is the output name pattern handed to ffmpeg.
const FramePattern = "frame_%04d.png"

const (
	stderrTail = 512
	waitDelay  = 2 * time.Second
)

type Extractor struct {
	binary    string
	frameRate int
}

func NewExtractor(binary string, frameRate int) *Extractor {
	if binary == "" {
		binary = "ffmpeg"
	}
	if frameRate <= 0 {
		frameRate = 1
	}
	return &Extractor{binary: binary, frameRate: frameRate}
}

func validatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if strings.ContainsRune(path, 0) {
		return ErrInvalidPath
	}
	return nil
}

// Available reports whether the configured binary can be resolved.
func (e *Extractor) Available() bool {
	_, err := exec.LookPath(e.binary)
	return err == nil
}

// ExtractFrames samples inputPath at the configured rate into numbered PNGs
// under outputDir. The context deadline bounds the whole invocation.
func (e *Extractor) ExtractFrames(ctx context.Context, inputPath, outputDir string) error {
	if err := validatePath(inputPath); err != nil {
		return fmt.Errorf("invalid input path: %w", err)
	}
	if err := validatePath(outputDir); err != nil {
		return fmt.Errorf("invalid output dir: %w", err)
	}

	args := []string{
		"-i", inputPath,
		"-vf", "fps=" + strconv.Itoa(e.frameRate),
		"-y",
		filepath.Join(outputDir, FramePattern),
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.binary, args...)
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	err := cmd.Run()
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: ffmpeg exceeded deadline", domain.ErrTimeout)
	case ctx.Err() != nil:
		return ctx.Err()
	}

	return fmt.Errorf("%w: %v: %s", domain.ErrExtractionFailed, err, tail(stderr.String()))
}

func tail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > stderrTail {
		s = s[len(s)-stderrTail:]
	}
	return s
}

var _ port.FrameExtractor = (*Extractor)(nil)
