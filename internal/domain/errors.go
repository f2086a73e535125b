package domain

import "errors"

var (
	ErrNotFound          = errors.New("job not found")
	ErrInvalidInput      = errors.New("invalid input reference")
	ErrInputNotFound     = errors.New("input file not found")
	ErrExtractionFailed  = errors.New("frame extraction failed")
	ErrNoFramesExtracted = errors.New("no frames extracted from video")
	ErrPackagingFailed   = errors.New("failed to package frames")
	ErrTimeout           = errors.New("processing timed out")
	ErrCancelled         = errors.New("job cancelled")
	ErrStoreUnavailable  = errors.New("job store unavailable")

	ErrInvalidTransition = errors.New("invalid job transition")
	ErrNotCancellable    = errors.New("job cannot be cancelled")
	ErrJobFinished       = errors.New("job already finished")
)
