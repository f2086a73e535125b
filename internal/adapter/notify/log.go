package notify

import (
	"context"

	"github.com/bnema/framer/internal/domain"
	"github.com/bnema/framer/internal/infrastructure/logger"
	"github.com/bnema/framer/internal/port"
)

// LogNotifier is used when no notification service is configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (LogNotifier) NotifyCompleted(_ context.Context, job domain.Job) error {
	logger.Info.Printf("job %s completed: %d frames in %s", job.ID, job.FrameCount, job.OutputRef)
	return nil
}

var _ port.Notifier = LogNotifier{}
