package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
	JobStatusCancelled  JobStatus = "cancelled"
)

// IsTerminal reports whether no further transition is allowed from s.
func (s JobStatus) IsTerminal() bool {
	switch s {
	case JobStatusCompleted, JobStatusFailed, JobStatusCancelled:
		return true
	}
	return false
}

const (
	ProgressLocated   = 10
	ProgressExtracted = 70
	ProgressPackaged  = 100
)

type Job struct {
	ID          string     `json:"id"`
	InputRef    string     `json:"input_ref"`
	Status      JobStatus  `json:"status"`
	Progress    int        `json:"progress"`
	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	OutputRef   string     `json:"output_ref,omitempty"`
	FrameCount  int        `json:"frame_count,omitempty"`
	Error       string     `json:"error,omitempty"`
}

func NewJob(inputRef string) *Job {
	return &Job{
		ID:        uuid.NewString(),
		InputRef:  inputRef,
		Status:    JobStatusPending,
		CreatedAt: time.Now().UTC(),
	}
}

// ArchiveName is the deterministic output artifact name for a job.
func ArchiveName(jobID string) string {
	return fmt.Sprintf("frames_%s.zip", jobID)
}

func (j *Job) transitionError(to JobStatus) error {
	return fmt.Errorf("%w: %s -> %s (job %s)", ErrInvalidTransition, j.Status, to, j.ID)
}

// Start moves a pending job into processing and resets its progress.
func (j *Job) Start(now time.Time) error {
	if j.Status != JobStatusPending {
		return j.transitionError(JobStatusProcessing)
	}
	j.Status = JobStatusProcessing
	j.Progress = 0
	j.StartedAt = &now
	return nil
}

// ReportProgress raises progress to p. Lower values are ignored, values
// above 100 are clamped.
func (j *Job) ReportProgress(p int) error {
	if j.Status != JobStatusProcessing {
		return fmt.Errorf("%w: progress on %s job %s", ErrInvalidTransition, j.Status, j.ID)
	}
	if p > 100 {
		p = 100
	}
	if p > j.Progress {
		j.Progress = p
	}
	return nil
}

func (j *Job) Complete(outputRef string, frameCount int, now time.Time) error {
	if j.Status != JobStatusProcessing {
		return j.transitionError(JobStatusCompleted)
	}
	if outputRef == "" || frameCount <= 0 {
		return fmt.Errorf("complete job %s: output %q with %d frames", j.ID, outputRef, frameCount)
	}
	j.Status = JobStatusCompleted
	j.Progress = 100
	j.OutputRef = outputRef
	j.FrameCount = frameCount
	j.Error = ""
	j.CompletedAt = &now
	return nil
}

// Fail records cause and leaves progress at its last reported value.
func (j *Job) Fail(cause error, now time.Time) error {
	if j.Status != JobStatusProcessing {
		return j.transitionError(JobStatusFailed)
	}
	msg := "unknown error"
	if cause != nil && cause.Error() != "" {
		msg = cause.Error()
	}
	j.Status = JobStatusFailed
	j.Error = msg
	j.OutputRef = ""
	j.FrameCount = 0
	j.CompletedAt = &now
	return nil
}

// Cancel is allowed from pending or processing only.
func (j *Job) Cancel(now time.Time) error {
	if j.Status != JobStatusPending && j.Status != JobStatusProcessing {
		return fmt.Errorf("%w: job %s is %s", ErrNotCancellable, j.ID, j.Status)
	}
	j.Status = JobStatusCancelled
	j.CompletedAt = &now
	return nil
}
