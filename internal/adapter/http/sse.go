package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/framer/internal/domain"
	"github.com/bnema/framer/internal/infrastructure/logger"
	"github.com/bnema/framer/internal/service"
	"github.com/go-chi/chi/v5"
)

const keepAliveInterval = 15 * time.Second

type SSEHandler struct {
	eventBus  *service.EventBus
	jobs      JobService
	keepAlive time.Duration
}

func NewSSEHandler(eventBus *service.EventBus, jobs JobService) *SSEHandler {
	return &SSEHandler{
		eventBus:  eventBus,
		jobs:      jobs,
		keepAlive: keepAliveInterval,
	}
}

// sseWrite writes one event, splitting multi-line data.
func sseWrite(w http.ResponseWriter, eventName string, data string) {
	_, _ = fmt.Fprintf(w, "event: %s\n", eventName)
	for _, line := range strings.Split(data, "\n") {
		_, _ = fmt.Fprintf(w, "data: %s\n", line)
	}
	_, _ = fmt.Fprint(w, "\n")
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func sendKeepAlive(w http.ResponseWriter) {
	_, _ = fmt.Fprint(w, ": keep-alive\n\n")
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func sendJob(w http.ResponseWriter, job *domain.Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	sseWrite(w, "job", string(data))
	return nil
}

// Events streams the job record each time it changes. The stream ends after
// the job reaches a terminal state. The bus drops events for slow readers
// and never sees writes from other instances, so every keep-alive tick also
// re-reads the record and sends it when it moved.
func (h *SSEHandler) Events() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		// Subscribe before reading so no change between the two is missed.
		ch := h.eventBus.Subscribe(id)
		defer h.eventBus.Unsubscribe(id, ch)

		job, err := h.jobs.Get(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")
		w.WriteHeader(http.StatusOK)

		last := *job
		if err := sendJob(w, job); err != nil {
			logger.Error.Printf("failed to encode job %s: %v", id, err)
			return
		}
		if job.Status.IsTerminal() {
			return
		}

		ctx := r.Context()
		keepAlive := time.NewTicker(h.keepAlive)
		defer keepAlive.Stop()
		for {
			var next *domain.Job
			select {
			case <-ctx.Done():
				return
			case <-keepAlive.C:
				current, err := h.jobs.Get(ctx, id)
				if err != nil || sameState(current, &last) {
					sendKeepAlive(w)
					continue
				}
				next = current
			case event, ok := <-ch:
				if !ok {
					return
				}
				next = &event.Job
			}

			last = *next
			if err := sendJob(w, next); err != nil {
				logger.Error.Printf("failed to encode job %s: %v", id, err)
				return
			}
			if next.Status.IsTerminal() {
				return
			}
		}
	}
}

func sameState(a, b *domain.Job) bool {
	return a.Status == b.Status && a.Progress == b.Progress
}
