package http

import (
	"context"
	"net/http"
	"time"
)

const healthTimeout = 3 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

type ToolChecker interface {
	Available() bool
}

type LoadReporter interface {
	InFlight() int
}

type healthReport struct {
	Status string `json:"status"`
	Store  string `json:"store"`
	FFmpeg string `json:"ffmpeg"`
	Active int    `json:"active_jobs"`
}

// Health reports 503 when the store is unreachable or ffmpeg is missing.
func Health(store Pinger, tool ToolChecker, load LoadReporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		report := healthReport{Status: "ok", Store: "ok", FFmpeg: "ok"}
		if load != nil {
			report.Active = load.InFlight()
		}
		if err := store.Ping(ctx); err != nil {
			report.Status = "degraded"
			report.Store = "unavailable"
		}
		if !tool.Available() {
			report.Status = "degraded"
			report.FFmpeg = "missing"
		}

		if report.Status != "ok" {
			writeJSON(w, http.StatusServiceUnavailable, envelope{Success: false, Data: report, Error: "service degraded"})
			return
		}
		writeData(w, http.StatusOK, "", report)
	}
}
