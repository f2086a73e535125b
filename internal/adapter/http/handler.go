package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/framer/internal/adapter/http/validation"
	"github.com/bnema/framer/internal/domain"
	"github.com/go-chi/chi/v5"
)

const maxRequestBody = 64 << 10

// JobService is the part of the job service the API calls.
type JobService interface {
	Submit(ctx context.Context, inputRef string) (*domain.Job, error)
	Get(ctx context.Context, id string) (*domain.Job, error)
	List(ctx context.Context) ([]*domain.Job, error)
	Cancel(ctx context.Context, id string) (*domain.Job, error)
}

type Handlers struct {
	jobs      JobService
	outputDir string
}

func NewHandlers(jobs JobService, outputDir string) *Handlers {
	return &Handlers{jobs: jobs, outputDir: outputDir}
}

type processRequest struct {
	FileID string `json:"file_id"`
}

type jobList struct {
	Jobs  []*domain.Job `json:"jobs"`
	Total int           `json:"total"`
}

func (h *Handlers) Process() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req processRequest
		dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(req.FileID) == "" {
			writeError(w, http.StatusBadRequest, "file_id is required")
			return
		}

		job, err := h.jobs.Submit(r.Context(), req.FileID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeData(w, http.StatusOK, "Processing queued", job)
	}
}

func (h *Handlers) Status() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		job, err := h.jobs.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeData(w, http.StatusOK, "", job)
	}
}

func (h *Handlers) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobs, err := h.jobs.List(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeData(w, http.StatusOK, "", jobList{Jobs: jobs, Total: len(jobs)})
	}
}

func (h *Handlers) Cancel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		job, err := h.jobs.Cancel(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeData(w, http.StatusOK, "Job cancelled", job)
	}
}

// Download serves a finished archive from the output directory.
func (h *Handlers) Download() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "filename")
		if err := validation.CheckArchiveName(name); err != nil {
			writeError(w, http.StatusBadRequest, "invalid file name")
			return
		}

		f, err := os.Open(filepath.Join(h.outputDir, name))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				writeError(w, http.StatusNotFound, "file not found")
				return
			}
			writeServiceError(w, err)
			return
		}
		defer func() { _ = f.Close() }()

		info, err := f.Stat()
		if err != nil || !info.Mode().IsRegular() {
			writeError(w, http.StatusNotFound, "file not found")
			return
		}

		w.Header().Set("Content-Type", "application/zip")
		w.Header().Set("Content-Disposition", validation.ContentDisposition(name))
		http.ServeContent(w, r, name, info.ModTime(), f)
	}
}
