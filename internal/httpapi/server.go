// Package httpapi exposes the optimizer over HTTP: searches run as
// background jobs created and polled through a small JSON API.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/bradfox2/aa-hotel-optimizer/internal/search"
	"github.com/bradfox2/aa-hotel-optimizer/internal/service"
)

// SearchRunner executes a search request. Tests substitute a stub; the
// default is search.FindBestDeals.
type SearchRunner func(ctx context.Context, req search.Request) (search.Result, error)

// Server hosts the search-job API.
type Server struct {
	jobs   *jobStore
	runner SearchRunner
	logger *slog.Logger
}

// NewServer builds a Server. A nil runner uses the real search
// pipeline; a nil logger uses the default.
func NewServer(logger *slog.Logger, runner SearchRunner) *Server {
	if runner == nil {
		runner = search.FindBestDeals
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		jobs:   newJobStore(),
		runner: runner,
		logger: logger,
	}
}

// Router constructs the HTTP handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.accessLog)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1/searches", func(r chi.Router) {
		r.Post("/", s.createSearch)
		r.Get("/", s.listSearches)
		r.Get("/{id}", s.getSearch)
	})

	return r
}

// accessLog records one slog line per request, including the
// OpenTelemetry trace ID when a span is present.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"latency", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		}
		if sc := trace.SpanContextFromContext(r.Context()); sc.IsValid() {
			attrs = append(attrs, "trace_id", sc.TraceID().String())
		}
		s.logger.Info("http request", attrs...)
	})
}

func (s *Server) createSearch(w http.ResponseWriter, r *http.Request) {
	var req search.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	job := s.jobs.create(req.Locations, string(req.Strategy))
	req.Progress = service.ProgressFunc(func(update service.ProgressUpdate) {
		s.jobs.setProgress(job.ID, update)
	})

	// The job outlives the creating request, so it runs on its own
	// context rather than the request's.
	go func() {
		result, err := s.runner(context.Background(), req)
		if err != nil {
			s.logger.Error("search job failed", "job_id", job.ID, "error", err)
			s.jobs.fail(job.ID, err)
			return
		}
		s.logger.Info("search job done",
			"job_id", job.ID,
			"stays", len(result.Itinerary),
			"achieved", result.AchievedPoints)
		s.jobs.finish(job.ID, result)
	}()

	writeJSON(w, http.StatusAccepted, map[string]string{"id": job.ID.String()})
}

func (s *Server) getSearch(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid job id")
		return
	}

	job, ok := s.jobs.get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) listSearches(w http.ResponseWriter, _ *http.Request) {
	jobs := s.jobs.list()
	// Summaries only: strip the heavyweight fields.
	for i := range jobs {
		jobs[i].Result = nil
		jobs[i].Progress = nil
	}
	writeJSON(w, http.StatusOK, jobs)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
