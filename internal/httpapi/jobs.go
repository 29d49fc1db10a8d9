package httpapi

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bradfox2/aa-hotel-optimizer/internal/search"
	"github.com/bradfox2/aa-hotel-optimizer/internal/service"
)

// Job lifecycle states.
const (
	StatusRunning = "running"
	StatusDone    = "done"
	StatusFailed  = "failed"
)

// Job is a background search and its observable state. Auth headers
// live only in the in-flight request, never in the job record.
type Job struct {
	ID        uuid.UUID               `json:"id"`
	CreatedAt time.Time               `json:"created_at"`
	Status    string                  `json:"status"`
	Locations []string                `json:"locations"`
	Strategy  string                  `json:"strategy"`
	Progress  *service.ProgressUpdate `json:"progress,omitempty"`
	Result    *search.Result          `json:"result,omitempty"`
	Error     string                  `json:"error,omitempty"`
}

// jobStore is an in-memory job registry. Jobs are ephemeral: they die
// with the process, matching the tool's no-persistence model.
type jobStore struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]*Job
}

func newJobStore() *jobStore {
	return &jobStore{jobs: make(map[uuid.UUID]*Job)}
}

func (s *jobStore) create(locations []string, strategy string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	job := &Job{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		Status:    StatusRunning,
		Locations: locations,
		Strategy:  strategy,
	}
	s.jobs[job.ID] = job
	return job
}

// get returns a copy so callers never see a job mid-update.
func (s *jobStore) get(id uuid.UUID) (Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return Job{}, false
	}
	return *job, true
}

// list returns job copies, newest first.
func (s *jobStore) list() []Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		out = append(out, *job)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (s *jobStore) setProgress(id uuid.UUID, update service.ProgressUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if job, ok := s.jobs[id]; ok {
		job.Progress = &update
	}
}

func (s *jobStore) finish(id uuid.UUID, result search.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if job, ok := s.jobs[id]; ok {
		job.Status = StatusDone
		job.Result = &result
	}
}

func (s *jobStore) fail(id uuid.UUID, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if job, ok := s.jobs[id]; ok {
		job.Status = StatusFailed
		job.Error = err.Error()
	}
}
