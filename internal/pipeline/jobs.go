package pipeline

import (
	"sync"
	"time"
)

// JobStatus represents the state of a compile job.
type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusScanning  JobStatus = "scanning"
	StatusRendering JobStatus = "rendering"
	StatusCompleted JobStatus = "completed"
	StatusPartial   JobStatus = "partial"
	StatusFailed    JobStatus = "failed"
)

// Selection narrows a compile job to one book group; zero value means all.
type Selection struct {
	ClassID string `json:"class,omitempty"`
	Subject string `json:"subject,omitempty"`
}

func (s Selection) All() bool {
	return s.ClassID == "" && s.Subject == ""
}

// Progress tracks compile progress.
type Progress struct {
	TotalGroups   int      `json:"total_groups"`
	GroupsWritten int      `json:"groups_written"`
	TotalChapters int      `json:"total_chapters"`
	Skipped       int      `json:"skipped_inputs"`
	Errors        []string `json:"errors"`
}

// Job tracks the state of a single book compilation.
type Job struct {
	mu sync.Mutex

	ID        string    `json:"job_id"`
	Selection Selection `json:"selection"`
	Format    string    `json:"format"`

	Status JobStatus `json:"status"`
	Phase  string    `json:"phase"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	outputs []string
	errors  []string
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records a recovered per-group error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// AddOutput records one written book file.
func (j *Job) AddOutput(path string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.outputs = append(j.outputs, path)
	j.Progress.GroupsWritten++
	j.UpdatedAt = time.Now()
}

// SetTotals records the scan results.
func (j *Job) SetTotals(groups, chapters, skipped int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.TotalGroups = groups
	j.Progress.TotalChapters = chapters
	j.Progress.Skipped = skipped
	j.UpdatedAt = time.Now()
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID        string    `json:"job_id"`
	Selection Selection `json:"selection"`
	Format    string    `json:"format"`
	Status    JobStatus `json:"status"`
	Phase     string    `json:"phase"`
	Progress  Progress  `json:"progress"`
	Outputs   []string  `json:"outputs"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	outs := append([]string{}, j.outputs...)
	return JobSnapshot{
		ID:        j.ID,
		Selection: j.Selection,
		Format:    j.Format,
		Status:    j.Status,
		Phase:     j.Phase,
		Progress: Progress{
			TotalGroups:   j.Progress.TotalGroups,
			GroupsWritten: j.Progress.GroupsWritten,
			TotalChapters: j.Progress.TotalChapters,
			Skipped:       j.Progress.Skipped,
			Errors:        errs,
		},
		Outputs: outs,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}
