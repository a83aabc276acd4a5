package handler

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/protmerge/protsim/pkg/similarity"
)

// AnalysisJobStatus represents the lifecycle of a similarity analysis run.
type AnalysisJobStatus string

const (
	AnalysisJobQueued    AnalysisJobStatus = "queued"
	AnalysisJobRunning   AnalysisJobStatus = "running"
	AnalysisJobCompleted AnalysisJobStatus = "completed"
	AnalysisJobFailed    AnalysisJobStatus = "failed"
)

// AnalysisJob tracks one ranking run while the all-pairs pass executes.
type AnalysisJob struct {
	ID        string
	CentralID string
	Status    AnalysisJobStatus
	Progress  float64 // fraction of protein pairs scored, in [0,1]
	Result    []similarity.ResultRow
	Error     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AnalysisJobManager stores job states indexed by job ID.
type AnalysisJobManager struct {
	mu   sync.RWMutex
	jobs map[string]*AnalysisJob
}

// NewAnalysisJobManager constructs a job manager with no jobs.
func NewAnalysisJobManager() *AnalysisJobManager {
	return &AnalysisJobManager{
		jobs: make(map[string]*AnalysisJob),
	}
}

// NewJob registers a queued run for the given central protein.
func (m *AnalysisJobManager) NewJob(centralID string) *AnalysisJob {
	job := &AnalysisJob{
		ID:        uuid.New().String(),
		CentralID: centralID,
		Status:    AnalysisJobQueued,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	m.mu.Lock()
	m.jobs[job.ID] = job
	m.mu.Unlock()
	return job
}

// SetRunning marks the job as running.
func (m *AnalysisJobManager) SetRunning(jobID string) {
	m.updateJob(jobID, func(job *AnalysisJob) {
		job.Status = AnalysisJobRunning
	})
}

// SetProgress records the fraction of pairs scored so far. Progress never
// moves backwards.
func (m *AnalysisJobManager) SetProgress(jobID string, progress float64) {
	m.updateJob(jobID, func(job *AnalysisJob) {
		if progress > job.Progress {
			job.Progress = progress
		}
	})
}

// CompleteJob stores the ranked rows and marks the job complete.
func (m *AnalysisJobManager) CompleteJob(jobID string, result []similarity.ResultRow) {
	m.updateJob(jobID, func(job *AnalysisJob) {
		job.Status = AnalysisJobCompleted
		job.Progress = 1.0
		job.Result = result
	})
}

// FailJob records a failure and attaches a user-facing error message.
func (m *AnalysisJobManager) FailJob(jobID string, err error) {
	m.updateJob(jobID, func(job *AnalysisJob) {
		job.Status = AnalysisJobFailed
		job.Error = err.Error()
	})
}

// GetJob fetches a snapshot of a job by ID.
func (m *AnalysisJobManager) GetJob(jobID string) (AnalysisJob, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	job, ok := m.jobs[jobID]
	if !ok {
		return AnalysisJob{}, false
	}
	return *job, true
}

func (m *AnalysisJobManager) updateJob(jobID string, update func(job *AnalysisJob)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[jobID]
	if !ok {
		return
	}

	update(job)
	job.UpdatedAt = time.Now()
}
