package services

import (
	"github.com/TeamSoftLion/crm/internal/jobs"
)

type JobService struct {
	worker *jobs.Worker
}

func NewJobService(worker *jobs.Worker) *JobService {
	return &JobService{
		worker: worker,
	}
}

// GetStatus reports worker counters and the last run of every scheduled job
func (s *JobService) GetStatus() jobs.WorkerStats {
	if s.worker == nil {
		return jobs.WorkerStats{Scheduled: map[string]jobs.JobRun{}}
	}
	return s.worker.GetStats()
}
