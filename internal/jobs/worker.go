package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/TeamSoftLion/crm/pkg/logger"
)

// Job represents a background task
type Job func(ctx context.Context) error

// Worker runs queued jobs on a fixed pool, fire-and-forget jobs on bounded goroutines,
// and named jobs on a schedule.
type Worker struct {
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
	queue         chan Job
	asyncSem      chan struct{}
	maxConcurrent int

	mu       sync.RWMutex
	closed   bool
	stats    WorkerStats
	lastRuns map[string]JobRun
}

// WorkerStats holds statistics about the worker.
// CompletedJobs counts every finished job; FailedJobs is the failing subset.
type WorkerStats struct {
	ActiveJobs    int               `json:"active_jobs"`
	CompletedJobs int64             `json:"completed_jobs"`
	FailedJobs    int64             `json:"failed_jobs"`
	QueueLength   int               `json:"queue_length"`
	MaxConcurrent int               `json:"max_concurrent"`
	Scheduled     map[string]JobRun `json:"scheduled"`
}

// JobRun describes the last run of a scheduled job
type JobRun struct {
	Interval string    `json:"interval"`
	LastRun  time.Time `json:"last_run,omitempty"`
	Duration string    `json:"duration,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// NewWorker creates a worker with N concurrent processors
func NewWorker(numWorkers int) *Worker {
	if numWorkers < 1 {
		numWorkers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	// Allow 2x workers for async jobs
	asyncLimit := numWorkers * 2
	if asyncLimit < 10 {
		asyncLimit = 10
	}

	w := &Worker{
		ctx:           ctx,
		cancel:        cancel,
		queue:         make(chan Job, 100),
		asyncSem:      make(chan struct{}, asyncLimit),
		maxConcurrent: asyncLimit,
		lastRuns:      make(map[string]JobRun),
	}

	for i := 0; i < numWorkers; i++ {
		w.wg.Add(1)
		go w.process(i)
	}

	return w
}

// Enqueue adds a job to the pool queue. A full queue runs the job inline.
// Jobs enqueued after Shutdown are dropped.
func (w *Worker) Enqueue(job Job) {
	w.mu.RLock()
	if w.closed {
		w.mu.RUnlock()
		logger.Warn("[Worker] Enqueue after shutdown, job dropped")
		return
	}
	queued := true
	select {
	case w.queue <- job:
	default:
		queued = false
	}
	w.mu.RUnlock()

	if !queued {
		logger.Warn("[Worker] Queue full, running job synchronously")
		_ = w.run("inline", job)
	}
}

// EnqueueAsync runs a job in a new goroutine (fire-and-forget), bounded by semaphore
func (w *Worker) EnqueueAsync(job Job) {
	w.mu.RLock()
	if w.closed {
		w.mu.RUnlock()
		logger.Warn("[Worker] EnqueueAsync after shutdown, job dropped")
		return
	}
	w.wg.Add(1)
	w.mu.RUnlock()

	go func() {
		defer w.wg.Done()
		w.asyncSem <- struct{}{}
		defer func() { <-w.asyncSem }()

		_ = w.run("async", job)
	}()
}

// process handles jobs from the queue
func (w *Worker) process(workerID int) {
	defer w.wg.Done()
	for job := range w.queue {
		_ = w.run(fmt.Sprintf("worker %d", workerID), job)
	}
}

// ScheduleEvery runs a named job at fixed intervals. The first run happens after the interval.
func (w *Worker) ScheduleEvery(name string, interval time.Duration, job Job) {
	w.mu.Lock()
	w.lastRuns[name] = JobRun{Interval: interval.String()}
	w.mu.Unlock()

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.ctx.Done():
				return
			case <-ticker.C:
				w.runScheduled(name, job)
			}
		}
	}()
}

func (w *Worker) runScheduled(name string, job Job) {
	start := time.Now()
	err := w.run(name, job)

	w.mu.Lock()
	defer w.mu.Unlock()
	last := w.lastRuns[name]
	last.LastRun = start
	last.Duration = time.Since(start).String()
	last.Error = ""
	if err != nil {
		last.Error = err.Error()
	}
	w.lastRuns[name] = last
}

// run executes one job with panic recovery and bookkeeping
func (w *Worker) run(label string, job Job) (err error) {
	w.trackJobStart()
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		if err != nil {
			logger.Error("[Worker] Job failed", "job", label, "error", err)
			w.trackJobEnd(true)
			return
		}
		logger.Debug("[Worker] Job completed", "job", label, "elapsed", time.Since(start))
		w.trackJobEnd(false)
	}()

	return job(w.ctx)
}

// Shutdown cancels running jobs, drains the queue and waits for every goroutine
func (w *Worker) Shutdown() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	w.mu.Unlock()

	w.cancel()
	close(w.queue)
	w.wg.Wait()
}

// Context returns the worker's context for checking cancellation
func (w *Worker) Context() context.Context {
	return w.ctx
}

// GetStats returns the current worker statistics
func (w *Worker) GetStats() WorkerStats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	stats := w.stats
	stats.QueueLength = len(w.queue)
	stats.MaxConcurrent = w.maxConcurrent
	stats.Scheduled = make(map[string]JobRun, len(w.lastRuns))
	for name, run := range w.lastRuns {
		stats.Scheduled[name] = run
	}
	return stats
}

func (w *Worker) trackJobStart() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stats.ActiveJobs++
}

func (w *Worker) trackJobEnd(failed bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stats.ActiveJobs--
	w.stats.CompletedJobs++
	if failed {
		w.stats.FailedJobs++
	}
}
