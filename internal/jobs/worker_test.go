package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWorker_EnqueueRunsJobs(t *testing.T) {
	w := NewWorker(2)
	var ran atomic.Int32

	for i := 0; i < 5; i++ {
		w.Enqueue(func(ctx context.Context) error {
			ran.Add(1)
			return nil
		})
	}
	w.EnqueueAsync(func(ctx context.Context) error {
		ran.Add(1)
		return errors.New("boom")
	})

	assert.Eventually(t, func() bool { return ran.Load() == 6 }, time.Second, 5*time.Millisecond)
	w.Shutdown()

	stats := w.GetStats()
	assert.Equal(t, int64(6), stats.CompletedJobs)
	assert.Equal(t, int64(1), stats.FailedJobs)
	assert.Zero(t, stats.ActiveJobs)
}

func TestWorker_RecoversPanics(t *testing.T) {
	w := NewWorker(1)
	w.EnqueueAsync(func(ctx context.Context) error {
		panic("bad job")
	})
	w.Shutdown()

	assert.Equal(t, int64(1), w.GetStats().FailedJobs)
}

func TestWorker_ScheduleEveryRecordsLastRun(t *testing.T) {
	w := NewWorker(1)
	var ran atomic.Int32
	w.ScheduleEvery("reconcile", 10*time.Millisecond, func(ctx context.Context) error {
		ran.Add(1)
		return nil
	})

	assert.Eventually(t, func() bool { return ran.Load() >= 1 }, time.Second, 5*time.Millisecond)
	w.Shutdown()

	run, ok := w.GetStats().Scheduled["reconcile"]
	assert.True(t, ok)
	assert.Equal(t, "10ms", run.Interval)
	assert.False(t, run.LastRun.IsZero())
	assert.Empty(t, run.Error)
}

func TestWorker_DropsJobsAfterShutdown(t *testing.T) {
	w := NewWorker(1)
	w.Shutdown()
	w.Shutdown()

	var ran atomic.Int32
	w.Enqueue(func(ctx context.Context) error { ran.Add(1); return nil })
	w.EnqueueAsync(func(ctx context.Context) error { ran.Add(1); return nil })

	assert.Zero(t, ran.Load())
	assert.ErrorIs(t, w.Context().Err(), context.Canceled)
}
