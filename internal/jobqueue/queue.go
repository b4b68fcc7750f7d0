package jobqueue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"creditline-service/internal/pkg/clock"
	"creditline-service/internal/telemetry"

	"github.com/google/uuid"
)

var (
	ErrHandlerMissing      = errors.New("no handler registered for job type")
	ErrMaxAttemptsExceeded = errors.New("job exceeded max attempts")
)

// Handler executes a job. A nil return completes the job; an error schedules a
// retry until the job's attempt budget is spent.
type Handler func(ctx context.Context, job Job) error

type Config struct {
	TickInterval       time.Duration
	RetryBackoff       time.Duration
	DefaultMaxAttempts int
}

// Queue schedules deferred, retryable work on a cooperative tick loop. Jobs
// within a tick run strictly sequentially and ticks never overlap; a tick that
// fires while one is in flight is skipped, not queued.
type Queue struct {
	cfg       Config
	clock     clock.Clock
	newTicker clock.TickerFactory
	logger    *slog.Logger

	mu       sync.Mutex
	pending  []*Job
	failed   []*Job
	handlers map[string]Handler
	running  bool
	stopCh   chan struct{}

	processing atomic.Bool
}

func New(cfg Config, clk clock.Clock, newTicker clock.TickerFactory, logger *slog.Logger) *Queue {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = 50 * time.Millisecond
	}
	if cfg.DefaultMaxAttempts < 1 {
		cfg.DefaultMaxAttempts = 3
	}
	return &Queue{
		cfg:       cfg,
		clock:     clk,
		newTicker: newTicker,
		logger:    logger,
		handlers:  make(map[string]Handler),
	}
}

// Enqueue never blocks and never rejects; the job becomes runnable at
// now + delay.
func (q *Queue) Enqueue(jobType string, payload any, opts ...EnqueueOption) string {
	o := enqueueOptions{maxAttempts: q.cfg.DefaultMaxAttempts}
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxAttempts < 1 {
		o.maxAttempts = 1
	}
	if o.id == "" {
		o.id = uuid.NewString()
	}

	now := q.clock.Now()
	job := &Job{
		ID:          o.id,
		Type:        jobType,
		Payload:     payload,
		MaxAttempts: o.maxAttempts,
		CreatedAt:   now,
		UpdatedAt:   now,
		NextRunAt:   now.Add(o.delay),
	}

	q.mu.Lock()
	q.pending = append(q.pending, job)
	depth := len(q.pending)
	q.mu.Unlock()

	telemetry.JobsEnqueued.Inc()
	telemetry.JobsPendingGauge.Set(float64(depth))
	return job.ID
}

// RegisterHandler binds a handler to a job type, replacing any prior binding.
func (q *Queue) RegisterHandler(jobType string, handler Handler) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers[jobType] = handler
}

// Start begins the periodic tick loop. Calling Start on a running queue is a
// no-op.
func (q *Queue) Start() {
	q.mu.Lock()
	if q.running {
		q.mu.Unlock()
		return
	}
	q.running = true
	stop := make(chan struct{})
	q.stopCh = stop
	q.mu.Unlock()

	ticker := q.newTicker(q.cfg.TickInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C():
				q.processTick(context.Background())
			}
		}
	}()
}

// Stop halts the tick loop. Pending and failed jobs stay intact so the queue
// can resume later.
func (q *Queue) Stop() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.running {
		return
	}
	q.running = false
	close(q.stopCh)
}

func (q *Queue) IsRunning() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.running
}

// Size reports jobs that have neither succeeded nor been quarantined.
func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// FailedJobs returns a snapshot of the quarantined set.
func (q *Queue) FailedJobs() []Job {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Job, 0, len(q.failed))
	for _, j := range q.failed {
		out = append(out, *j)
	}
	return out
}

// Drain runs ticks until one finds no ready job. Jobs whose NextRunAt is
// still in the future are left waiting.
func (q *Queue) Drain(ctx context.Context) {
	for q.processTick(ctx) {
	}
}

// processTick runs one scheduling step and reports whether any job was
// processed.
func (q *Queue) processTick(ctx context.Context) bool {
	// Re-entrancy guard: a concurrent tick is skipped, never queued.
	if !q.processing.CompareAndSwap(false, true) {
		return false
	}
	defer q.processing.Store(false)

	now := q.clock.Now()

	q.mu.Lock()
	var ready, waiting []*Job
	for _, j := range q.pending {
		if !j.NextRunAt.After(now) {
			ready = append(ready, j)
		} else {
			waiting = append(waiting, j)
		}
	}
	q.pending = waiting
	q.mu.Unlock()

	if len(ready) == 0 {
		return false
	}

	for _, job := range ready {
		q.runJob(ctx, job)
	}

	q.mu.Lock()
	depth := len(q.pending)
	q.mu.Unlock()
	telemetry.JobsPendingGauge.Set(float64(depth))
	return true
}

func (q *Queue) runJob(ctx context.Context, job *Job) {
	q.mu.Lock()
	handler, ok := q.handlers[job.Type]
	q.mu.Unlock()

	if !ok {
		// A missing handler is a configuration error, not a transient
		// failure; the job goes straight to quarantine.
		job.LastError = ErrHandlerMissing.Error()
		job.UpdatedAt = q.clock.Now()
		q.quarantine(job)
		q.logger.Error("job quarantined: no handler registered",
			"job_id", job.ID, "job_type", job.Type)
		return
	}

	err := q.invoke(ctx, handler, job)
	if err == nil {
		telemetry.JobsCompleted.Inc()
		return
	}

	now := q.clock.Now()
	job.Attempts++
	job.UpdatedAt = now
	job.LastError = err.Error()

	if job.Attempts < job.MaxAttempts {
		job.NextRunAt = now.Add(q.cfg.RetryBackoff)
		q.mu.Lock()
		q.pending = append(q.pending, job)
		q.mu.Unlock()
		telemetry.JobsRetried.Inc()
		q.logger.Warn("job failed, retry scheduled",
			"job_id", job.ID, "job_type", job.Type,
			"attempts", job.Attempts, "next_run_at", job.NextRunAt, "error", err)
		return
	}

	q.quarantine(job)
	q.logger.Error("job quarantined: max attempts exceeded",
		"job_id", job.ID, "job_type", job.Type,
		"attempts", job.Attempts, "error", err)
}

// invoke shields the tick loop from handler panics.
func (q *Queue) invoke(ctx context.Context, handler Handler, job *Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return handler(ctx, *job)
}

func (q *Queue) quarantine(job *Job) {
	q.mu.Lock()
	q.failed = append(q.failed, job)
	q.mu.Unlock()
	telemetry.JobsQuarantined.Inc()
}
