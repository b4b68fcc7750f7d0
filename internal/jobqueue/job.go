package jobqueue

import "time"

// Job is a unit of deferred, retryable work routed to a handler by Type.
type Job struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Payload     any       `json:"payload"`
	Attempts    int       `json:"attempts"`
	MaxAttempts int       `json:"max_attempts"`
	LastError   string    `json:"last_error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	NextRunAt   time.Time `json:"next_run_at"`
}

type enqueueOptions struct {
	id          string
	maxAttempts int
	delay       time.Duration
}

type EnqueueOption func(*enqueueOptions)

// WithID overrides the generated job id.
func WithID(id string) EnqueueOption {
	return func(o *enqueueOptions) { o.id = id }
}

// WithMaxAttempts overrides the queue-wide default retry budget.
func WithMaxAttempts(n int) EnqueueOption {
	return func(o *enqueueOptions) { o.maxAttempts = n }
}

// WithDelay postpones the first run.
func WithDelay(d time.Duration) EnqueueOption {
	return func(o *enqueueOptions) { o.delay = d }
}
