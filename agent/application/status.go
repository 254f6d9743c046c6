package application

import (
	"sync"
	"time"

	"github.com/socialcraft/content-agent/agent/domain"
)

const defaultErrorBufferSize = 10

// StatusReporter aggregates run counters and recent errors for the status
// endpoint. Per-run counters reset each cycle; cumulative counters never do.
type StatusReporter struct {
	mu          sync.Mutex
	isRunning   bool
	isExecuting bool
	lastRunAt   *time.Time
	nextRunAt   *time.Time
	current     domain.RunCounters
	lastRun     domain.RunCounters
	totalRuns   int64
	totalPosted int64
	totalFailed int64
	errors      []string
	errorCap    int
}

func NewStatusReporter(errorBufferSize int) *StatusReporter {
	if errorBufferSize <= 0 {
		errorBufferSize = defaultErrorBufferSize
	}
	return &StatusReporter{errorCap: errorBufferSize}
}

// SetRunning flips the scheduler-running flag.
func (r *StatusReporter) SetRunning(running bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.isRunning = running
	if !running {
		r.nextRunAt = nil
	}
}

// SetNextRun records when the next cycle is expected to fire.
func (r *StatusReporter) SetNextRun(at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextRunAt = &at
}

// CycleStarted marks the beginning of an execution cycle and resets the
// per-run counters.
func (r *StatusReporter) CycleStarted(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.isExecuting = true
	r.lastRunAt = &now
	r.current = domain.RunCounters{}
}

// CycleFinished closes out the cycle and folds the run into the cumulative
// counters.
func (r *StatusReporter) CycleFinished() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.isExecuting = false
	r.lastRun = r.current
	r.totalRuns++
	r.totalPosted += int64(r.current.Succeeded)
	r.totalFailed += int64(r.current.Failed)
}

func (r *StatusReporter) RecordAttempt() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current.Attempted++
}

func (r *StatusReporter) RecordSuccess() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current.Succeeded++
}

func (r *StatusReporter) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current.Failed++
}

// RecordError appends to the bounded ring of recent error messages; the
// oldest entry is dropped once the buffer is full.
func (r *StatusReporter) RecordError(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, msg)
	if len(r.errors) > r.errorCap {
		r.errors = r.errors[len(r.errors)-r.errorCap:]
	}
}

// Snapshot returns a copy of the current agent status.
func (r *StatusReporter) Snapshot() domain.AgentStatus {
	r.mu.Lock()
	defer r.mu.Unlock()

	status := domain.AgentStatus{
		IsRunning:   r.isRunning,
		IsExecuting: r.isExecuting,
		LastRun:     r.lastRun,
		TotalRuns:   r.totalRuns,
		TotalPosted: r.totalPosted,
		TotalFailed: r.totalFailed,
	}
	if r.lastRunAt != nil {
		t := *r.lastRunAt
		status.LastRunAt = &t
	}
	if r.nextRunAt != nil {
		t := *r.nextRunAt
		status.NextRunAt = &t
	}
	status.RecentErrors = append([]string(nil), r.errors...)
	return status
}
