package application

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/socialcraft/content-agent/agent/domain"
)

// SchedulerConfig tunes cycle timing.
type SchedulerConfig struct {
	Interval     time.Duration // between periodic cycles
	InitialDelay time.Duration // first cycle shortly after start, so state is not stale
}

func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		Interval:     5 * time.Minute,
		InitialDelay: 1 * time.Second,
	}
}

type triggerRequest struct {
	reply chan []domain.ExecutionResult
}

// Scheduler fires execution cycles on a fixed interval and exposes manual
// start/stop/trigger controls. One goroutine owns the initial-delay timer,
// the periodic ticker and the manual trigger channel, so every entry into
// the cycle guard is serialized through a single loop.
type Scheduler struct {
	processor *PlanProcessor
	reporter  *StatusReporter
	guard     *CycleGuard
	cfg       SchedulerConfig

	running atomic.Bool
	trigger chan triggerRequest
	stop    chan struct{}
	done    chan struct{}
}

func NewScheduler(processor *PlanProcessor, reporter *StatusReporter, cfg SchedulerConfig) *Scheduler {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Minute
	}
	if cfg.InitialDelay <= 0 {
		cfg.InitialDelay = 1 * time.Second
	}
	return &Scheduler{
		processor: processor,
		reporter:  reporter,
		guard:     &CycleGuard{},
		cfg:       cfg,
		trigger:   make(chan triggerRequest),
	}
}

// Start launches the scheduling loop. Starting twice is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	if !s.running.CompareAndSwap(false, true) {
		logrus.Debug("[SCHEDULER] Start ignored, already running")
		return
	}

	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	s.reporter.SetRunning(true)
	s.reporter.SetNextRun(time.Now().Add(s.cfg.InitialDelay))

	logrus.Infof("[SCHEDULER] Started, interval %s", s.cfg.Interval)
	go s.loop(ctx)
}

// Stop prevents future cycles from starting. An in-flight cycle is allowed
// to finish; there is no preemption.
func (s *Scheduler) Stop() {
	if !s.running.CompareAndSwap(true, false) {
		return
	}
	close(s.stop)
	<-s.done
	s.reporter.SetRunning(false)
	logrus.Info("[SCHEDULER] Stopped")
}

// ExecuteNow triggers an out-of-band cycle and returns its results
// synchronously. If a cycle is already in progress the call returns an
// empty result set immediately; it never queues.
func (s *Scheduler) ExecuteNow(ctx context.Context) []domain.ExecutionResult {
	if !s.running.Load() {
		// Manual trigger with the scheduler stopped still runs a cycle,
		// guarded the same way.
		return s.runCycle(ctx)
	}

	req := triggerRequest{reply: make(chan []domain.ExecutionResult, 1)}
	select {
	case s.trigger <- req:
		select {
		case results := <-req.reply:
			return results
		case <-ctx.Done():
			return nil
		}
	default:
		// The loop is mid-cycle and not listening: skip, don't queue.
		logrus.Debug("[SCHEDULER] Manual trigger skipped, cycle in progress")
		return []domain.ExecutionResult{}
	}
}

// GetStatus is a pure read of the aggregated agent status.
func (s *Scheduler) GetStatus() domain.AgentStatus {
	return s.reporter.Snapshot()
}

// IsRunning reports whether the scheduling loop is active.
func (s *Scheduler) IsRunning() bool {
	return s.running.Load()
}

func (s *Scheduler) loop(ctx context.Context) {
	defer close(s.done)

	initial := time.NewTimer(s.cfg.InitialDelay)
	defer initial.Stop()
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	// The ticker keeps its own cadence: manual triggers and the initial
	// cycle never move the next periodic run.
	nextTick := time.Now().Add(s.cfg.Interval)

	for {
		select {
		case <-ctx.Done():
			s.running.Store(false)
			s.reporter.SetRunning(false)
			return
		case <-s.stop:
			return
		case <-initial.C:
			s.runCycle(ctx)
			s.reporter.SetNextRun(nextTick)
		case <-ticker.C:
			nextTick = time.Now().Add(s.cfg.Interval)
			s.reporter.SetNextRun(nextTick)
			s.runCycle(ctx)
		case req := <-s.trigger:
			req.reply <- s.runCycle(ctx)
		}
	}
}

// runCycle executes one guarded cycle. The recover is the scheduler's
// backstop: nothing thrown below may kill the timer loop.
func (s *Scheduler) runCycle(ctx context.Context) (results []domain.ExecutionResult) {
	if !s.guard.TryAcquire() {
		logrus.Debug("[SCHEDULER] Cycle skipped, another cycle is active")
		return []domain.ExecutionResult{}
	}
	defer s.guard.Release()

	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("[SCHEDULER] Cycle panic recovered: %v", r)
			s.reporter.RecordError(fmt.Sprintf("cycle panic: %v", r))
			s.reporter.CycleFinished()
		}
	}()

	s.reporter.CycleStarted(time.Now())
	results = s.processor.ProcessDue(ctx)
	s.reporter.CycleFinished()
	return results
}
