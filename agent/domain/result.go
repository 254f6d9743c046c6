package domain

import "time"

// ExecutionResult reports the outcome of one post attempt within a cycle.
type ExecutionResult struct {
	PlanID         string    `json:"plan_id"`
	PostIndex      int       `json:"post_index"`
	Success        bool      `json:"success"`
	ExternalPostID string    `json:"external_post_id,omitempty"`
	Error          string    `json:"error,omitempty"`
	Rejected       bool      `json:"rejected,omitempty"` // retry budget exhausted, post is terminal
	ExecutedAt     time.Time `json:"executed_at"`
}

// RunCounters are per-cycle attempt counts; they reset every cycle.
type RunCounters struct {
	Attempted int `json:"attempted"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// AgentStatus is the operator-facing snapshot of the execution agent.
type AgentStatus struct {
	IsRunning    bool        `json:"is_running"`
	IsExecuting  bool        `json:"is_executing"`
	LastRunAt    *time.Time  `json:"last_run_at,omitempty"`
	NextRunAt    *time.Time  `json:"next_run_at,omitempty"`
	LastRun      RunCounters `json:"last_run"`
	TotalRuns    int64       `json:"total_runs"`
	TotalPosted  int64       `json:"total_posted"`
	TotalFailed  int64       `json:"total_failed"`
	RecentErrors []string    `json:"recent_errors,omitempty"`
}
