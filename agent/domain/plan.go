package domain

import (
	"time"
)

type PlanStatus string

const (
	PlanStatusDraft     PlanStatus = "draft"
	PlanStatusApproved  PlanStatus = "approved"
	PlanStatusExecuting PlanStatus = "executing"
	PlanStatusCompleted PlanStatus = "completed"
	PlanStatusCancelled PlanStatus = "cancelled"
)

type PostStatus string

const (
	PostStatusPending   PostStatus = "pending"
	PostStatusApproved  PostStatus = "approved"
	PostStatusRejected  PostStatus = "rejected"
	PostStatusScheduled PostStatus = "scheduled"
	PostStatusPosted    PostStatus = "posted"
)

// IsTerminal reports whether a post can never be processed again.
func (s PostStatus) IsTerminal() bool {
	return s == PostStatusPosted || s == PostStatusRejected
}

const (
	// DateLayout is the wall-clock date format posts are scheduled with.
	DateLayout = "2006-01-02"
	// ClockLayout is the wall-clock time-of-day format.
	ClockLayout = "15:04"
)

// Post is one scheduled piece of content embedded in a plan. Its position in
// the plan's post list is its identity; posts are never reordered.
type Post struct {
	Date              string     `json:"date"` // 2006-01-02, local wall clock
	Time              string     `json:"time"` // 15:04, local wall clock
	Platforms         []Platform `json:"platforms"`
	Caption           string     `json:"caption"`
	Hashtags          []string   `json:"hashtags,omitempty"`
	MediaURL          string     `json:"media_url,omitempty"`
	MediaType         MediaType  `json:"media_type,omitempty"`
	MediaItemID       string     `json:"media_item_id,omitempty"` // indirect reference into the media library
	Status            PostStatus `json:"status"`
	FailureCount      int        `json:"failure_count,omitempty"`
	LastFailureReason string     `json:"last_failure_reason,omitempty"`
	LastFailureAt     *time.Time `json:"last_failure_at,omitempty"`
	PostedAt          *time.Time `json:"posted_at,omitempty"`
	ExternalPostID    string     `json:"external_post_id,omitempty"`
}

// DueAt returns the instant the post becomes due in the given location.
func (p Post) DueAt(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(DateLayout+" "+ClockLayout, p.Date+" "+p.Time, loc)
}

// IsDue reports whether the post's scheduled wall-clock moment has arrived.
// A post dated before today is due regardless of its time-of-day; a post
// dated today is due once its time is <= now.
func (p Post) IsDue(now time.Time) bool {
	due, err := p.DueAt(now.Location())
	if err != nil {
		return false
	}
	today := now.Format(DateLayout)
	if p.Date < today {
		return true
	}
	if p.Date > today {
		return false
	}
	return !due.After(now)
}

// ExecutionProgress summarizes where a plan's posts stand.
type ExecutionProgress struct {
	Total       int        `json:"total"`
	Scheduled   int        `json:"scheduled"`
	Posted      int        `json:"posted"`
	Failed      int        `json:"failed"`
	LastUpdated *time.Time `json:"last_updated,omitempty"`
}

// ContentPlan is a scheduled batch of posts generated for a brand kit over a
// date range. The agent only ever transitions statuses and progress counters;
// plans and their posts are created upstream.
type ContentPlan struct {
	ID         string            `json:"id"`
	BrandKitID string            `json:"brand_kit_id"`
	Scope      string            `json:"scope"` // e.g. "week", "month"
	StartDate  string            `json:"start_date"`
	EndDate    string            `json:"end_date"`
	Status     PlanStatus        `json:"status"`
	Posts      []Post            `json:"posts"`
	Progress   ExecutionProgress `json:"execution_progress"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// ComputeProgress recounts the progress counters from the post states.
func ComputeProgress(posts []Post, now time.Time) ExecutionProgress {
	progress := ExecutionProgress{Total: len(posts), LastUpdated: &now}
	for _, post := range posts {
		switch post.Status {
		case PostStatusScheduled:
			progress.Scheduled++
		case PostStatusPosted:
			progress.Posted++
		case PostStatusRejected:
			progress.Failed++
		}
	}
	return progress
}

// NextPlanStatus derives the plan status from its posts after a cycle pass.
// A plan completes only when no post remains actionable: everything is
// posted, rejected, or still pending review.
func NextPlanStatus(posts []Post) PlanStatus {
	for _, post := range posts {
		if post.Status == PostStatusApproved || post.Status == PostStatusScheduled {
			return PlanStatusExecuting
		}
	}
	return PlanStatusCompleted
}
