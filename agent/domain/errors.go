package domain

import (
	"errors"
	"fmt"
)

var (
	ErrPlanNotFound     = errors.New("content plan not found")
	ErrBrandKitNotFound = errors.New("brand kit not found")
	ErrProfileNotFound  = errors.New("social profile not found")
)

// ConfigurationError means the publishing backend is not configured or not
// reachable at all. Every post in the affected attempt fails immediately;
// the failure still counts toward the post's retry budget.
type ConfigurationError struct {
	Reason string
}

func (e ConfigurationError) Error() string {
	return "publishing backend not configured: " + e.Reason
}

// ResolutionError means a post could not be mapped to any connected account.
// Individual unbound platforms are dropped silently; this error fires only
// when nothing remains to publish to.
type ResolutionError struct {
	Reason string
}

func (e ResolutionError) Error() string {
	return "account resolution failed: " + e.Reason
}

// PublishError is a failure reported by the external publishing API, carrying
// an HTTP-status-like code and a human-readable reason.
type PublishError struct {
	Code   int
	Reason string
}

func (e PublishError) Error() string {
	if e.Code > 0 {
		return fmt.Sprintf("publish failed (%d): %s", e.Code, e.Reason)
	}
	return "publish failed: " + e.Reason
}
