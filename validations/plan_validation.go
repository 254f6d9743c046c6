package validations

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/socialcraft/content-agent/agent/domain"
	pkgError "github.com/socialcraft/content-agent/pkg/error"
	"github.com/socialcraft/content-agent/pkg/timeutils"
)

// ApprovePlanRequest selects which pending posts of a plan to approve.
// An empty index list approves every pending post.
type ApprovePlanRequest struct {
	PostIndexes []int `json:"post_indexes"`
}

func ValidateApprovePlan(ctx context.Context, request ApprovePlanRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.PostIndexes, validation.Each(validation.Min(0))),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}

// ValidatePostSchedule rejects a post with a malformed schedule. A post with
// an unparseable date or time would never become due, so approving it would
// strand it forever.
func ValidatePostSchedule(index int, post domain.Post) error {
	if !timeutils.ValidDate(post.Date) {
		return pkgError.ValidationError(fmt.Sprintf("post %d has an invalid date %q, expected YYYY-MM-DD", index, post.Date))
	}
	if !timeutils.ValidClockTime(post.Time) {
		return pkgError.ValidationError(fmt.Sprintf("post %d has an invalid time %q, expected HH:MM", index, post.Time))
	}
	return nil
}

// ValidatePlanStatuses checks a list of raw status filters from the query
// string against the known plan statuses.
func ValidatePlanStatuses(ctx context.Context, raw []string) ([]domain.PlanStatus, error) {
	statuses := make([]domain.PlanStatus, 0, len(raw))
	for _, value := range raw {
		err := validation.ValidateWithContext(ctx, value, validation.In(
			string(domain.PlanStatusDraft),
			string(domain.PlanStatusApproved),
			string(domain.PlanStatusExecuting),
			string(domain.PlanStatusCompleted),
			string(domain.PlanStatusCancelled),
		))
		if err != nil {
			return nil, pkgError.ValidationError("unknown plan status: " + value)
		}
		statuses = append(statuses, domain.PlanStatus(value))
	}
	return statuses, nil
}
