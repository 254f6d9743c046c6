package validations

import (
	"context"
	"testing"

	"github.com/socialcraft/content-agent/agent/domain"
)

func TestValidateApprovePlan(t *testing.T) {
	ctx := context.Background()

	if err := ValidateApprovePlan(ctx, ApprovePlanRequest{}); err != nil {
		t.Errorf("empty request must be valid: %v", err)
	}
	if err := ValidateApprovePlan(ctx, ApprovePlanRequest{PostIndexes: []int{0, 3}}); err != nil {
		t.Errorf("non-negative indexes must be valid: %v", err)
	}
	if err := ValidateApprovePlan(ctx, ApprovePlanRequest{PostIndexes: []int{-1}}); err == nil {
		t.Error("negative index must be rejected")
	}
}

func TestValidatePlanStatuses(t *testing.T) {
	ctx := context.Background()

	statuses, err := ValidatePlanStatuses(ctx, []string{"approved", "executing"})
	if err != nil {
		t.Fatal(err)
	}
	if len(statuses) != 2 || statuses[0] != domain.PlanStatusApproved {
		t.Errorf("unexpected statuses: %v", statuses)
	}

	if _, err := ValidatePlanStatuses(ctx, []string{"bogus"}); err == nil {
		t.Error("unknown status must be rejected")
	}

	statuses, err = ValidatePlanStatuses(ctx, nil)
	if err != nil || len(statuses) != 0 {
		t.Errorf("empty filter must pass through: %v %v", statuses, err)
	}
}

func TestValidatePostSchedule(t *testing.T) {
	good := domain.Post{Date: "2024-03-04", Time: "09:30"}
	if err := ValidatePostSchedule(0, good); err != nil {
		t.Errorf("valid schedule rejected: %v", err)
	}

	cases := []domain.Post{
		{Date: "03/04/2024", Time: "09:30"},
		{Date: "2024-03-04", Time: "25:00"},
		{Date: "2024-03-04", Time: "nine"},
		{Date: "", Time: "09:30"},
	}
	for _, post := range cases {
		if err := ValidatePostSchedule(0, post); err == nil {
			t.Errorf("schedule %q %q must be rejected", post.Date, post.Time)
		}
	}
}
