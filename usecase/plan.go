package usecase

import (
	"context"
	"time"

	"github.com/socialcraft/content-agent/agent/domain"
	"github.com/socialcraft/content-agent/validations"
)

// PlanUsecase is the thin read/approve surface over the plan store consumed
// by the REST layer. Plans are authored upstream; the only mutation allowed
// here is the reviewer's approval, which is what hands a plan over to the
// execution agent.
type PlanUsecase struct {
	plans domain.PlanRepository
}

func NewPlanUsecase(plans domain.PlanRepository) *PlanUsecase {
	return &PlanUsecase{plans: plans}
}

func (uc *PlanUsecase) List(ctx context.Context, statuses []domain.PlanStatus) ([]domain.ContentPlan, error) {
	if len(statuses) == 0 {
		statuses = []domain.PlanStatus{
			domain.PlanStatusDraft,
			domain.PlanStatusApproved,
			domain.PlanStatusExecuting,
			domain.PlanStatusCompleted,
			domain.PlanStatusCancelled,
		}
	}
	return uc.plans.FindByStatus(ctx, statuses...)
}

func (uc *PlanUsecase) Get(ctx context.Context, id string) (domain.ContentPlan, error) {
	return uc.plans.GetByID(ctx, id)
}

// Approve marks the plan approved and moves the selected pending posts to
// approved. With no indexes given, every pending post is approved. Terminal
// posts are never touched.
func (uc *PlanUsecase) Approve(ctx context.Context, id string, request validations.ApprovePlanRequest) (domain.ContentPlan, error) {
	if err := validations.ValidateApprovePlan(ctx, request); err != nil {
		return domain.ContentPlan{}, err
	}

	plan, err := uc.plans.GetByID(ctx, id)
	if err != nil {
		return domain.ContentPlan{}, err
	}

	selected := make(map[int]bool, len(request.PostIndexes))
	for _, idx := range request.PostIndexes {
		selected[idx] = true
	}

	posts := make([]domain.Post, len(plan.Posts))
	copy(posts, plan.Posts)
	for i := range posts {
		if posts[i].Status != domain.PostStatusPending {
			continue
		}
		if len(selected) > 0 && !selected[i] {
			continue
		}
		if err := validations.ValidatePostSchedule(i, posts[i]); err != nil {
			return domain.ContentPlan{}, err
		}
		posts[i].Status = domain.PostStatusApproved
	}

	now := time.Now().UTC()
	plan.Posts = posts
	plan.Status = domain.PlanStatusApproved
	plan.Progress = domain.ComputeProgress(posts, now)
	plan.UpdatedAt = now

	if err := uc.plans.Update(ctx, plan); err != nil {
		return domain.ContentPlan{}, err
	}
	return plan, nil
}
