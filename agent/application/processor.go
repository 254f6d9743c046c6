package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/socialcraft/content-agent/agent/domain"
)

// ProcessorConfig tunes per-plan execution.
type ProcessorConfig struct {
	FailureCap   int            // total failures (across cycles) before a post is rejected
	Location     *time.Location // wall-clock location for due checks
	PromoEnabled bool
	PromoText    string // default promotional suffix; a brand kit's own text wins
}

func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{FailureCap: 3, Location: time.UTC}
}

// PlanProcessor drives the due posts of active plans through the post state
// machine and persists progress after every post.
type PlanProcessor struct {
	plans     domain.PlanRepository
	resolver  domain.AccountResolver
	publisher *Publisher
	reporter  *StatusReporter
	cfg       ProcessorConfig
}

func NewPlanProcessor(
	plans domain.PlanRepository,
	resolver domain.AccountResolver,
	publisher *Publisher,
	reporter *StatusReporter,
	cfg ProcessorConfig,
) *PlanProcessor {
	if cfg.FailureCap <= 0 {
		cfg.FailureCap = 3
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &PlanProcessor{
		plans:     plans,
		resolver:  resolver,
		publisher: publisher,
		reporter:  reporter,
		cfg:       cfg,
	}
}

// ProcessDue runs one execution cycle across all active plans. Plans are
// processed sequentially; a failure in one plan never aborts the others.
func (pp *PlanProcessor) ProcessDue(ctx context.Context) []domain.ExecutionResult {
	plans, err := pp.plans.FindByStatus(ctx, domain.PlanStatusApproved, domain.PlanStatusExecuting)
	if err != nil {
		logrus.WithError(err).Error("[PROCESSOR] Failed to load active plans")
		pp.reporter.RecordError(fmt.Sprintf("load active plans: %v", err))
		return nil
	}

	var results []domain.ExecutionResult
	for _, plan := range plans {
		results = append(results, pp.processPlanSafe(ctx, plan)...)
	}
	return results
}

// processPlanSafe is the per-plan recovery boundary: one malformed plan must
// not stop the cycle or kill the scheduler.
func (pp *PlanProcessor) processPlanSafe(ctx context.Context, plan domain.ContentPlan) (results []domain.ExecutionResult) {
	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("[PROCESSOR] Panic while processing plan %s: %v", plan.ID, r)
			pp.reporter.RecordError(fmt.Sprintf("plan %s: panic: %v", plan.ID, r))
		}
	}()
	return pp.processPlan(ctx, plan)
}

func (pp *PlanProcessor) processPlan(ctx context.Context, plan domain.ContentPlan) []domain.ExecutionResult {
	bindings, promoText, err := pp.resolveAccounts(ctx, plan)
	if err != nil {
		logrus.WithError(err).Warnf("[PROCESSOR] Skipping plan %s, account resolution failed", plan.ID)
		pp.reporter.RecordError(fmt.Sprintf("plan %s: %v", plan.ID, err))
		return nil
	}

	// One clock per plan keeps every due comparison in the pass consistent.
	now := time.Now().In(pp.cfg.Location)

	var results []domain.ExecutionResult
	for i := range plan.Posts {
		if plan.Posts[i].Status != domain.PostStatusApproved {
			continue
		}
		if !plan.Posts[i].IsDue(now) {
			continue
		}

		result, updated, err := pp.executePost(ctx, plan, i, bindings, promoText)
		if err != nil {
			// Persistence failed; leave the remaining posts for the next
			// cycle rather than working from state we could not record.
			logrus.WithError(err).Errorf("[PROCESSOR] Failed to persist plan %s", plan.ID)
			pp.reporter.RecordError(fmt.Sprintf("plan %s: persist: %v", plan.ID, err))
			return results
		}
		plan = updated
		results = append(results, result)
	}

	pp.finalizePlan(ctx, plan, now)
	return results
}

// executePost drives one due post through scheduled -> posted/approved/rejected
// and persists the plan at each state change. The plan's post list is cloned
// before every mutation so a failed persist never leaves shared state behind.
func (pp *PlanProcessor) executePost(
	ctx context.Context,
	plan domain.ContentPlan,
	index int,
	bindings map[domain.Platform]domain.AccountBinding,
	promoText string,
) (domain.ExecutionResult, domain.ContentPlan, error) {
	pp.reporter.RecordAttempt()

	// Mark in flight first: if the process dies mid-publish the post is
	// visibly "scheduled" instead of silently stuck at "approved".
	plan = withPostStatus(plan, index, domain.PostStatusScheduled)
	if err := pp.plans.Update(ctx, plan); err != nil {
		return domain.ExecutionResult{}, plan, err
	}

	externalID, pubErr := pp.publisher.Publish(ctx, plan.Posts[index], bindings, promoText)
	executedAt := time.Now().In(pp.cfg.Location)

	result := domain.ExecutionResult{
		PlanID:     plan.ID,
		PostIndex:  index,
		ExecutedAt: executedAt,
	}

	if pubErr == nil {
		pp.reporter.RecordSuccess()
		plan = updatePost(plan, index, func(post *domain.Post) {
			post.Status = domain.PostStatusPosted
			post.PostedAt = &executedAt
			post.ExternalPostID = externalID
			post.LastFailureReason = ""
			post.LastFailureAt = nil
		})
		result.Success = true
		result.ExternalPostID = externalID
		logrus.Infof("[PROCESSOR] Posted plan %s post %d -> %s", plan.ID, index, externalID)
	} else {
		pp.reporter.RecordFailure()
		pp.reporter.RecordError(fmt.Sprintf("plan %s post %d: %v", plan.ID, index, pubErr))

		rejected := false
		plan = updatePost(plan, index, func(post *domain.Post) {
			post.FailureCount++
			post.LastFailureReason = pubErr.Error()
			post.LastFailureAt = &executedAt
			if post.FailureCount >= pp.cfg.FailureCap {
				post.Status = domain.PostStatusRejected
				rejected = true
			} else {
				// Back to approved so the next cycle retries it.
				post.Status = domain.PostStatusApproved
			}
		})
		result.Error = pubErr.Error()
		result.Rejected = rejected
		if rejected {
			logrus.Warnf("[PROCESSOR] Plan %s post %d rejected after %d failures", plan.ID, index, plan.Posts[index].FailureCount)
		} else {
			logrus.WithError(pubErr).Warnf("[PROCESSOR] Plan %s post %d failed, will retry next cycle", plan.ID, index)
		}
	}

	if err := pp.plans.Update(ctx, plan); err != nil {
		return domain.ExecutionResult{}, plan, err
	}
	return result, plan, nil
}

// finalizePlan recomputes the progress counters and plan status after a pass.
func (pp *PlanProcessor) finalizePlan(ctx context.Context, plan domain.ContentPlan, now time.Time) {
	plan.Progress = domain.ComputeProgress(plan.Posts, now)
	plan.Status = domain.NextPlanStatus(plan.Posts)
	plan.UpdatedAt = now

	if err := pp.plans.Update(ctx, plan); err != nil {
		logrus.WithError(err).Errorf("[PROCESSOR] Failed to finalize plan %s", plan.ID)
		pp.reporter.RecordError(fmt.Sprintf("plan %s: finalize: %v", plan.ID, err))
	}
}

func (pp *PlanProcessor) resolveAccounts(ctx context.Context, plan domain.ContentPlan) (map[domain.Platform]domain.AccountBinding, string, error) {
	kit, err := pp.resolver.GetBrandKit(ctx, plan.BrandKitID)
	if err != nil {
		return nil, "", fmt.Errorf("brand kit %s: %w", plan.BrandKitID, err)
	}
	if kit.SocialProfileID == "" {
		return nil, "", errors.New("brand kit has no social profile")
	}

	profile, err := pp.resolver.GetSocialProfile(ctx, kit.SocialProfileID)
	if err != nil {
		return nil, "", fmt.Errorf("social profile %s: %w", kit.SocialProfileID, err)
	}

	accounts, err := pp.resolver.ListAccounts(ctx, profile.ID)
	if err != nil {
		return nil, "", fmt.Errorf("accounts for profile %s: %w", profile.ID, err)
	}

	promoText := ""
	if pp.cfg.PromoEnabled {
		promoText = pp.cfg.PromoText
		if kit.PromoText != "" {
			promoText = kit.PromoText
		}
	}

	return domain.BindingIndex(accounts), promoText, nil
}

// withPostStatus returns the plan with the post's status replaced, cloning
// the post list so callers never mutate shared state in place.
func withPostStatus(plan domain.ContentPlan, index int, status domain.PostStatus) domain.ContentPlan {
	return updatePost(plan, index, func(post *domain.Post) {
		post.Status = status
	})
}

func updatePost(plan domain.ContentPlan, index int, mutate func(*domain.Post)) domain.ContentPlan {
	posts := make([]domain.Post, len(plan.Posts))
	copy(posts, plan.Posts)
	mutate(&posts[index])
	plan.Posts = posts
	return plan
}
