package repository

import (
	"context"
	"sync"

	"github.com/socialcraft/content-agent/agent/domain"
)

// MemoryPlanRepository is an in-memory plan store used by tests and by the
// headless --memory mode. Plans are deep-copied in and out so callers never
// share post slices with the store.
type MemoryPlanRepository struct {
	mu    sync.RWMutex
	plans map[string]domain.ContentPlan
}

func NewMemoryPlanRepository() *MemoryPlanRepository {
	return &MemoryPlanRepository{plans: make(map[string]domain.ContentPlan)}
}

func (r *MemoryPlanRepository) Init(ctx context.Context) error { return nil }

func (r *MemoryPlanRepository) Create(ctx context.Context, plan domain.ContentPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans[plan.ID] = clonePlan(plan)
	return nil
}

func (r *MemoryPlanRepository) GetByID(ctx context.Context, id string) (domain.ContentPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	plan, ok := r.plans[id]
	if !ok {
		return domain.ContentPlan{}, domain.ErrPlanNotFound
	}
	return clonePlan(plan), nil
}

func (r *MemoryPlanRepository) FindByStatus(ctx context.Context, statuses ...domain.PlanStatus) ([]domain.ContentPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[domain.PlanStatus]bool, len(statuses))
	for _, s := range statuses {
		wanted[s] = true
	}

	var result []domain.ContentPlan
	for _, plan := range r.plans {
		if wanted[plan.Status] {
			result = append(result, clonePlan(plan))
		}
	}
	return result, nil
}

func (r *MemoryPlanRepository) Update(ctx context.Context, plan domain.ContentPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.plans[plan.ID]; !ok {
		return domain.ErrPlanNotFound
	}
	r.plans[plan.ID] = clonePlan(plan)
	return nil
}

func (r *MemoryPlanRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.plans, id)
	return nil
}

func clonePlan(plan domain.ContentPlan) domain.ContentPlan {
	posts := make([]domain.Post, len(plan.Posts))
	copy(posts, plan.Posts)
	plan.Posts = posts
	return plan
}

// MemoryResolver is an in-memory account resolver for tests and local runs.
type MemoryResolver struct {
	mu       sync.RWMutex
	kits     map[string]domain.BrandKit
	profiles map[string]domain.SocialProfile
	accounts map[string][]domain.SocialAccount // keyed by profile ID
}

func NewMemoryResolver() *MemoryResolver {
	return &MemoryResolver{
		kits:     make(map[string]domain.BrandKit),
		profiles: make(map[string]domain.SocialProfile),
		accounts: make(map[string][]domain.SocialAccount),
	}
}

func (r *MemoryResolver) PutBrandKit(kit domain.BrandKit) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kits[kit.ID] = kit
}

func (r *MemoryResolver) PutSocialProfile(profile domain.SocialProfile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.ID] = profile
}

func (r *MemoryResolver) PutAccount(account domain.SocialAccount) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[account.SocialProfileID] = append(r.accounts[account.SocialProfileID], account)
}

func (r *MemoryResolver) GetBrandKit(ctx context.Context, id string) (domain.BrandKit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kit, ok := r.kits[id]
	if !ok {
		return domain.BrandKit{}, domain.ErrBrandKitNotFound
	}
	return kit, nil
}

func (r *MemoryResolver) GetSocialProfile(ctx context.Context, id string) (domain.SocialProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.profiles[id]
	if !ok {
		return domain.SocialProfile{}, domain.ErrProfileNotFound
	}
	return profile, nil
}

func (r *MemoryResolver) ListAccounts(ctx context.Context, profileID string) ([]domain.SocialAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.SocialAccount(nil), r.accounts[profileID]...), nil
}
