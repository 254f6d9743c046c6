package domain

import "context"

// PlanRepository persists content plans. Updates are last-write-wins; the
// processor performs read-modify-write without a transactional guarantee
// against concurrent external edits.
type PlanRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, plan ContentPlan) error
	GetByID(ctx context.Context, id string) (ContentPlan, error)
	FindByStatus(ctx context.Context, statuses ...PlanStatus) ([]ContentPlan, error)
	Update(ctx context.Context, plan ContentPlan) error
	Delete(ctx context.Context, id string) error
}

// AccountResolver maps a brand kit to its social profile and the profile's
// connected platform accounts.
type AccountResolver interface {
	GetBrandKit(ctx context.Context, id string) (BrandKit, error)
	GetSocialProfile(ctx context.Context, id string) (SocialProfile, error)
	ListAccounts(ctx context.Context, profileID string) ([]SocialAccount, error)
}

// PublishGateway is the external publishing API. CreatePost returns the
// external post identifier on success.
type PublishGateway interface {
	CreatePost(ctx context.Context, req CreatePostRequest) (string, error)
}

// MediaLibrary resolves an indirect media reference for a post. A nil Media
// with nil error means "no media found"; the publisher proceeds without
// media in that case.
type MediaLibrary interface {
	MediaForPost(ctx context.Context, mediaItemID string) (*Media, error)
}

// PostTarget pairs a platform with the external account to publish through.
type PostTarget struct {
	Platform  Platform `json:"platform"`
	AccountID string   `json:"account_id"`
}

// CreatePostRequest is the platform-agnostic payload sent to the publishing
// backend.
type CreatePostRequest struct {
	Content string       `json:"content"`
	Targets []PostTarget `json:"targets"`
	Media   *Media       `json:"media,omitempty"`
}
