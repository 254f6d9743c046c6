package application

import (
	"context"
	"strings"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"
	"github.com/sirupsen/logrus"

	"github.com/socialcraft/content-agent/agent/domain"
)

// PublisherConfig tunes the in-cycle retry behavior of publish attempts.
type PublisherConfig struct {
	MaxRetries int           // extra attempts after the first failure
	BaseDelay  time.Duration // first backoff delay
	MaxDelay   time.Duration // backoff cap
}

func DefaultPublisherConfig() PublisherConfig {
	return PublisherConfig{
		MaxRetries: 2,
		BaseDelay:  2 * time.Second,
		MaxDelay:   4 * time.Second,
	}
}

// Publisher builds a platform-agnostic create-post request from one content
// item and the resolved account bindings, sends it to the publishing backend,
// and normalizes success/failure.
type Publisher struct {
	gateway domain.PublishGateway
	media   domain.MediaLibrary
	cfg     PublisherConfig
}

func NewPublisher(gateway domain.PublishGateway, media domain.MediaLibrary, cfg PublisherConfig) *Publisher {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = 2 * time.Second
	}
	if cfg.MaxDelay < cfg.BaseDelay {
		cfg.MaxDelay = cfg.BaseDelay
	}
	return &Publisher{gateway: gateway, media: media, cfg: cfg}
}

// BuildRequest assembles the create-post payload. Platforms without a binding
// are dropped from the target list; an empty target list is a hard failure
// for the post.
func (p *Publisher) BuildRequest(ctx context.Context, post domain.Post, bindings map[domain.Platform]domain.AccountBinding, promoText string) (domain.CreatePostRequest, error) {
	targets := make([]domain.PostTarget, 0, len(post.Platforms))
	for _, platform := range post.Platforms {
		binding, ok := bindings[platform]
		if !ok {
			logrus.Debugf("[PUBLISHER] No account binding for %s, dropping platform", platform)
			continue
		}
		targets = append(targets, domain.PostTarget{
			Platform:  platform,
			AccountID: binding.ExternalAccountID,
		})
	}
	if len(targets) == 0 {
		return domain.CreatePostRequest{}, domain.ResolutionError{
			Reason: "no connected account for any of the post's platforms",
		}
	}

	return domain.CreatePostRequest{
		Content: buildContent(post, promoText),
		Targets: targets,
		Media:   p.resolveMedia(ctx, post),
	}, nil
}

// Publish sends the post to the publishing backend, retrying the gateway call
// up to MaxRetries extra times with backoff. It returns the external post ID.
func (p *Publisher) Publish(ctx context.Context, post domain.Post, bindings map[domain.Platform]domain.AccountBinding, promoText string) (string, error) {
	if p.gateway == nil {
		return "", domain.ConfigurationError{Reason: "no publish gateway"}
	}

	req, err := p.BuildRequest(ctx, post, bindings, promoText)
	if err != nil {
		// Resolution failures will not change within a cycle; retrying them
		// only burns the backoff budget.
		return "", err
	}

	policy := retrypolicy.NewBuilder[string]().
		WithMaxRetries(p.cfg.MaxRetries).
		WithBackoff(p.cfg.BaseDelay, p.cfg.MaxDelay).
		Build()

	return failsafe.With(policy).WithContext(ctx).Get(func() (string, error) {
		externalID, err := p.gateway.CreatePost(ctx, req)
		if err != nil {
			logrus.WithError(err).Warn("[PUBLISHER] Publish attempt failed")
		}
		return externalID, err
	})
}

// resolveMedia returns the post's direct media reference, or falls back to a
// best-effort library lookup by the post's indirect media item reference.
// A failed lookup degrades to "no media" rather than failing the post.
func (p *Publisher) resolveMedia(ctx context.Context, post domain.Post) *domain.Media {
	if post.MediaURL != "" {
		mediaType := post.MediaType
		if mediaType == "" {
			mediaType = domain.MediaTypeImage
		}
		return &domain.Media{URL: post.MediaURL, Type: mediaType}
	}

	if post.MediaItemID == "" || p.media == nil {
		return nil
	}

	media, err := p.media.MediaForPost(ctx, post.MediaItemID)
	if err != nil {
		logrus.WithError(err).Warnf("[PUBLISHER] Media lookup for item %s failed, publishing without media", post.MediaItemID)
		return nil
	}
	return media
}

func buildContent(post domain.Post, promoText string) string {
	parts := []string{strings.TrimSpace(post.Caption)}

	if tags := normalizeHashtags(post.Hashtags); tags != "" {
		parts = append(parts, tags)
	}
	if promoText = strings.TrimSpace(promoText); promoText != "" {
		parts = append(parts, promoText)
	}

	nonEmpty := parts[:0]
	for _, part := range parts {
		if part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}
	return strings.Join(nonEmpty, "\n\n")
}

func normalizeHashtags(tags []string) string {
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if !strings.HasPrefix(tag, "#") {
			tag = "#" + tag
		}
		normalized = append(normalized, tag)
	}
	return strings.Join(normalized, " ")
}
