package domain

import "time"

// BrandKit is the upstream identity a plan was generated for. The agent only
// needs enough of it to reach the connected social profile.
type BrandKit struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	SocialProfileID string `json:"social_profile_id"`
	PromoText       string `json:"promo_text,omitempty"` // optional promotional suffix appended to captions
}

// SocialProfile groups the externally connected accounts of one brand kit.
type SocialProfile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// SocialAccount is one connected external account as stored upstream. The
// platform name arrives raw and is normalized during binding resolution.
type SocialAccount struct {
	ID                string    `json:"id"`
	SocialProfileID   string    `json:"social_profile_id"`
	Platform          string    `json:"platform"`
	ExternalAccountID string    `json:"external_account_id"`
	Username          string    `json:"username,omitempty"`
	Connected         bool      `json:"connected"`
	CreatedAt         time.Time `json:"created_at"`
}

// AccountBinding maps a normalized platform to the external account the
// publisher should use for it.
type AccountBinding struct {
	Platform          Platform `json:"platform"`
	ExternalAccountID string   `json:"external_account_id"`
}

// BindingIndex indexes connected accounts by normalized platform name.
// Accounts with unrecognized platform names are dropped; a post targeting
// such a platform is simply not publishable there.
func BindingIndex(accounts []SocialAccount) map[Platform]AccountBinding {
	index := make(map[Platform]AccountBinding, len(accounts))
	for _, account := range accounts {
		if !account.Connected {
			continue
		}
		platform, err := ParsePlatform(account.Platform)
		if err != nil {
			continue
		}
		index[platform] = AccountBinding{
			Platform:          platform,
			ExternalAccountID: account.ExternalAccountID,
		}
	}
	return index
}
