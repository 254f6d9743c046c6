package domain

import (
	"fmt"
	"strings"
)

// Platform is the closed set of social networks the agent can publish to.
// Anything outside this set is rejected at parse time instead of silently
// producing an unusable account binding.
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
	PlatformTwitter   Platform = "twitter"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformTikTok    Platform = "tiktok"
	PlatformYouTube   Platform = "youtube"
)

// AllPlatforms lists every supported platform.
func AllPlatforms() []Platform {
	return []Platform{
		PlatformInstagram,
		PlatformFacebook,
		PlatformTwitter,
		PlatformLinkedIn,
		PlatformTikTok,
		PlatformYouTube,
	}
}

// ParsePlatform normalizes a raw platform name ("Instagram", " X ", "fb")
// into its canonical Platform value.
func ParsePlatform(raw string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "instagram", "ig":
		return PlatformInstagram, nil
	case "facebook", "fb":
		return PlatformFacebook, nil
	case "twitter", "x":
		return PlatformTwitter, nil
	case "linkedin":
		return PlatformLinkedIn, nil
	case "tiktok":
		return PlatformTikTok, nil
	case "youtube", "yt":
		return PlatformYouTube, nil
	}
	return "", fmt.Errorf("unsupported platform: %q", raw)
}

// IsValidPlatform reports whether raw maps to a supported platform.
func IsValidPlatform(raw string) bool {
	_, err := ParsePlatform(raw)
	return err == nil
}
