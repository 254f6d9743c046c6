package config

import (
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// GetAllSettings returns a map of the settings worth exposing to operators.
func GetAllSettings() map[string]any {
	if Global == nil {
		return map[string]any{}
	}
	return map[string]any{
		"app_version":               Global.App.Version,
		"app_debug":                 Global.App.Debug,
		"agent_interval":            Global.Agent.Interval.String(),
		"agent_failure_cap":         Global.Agent.FailureCap,
		"agent_max_publish_retries": Global.Agent.MaxPublishRetries,
		"agent_timezone":            Global.Agent.Timezone,
		"publisher_configured":      Global.Publisher.BaseURL != "",
		"publisher_promo_enabled":   Global.Publisher.PromoEnabled,
	}
}

// Helpers. Values resolve through viper, primed with AutomaticEnv during
// bootstrap, so .env files and the process environment are read the same way.
func getEnv(key, fallback string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := viper.GetString(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if viper.IsSet(key) {
		return viper.GetBool(key)
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := viper.GetString(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
