package headlines

import "strings"

// ConfigString returns the trimmed string value for key from profile.Config or a fallback.
func ConfigString(p Profile, key, fallback string) string {
	if p.Config != nil {
		if val, ok := p.Config[key]; ok {
			if trimmed := strings.TrimSpace(val); trimmed != "" {
				return trimmed
			}
		}
	}
	return fallback
}

const (
	ConfigUserAgentKey      = "user_agent"
	ConfigAcceptKey         = "accept"
	ConfigAcceptLanguageKey = "accept_language"

	defaultUserAgent = "samvad-headlines/1.0"
)

// Headers builds the request headers for a profile, including the API credential.
func Headers(p Profile, apiKey string) map[string]string {
	headers := make(map[string]string, 4)

	headers["User-Agent"] = ConfigString(p, ConfigUserAgentKey, defaultUserAgent)
	headers["Accept"] = ConfigString(p, ConfigAcceptKey, "application/json")
	if v := ConfigString(p, ConfigAcceptLanguageKey, ""); v != "" {
		headers["Accept-Language"] = v
	}
	if key := strings.TrimSpace(apiKey); key != "" {
		headers[p.APIKeyHeader] = key
	}

	return headers
}
