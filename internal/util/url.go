package util

import (
	"net/url"
	"strings"
)

// IsRedirectSafe reports whether redirectURL may be handed to an HTTP
// redirect without opening the app to open-redirect or header
// injection. Allowed: empty (caller falls back to a default), local
// paths starting with a single "/", and absolute http(s) URLs whose
// host matches baseURL.
func IsRedirectSafe(redirectURL, baseURL string) bool {
	if redirectURL == "" {
		return true
	}
	if strings.ContainsAny(redirectURL, "\r\n") {
		return false
	}

	if strings.HasPrefix(redirectURL, "/") {
		// "//host" and "/\host" are scheme-relative in browsers.
		return !strings.HasPrefix(redirectURL, "//") && !strings.Contains(redirectURL, "\\")
	}

	parsed, err := url.Parse(redirectURL)
	if err != nil {
		return false
	}
	if parsed.Scheme != "" && parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	if parsed.Host != "" {
		base, err := url.Parse(baseURL)
		if err != nil {
			return false
		}
		return parsed.Host == base.Host
	}
	return true
}
