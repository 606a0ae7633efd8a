package vision

import "strings"

// IsRateLimit reports whether an error looks like provider throttling.
// The Gemini API surfaces quota exhaustion as HTTP 429 with varying
// message shapes, so this matches on the common markers.
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"429", "quota", "rate limit", "rate_limit", "resource exhausted", "resource_exhausted"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
