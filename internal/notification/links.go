package notification

import (
	"net/url"
)

// ModerationLinks builds the approve and reject URLs embedded in the
// administrator notification. The token is the sole credential carried by the
// links, so it is query-escaped verbatim.
func ModerationLinks(baseURL, token string) (approveURL, rejectURL string) {
	query := url.Values{}
	query.Set("token", token)

	query.Set("action", "approve")
	approveURL = baseURL + "/moderation?" + query.Encode()

	query.Set("action", "reject")
	rejectURL = baseURL + "/moderation?" + query.Encode()

	return approveURL, rejectURL
}
