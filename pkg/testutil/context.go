package testutil

import (
	"net/http"
	"time"

	"precheck/pkg/requestcontext"
)

// WithClient adds the submitting system's identity to the request context.
// This simulates what the auth middleware does for authenticated requests.
func WithClient(req *http.Request, clientID, prosecutorOUCode string) *http.Request {
	ctx := requestcontext.WithClientID(req.Context(), clientID)
	if prosecutorOUCode != "" {
		ctx = requestcontext.WithProsecutorOUCode(ctx, prosecutorOUCode)
	}
	return req.WithContext(ctx)
}

// WithRequestTime pins the request clock, so date rules see a fixed "today".
func WithRequestTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}
