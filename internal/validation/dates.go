package validation

import (
	"context"
	"strings"
	"time"

	"precheck/pkg/requestcontext"
)

// DateLayout is the ISO calendar date format submissions use.
const DateLayout = "2006-01-02"

// ParseDate parses an ISO calendar date. ok is false for empty or malformed input.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Today returns the request's calendar date as a UTC midnight, comparable with ParseDate results.
func Today(ctx context.Context) time.Time {
	y, m, d := requestcontext.Now(ctx).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// InFuture reports whether s is a well-formed date strictly after today.
func InFuture(ctx context.Context, s string) bool {
	t, ok := ParseDate(s)
	return ok && t.After(Today(ctx))
}
