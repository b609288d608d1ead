// Package publisher emits validation outcome events for downstream consumers.
//
// Outcomes are fire-and-forget: a failed publish is logged and counted, and
// the validation result returned to the caller is unaffected.
package publisher

import (
	"context"
	"encoding/hex"
	"strings"
	"time"

	"golang.org/x/crypto/blake2b"
)

// Outcome summarises one validation pass. It carries no personal data; the
// subject is identified by a hash of its identifier.
type Outcome struct {
	Kind        string    `json:"kind"`
	SubjectHash string    `json:"subject_hash"`
	CaseID      string    `json:"case_id,omitempty"`
	Valid       bool      `json:"valid"`
	Codes       []string  `json:"codes,omitempty"`
	EvaluatedAt time.Time `json:"evaluated_at"`
	RequestID   string    `json:"request_id,omitempty"`
}

// Publisher delivers outcome events.
type Publisher interface {
	Publish(ctx context.Context, outcome Outcome) error
	Close() error
}

// HashSubject returns the BLAKE2b-256 hex digest of a subject identifier.
// Identifiers are trimmed and upper-cased first so the same defendant
// reference hashes the same whichever way it was typed.
func HashSubject(identifier string) string {
	normalized := strings.ToUpper(strings.TrimSpace(identifier))
	if normalized == "" {
		return ""
	}
	sum := blake2b.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
