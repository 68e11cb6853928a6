// Package status defines the application status lifecycle.
//
//	applied ──► shortlisted ──► matched ──► accepted
//	    │            │
//	    └────────────┴──► rejected
//
// The ledger itself accepts any status write; the company-facing workflow is
// the layer that enforces the one hard rule: a transition to matched is a
// no-op when the application is already matched or accepted, so re-clicking
// "Accept" never recreates a chat thread or re-notifies.
package status

import "fmt"

type Status string

const (
	Applied     Status = "applied"
	Shortlisted Status = "shortlisted"
	Rejected    Status = "rejected"
	Matched     Status = "matched"
	Accepted    Status = "accepted"
)

// Parse converts a raw string to a Status, returning an error for unknown
// values.
func Parse(s string) (Status, error) {
	st := Status(s)
	switch st {
	case Applied, Shortlisted, Rejected, Matched, Accepted:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// IsMatchLocked reports whether a transition to Matched must be skipped:
// the application has already been matched (or went further to accepted),
// and the match side effects must not run again.
func IsMatchLocked(s Status) bool {
	return s == Matched || s == Accepted
}
