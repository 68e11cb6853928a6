package status_test

import (
	"testing"

	"anoa.com/magangmatch/internal/status"
)

func TestParse_ValidValues(t *testing.T) {
	valid := []string{"applied", "shortlisted", "rejected", "matched", "accepted"}
	for _, s := range valid {
		got, err := status.Parse(s)
		if err != nil {
			t.Errorf("Parse(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("Parse(%q) = %q, want %q", s, got, s)
		}
	}
}

func TestParse_InvalidValue(t *testing.T) {
	for _, s := range []string{"", "APPLIED", "withdrawn", "hired"} {
		if _, err := status.Parse(s); err == nil {
			t.Errorf("Parse(%q) expected error, got nil", s)
		}
	}
}

func TestIsMatchLocked(t *testing.T) {
	locked := []status.Status{status.Matched, status.Accepted}
	for _, s := range locked {
		if !status.IsMatchLocked(s) {
			t.Errorf("IsMatchLocked(%s) should return true", s)
		}
	}
	open := []status.Status{status.Applied, status.Shortlisted, status.Rejected}
	for _, s := range open {
		if status.IsMatchLocked(s) {
			t.Errorf("IsMatchLocked(%s) should return false", s)
		}
	}
}
