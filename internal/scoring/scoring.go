// Package scoring computes the compatibility score between a candidate
// profile and a posting. It is pure: no state, no I/O, safe to call in bulk
// when ranking every applicant of a posting.
//
// Required-skill coverage dominates the score (up to 80 of 100 points);
// preferred skills add a bonus of up to 20. The sum is clamped to 100.
package scoring

import (
	"math"
	"strings"

	"anoa.com/magangmatch/internal/model"
)

// Breakdown explains how a score was assembled.
type Breakdown struct {
	RequiredCoveragePct float64 `json:"required_coverage_pct"`
	PreferredBonus      float64 `json:"preferred_bonus"`
	MatchedRequired     int     `json:"matched_required"`
	MatchedPreferred    int     `json:"matched_preferred"`
	RequiredTotal       int     `json:"required_total"`
	PreferredTotal      int     `json:"preferred_total"`
}

// Result is the outcome of one candidate/posting comparison.
// MissingRequiredSkills lets the UI explain the gap to the candidate.
type Result struct {
	TotalScore            int       `json:"total_score"`
	MatchedSkills         []string  `json:"matched_skills"`
	MissingRequiredSkills []string  `json:"missing_required_skills"`
	Breakdown             Breakdown `json:"breakdown"`
}

// Compute scores profile against posting. Skill comparison is
// case-insensitive and order-independent. A nil profile or posting yields a
// zeroed result rather than an error.
func Compute(profile *model.CandidateProfile, posting *model.Posting) Result {
	res := Result{
		MatchedSkills:         []string{},
		MissingRequiredSkills: []string{},
	}
	if profile == nil || posting == nil {
		return res
	}

	have := make(map[string]bool, len(profile.Skills))
	for _, s := range profile.Skills {
		if key := normalize(s); key != "" {
			have[key] = true
		}
	}

	for _, s := range posting.RequiredSkills {
		key := normalize(s)
		if key == "" {
			continue
		}
		res.Breakdown.RequiredTotal++
		if have[key] {
			res.Breakdown.MatchedRequired++
			res.MatchedSkills = append(res.MatchedSkills, s)
		} else {
			res.MissingRequiredSkills = append(res.MissingRequiredSkills, s)
		}
	}
	for _, s := range posting.PreferredSkills {
		key := normalize(s)
		if key == "" {
			continue
		}
		res.Breakdown.PreferredTotal++
		if have[key] {
			res.Breakdown.MatchedPreferred++
			res.MatchedSkills = append(res.MatchedSkills, s)
		}
	}

	// max(1, n) keeps a posting without required skills at 0% instead of NaN.
	res.Breakdown.RequiredCoveragePct = float64(res.Breakdown.MatchedRequired) /
		math.Max(1, float64(res.Breakdown.RequiredTotal)) * 100
	res.Breakdown.PreferredBonus = float64(res.Breakdown.MatchedPreferred) /
		math.Max(1, float64(res.Breakdown.PreferredTotal)) * 20

	total := res.Breakdown.RequiredCoveragePct*0.8 + res.Breakdown.PreferredBonus
	res.TotalScore = int(math.Round(math.Min(100, total)))
	return res
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
