package analyzer

import (
	"fmt"
	"strings"

	"github.com/nao1215/personaguard/internal/model"
)

// Recommendation text. These are fixed user-facing strings; detectors supply
// the per-account detail.
const (
	recommendOverlapGeneric = "Disconnect accounts that are shared between personas; a shared account links them directly."
	recommendUsername       = "Choose unrelated usernames for each persona; similar handles can be linked by pattern analysis."
	recommendMetadata       = "Rewrite persona notes so they do not share phrasing or boilerplate."
	recommendStyle          = "Vary your writing style between personas to resist stylometric correlation."
	recommendTiming         = "Avoid acting from multiple personas at the same times of day; timing patterns can link them."
	recommendAllClear       = "No privacy issues detected. Your personas are well isolated."
)

// Recommendations converts a warning list into ordered, actionable
// instruction strings.
//
// Output order: the account overlap block (one generic instruction plus one
// per-account instruction naming each overlapping account), then one generic
// username instruction, then one generic metadata instruction, then two
// general hardening suggestions. An empty warning list yields exactly one
// positive-reinforcement message and nothing else.
//
// Pure function: deterministic, no side effects.
func Recommendations(warnings []model.PrivacyWarning) []string {
	if len(warnings) == 0 {
		return []string{recommendAllClear}
	}

	recommendations := make([]string, 0)

	var hasOverlap, hasReuse, hasMetadata bool
	for _, w := range warnings {
		switch w.Type {
		case model.TypeAccountOverlap:
			hasOverlap = true
		case model.TypeUsernameReuse:
			hasReuse = true
		case model.TypeMetadataSimilarity:
			hasMetadata = true
		}
	}

	if hasOverlap {
		recommendations = append(recommendations, recommendOverlapGeneric)
		for _, w := range warnings {
			if w.Type != model.TypeAccountOverlap {
				continue
			}
			account := overlappingAccount(w)
			if account == "" {
				// Extraction failure is not an error; the per-account
				// instruction for this warning is simply skipped.
				continue
			}
			recommendations = append(recommendations, fmt.Sprintf("Remove account %q from all but one persona.", account))
		}
	}

	if hasReuse {
		recommendations = append(recommendations, recommendUsername)
	}

	if hasMetadata {
		recommendations = append(recommendations, recommendMetadata)
	}

	recommendations = append(recommendations, recommendStyle, recommendTiming)

	return recommendations
}

// overlappingAccount recovers the account string behind an overlap warning.
// The structured Value field is preferred; when absent, the substring
// between the first pair of double quotes in the description is used.
// Returns empty when neither source yields an account.
func overlappingAccount(w model.PrivacyWarning) string {
	if w.Value != "" {
		return w.Value
	}
	return firstQuoted(w.Description)
}

// firstQuoted extracts the substring between the first pair of double
// quotes in s, or empty when no such pair exists.
func firstQuoted(s string) string {
	start := strings.Index(s, `"`)
	if start < 0 {
		return ""
	}
	rest := s[start+1:]
	end := strings.Index(rest, `"`)
	if end < 0 {
		return ""
	}
	return rest[:end]
}
