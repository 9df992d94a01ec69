package analyzer

import (
	"math"

	"github.com/nao1215/personaguard/internal/model"
)

// Sub-score penalties and overall weights. Account overlap is the most
// damaging leak class, username similarity is moderate, and metadata
// similarity is the weakest signal; the weights reflect that ordering.
const (
	overlapPenalty  = 50
	reusePenalty    = 25
	metadataPenalty = 15

	accountIsolationWeight   = 0.5
	usernameUniquenessWeight = 0.3
	metadataSeparationWeight = 0.2
)

// CalculateScore derives the weighted 0-100 privacy score from a warning
// list. Warnings are counted by type, not severity; each sub-score loses a
// fixed penalty per warning of its type and clamps at zero.
//
// Pure function: deterministic, no side effects, recomputed on every call.
func CalculateScore(warnings []model.PrivacyWarning) model.PrivacyScore {
	var overlapCount, reuseCount, metadataCount int
	for _, w := range warnings {
		switch w.Type {
		case model.TypeAccountOverlap:
			overlapCount++
		case model.TypeUsernameReuse:
			reuseCount++
		case model.TypeMetadataSimilarity:
			metadataCount++
		}
	}

	accountIsolation := clampScore(100 - overlapCount*overlapPenalty)
	usernameUniqueness := clampScore(100 - reuseCount*reusePenalty)
	metadataSeparation := clampScore(100 - metadataCount*metadataPenalty)

	score := int(math.Round(
		float64(accountIsolation)*accountIsolationWeight +
			float64(usernameUniqueness)*usernameUniquenessWeight +
			float64(metadataSeparation)*metadataSeparationWeight,
	))

	return model.PrivacyScore{
		Score:              score,
		Grade:              gradeFor(score),
		AccountIsolation:   accountIsolation,
		UsernameUniqueness: usernameUniqueness,
		MetadataSeparation: metadataSeparation,
	}
}

// clampScore clamps a sub-score to a minimum of zero.
func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	return s
}

// gradeFor maps a score to its letter grade. Thresholds are evaluated in
// order, first match wins; boundary values are grade-inclusive upward
// (exactly 95 is A+).
func gradeFor(score int) string {
	switch {
	case score < 60:
		return "F"
	case score < 70:
		return "D"
	case score < 80:
		return "C"
	case score < 90:
		return "B"
	case score < 95:
		return "A"
	default:
		return "A+"
	}
}
