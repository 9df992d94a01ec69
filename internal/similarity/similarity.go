// Package similarity computes normalized string similarity scores.
//
// It is the leaf dependency of the privacy analyzer: both the username
// detector and the metadata detector rely on it to decide whether two
// strings are close enough to indicate the same author.
package similarity

// Score returns a normalized similarity between a and b in [0, 1].
//
// It returns exactly 1.0 when a == b (including both empty) and 0.0 when
// exactly one of the strings is empty. Otherwise it computes the
// Levenshtein edit distance and normalizes it by the longer length:
// 1 - distance/max(len(a), len(b)).
//
// Comparison is case-sensitive as given; callers that want case-insensitive
// behavior must lowercase before calling. Cost is O(len(a)*len(b)) in time,
// O(min) in space, so callers must bound the comparison set size.
func Score(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	distance := levenshtein(a, b)
	longer := len(a)
	if len(b) > longer {
		longer = len(b)
	}

	return 1.0 - float64(distance)/float64(longer)
}

// levenshtein computes the edit distance between two non-empty strings
// using the classic two-row dynamic programming formulation. Comparison is
// byte-wise, matching the length normalization in Score.
func levenshtein(a, b string) int {
	// Keep the shorter string in the inner dimension to minimize allocation.
	if len(a) < len(b) {
		a, b = b, a
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			deletion := prev[j] + 1
			insertion := curr[j-1] + 1
			substitution := prev[j-1] + cost

			min := deletion
			if insertion < min {
				min = insertion
			}
			if substitution < min {
				min = substitution
			}
			curr[j] = min
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
