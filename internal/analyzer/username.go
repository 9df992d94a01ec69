package analyzer

import (
	"fmt"
	"strings"

	"github.com/nao1215/personaguard/internal/model"
	"github.com/nao1215/personaguard/internal/similarity"
)

// UsernameReuseDetector flags usernames that are not identical but lexically
// close enough to plausibly be created by the same person across platforms.
//
// Only account strings of the exact shape "platform:username" participate;
// strings with zero or more than one colon are silently skipped. Usernames
// are lowercased before comparison, and comparison runs over distinct
// username string values, so one persona reusing the same handle on two
// platforms does not pair against itself.
type UsernameReuseDetector struct{}

// NewUsernameReuseDetector creates a new UsernameReuseDetector.
func NewUsernameReuseDetector() *UsernameReuseDetector {
	return &UsernameReuseDetector{}
}

// Name returns the detector name.
func (d *UsernameReuseDetector) Name() string {
	return "username_reuse"
}

// Detect collects a username -> persona-id multimap and compares every
// unordered pair of distinct username values. Pairs scoring strictly above
// the reuse threshold produce one warning whose affected set is the
// deduplicated union of both usernames' owners.
func (d *UsernameReuseDetector) Detect(personas []model.Persona) []model.PrivacyWarning {
	// usernameOrder preserves first-encounter order so the i < j pair loop
	// is deterministic for identical input.
	usernameOrder := make([]string, 0)
	owners := make(map[string][]string)

	for _, p := range personas {
		for _, account := range p.PrivateData.Accounts {
			parts := strings.Split(account, ":")
			if len(parts) != 2 {
				continue
			}

			username := strings.ToLower(parts[1])
			ids, seen := owners[username]
			if !seen {
				usernameOrder = append(usernameOrder, username)
			}
			if containsID(ids, p.ID) {
				continue
			}
			owners[username] = append(ids, p.ID)
		}
	}

	warnings := make([]model.PrivacyWarning, 0)
	for i := 0; i < len(usernameOrder); i++ {
		for j := i + 1; j < len(usernameOrder); j++ {
			a, b := usernameOrder[i], usernameOrder[j]

			if similarity.Score(a, b) <= usernameSimilarityThreshold {
				continue
			}

			affected := make([]string, 0, len(owners[a])+len(owners[b]))
			for _, id := range owners[a] {
				affected = append(affected, id)
			}
			for _, id := range owners[b] {
				if !containsID(affected, id) {
					affected = append(affected, id)
				}
			}

			description := fmt.Sprintf("Usernames %q and %q are suspiciously similar", a, b)
			value := a + " / " + b
			warnings = append(warnings, model.NewWarning(model.TypeUsernameReuse, description, value, affected))
		}
	}

	return warnings
}

// Ensure UsernameReuseDetector implements Detector.
var _ Detector = (*UsernameReuseDetector)(nil)
