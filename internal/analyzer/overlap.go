package analyzer

import (
	"fmt"

	"github.com/nao1215/personaguard/internal/model"
)

// AccountOverlapDetector flags connected account strings that appear
// verbatim under more than one persona. A shared account is the most
// damaging leak class: anyone who can see both personas sees the same
// account and links them immediately.
//
// Comparison is exact: no case folding or whitespace normalization is
// applied to account strings. Accounts without a platform prefix are
// still compared; the raw string is the unit of overlap.
type AccountOverlapDetector struct{}

// NewAccountOverlapDetector creates a new AccountOverlapDetector.
func NewAccountOverlapDetector() *AccountOverlapDetector {
	return &AccountOverlapDetector{}
}

// Name returns the detector name.
func (d *AccountOverlapDetector) Name() string {
	return "account_overlap"
}

// Detect builds a mapping from raw account string to the personas listing
// it and emits one warning per account shared by two or more distinct
// personas. Iteration follows persona input order, and within a persona,
// account list order, so output ordering is reproducible.
func (d *AccountOverlapDetector) Detect(personas []model.Persona) []model.PrivacyWarning {
	// accountOrder preserves first-encounter order of distinct accounts;
	// owners maps each account to its distinct owner ids in encounter order.
	accountOrder := make([]string, 0)
	owners := make(map[string][]string)

	for _, p := range personas {
		for _, account := range p.PrivateData.Accounts {
			ids, seen := owners[account]
			if !seen {
				accountOrder = append(accountOrder, account)
			}
			// The same persona listing an identical account twice must not
			// count against itself: require distinct persona ids.
			if containsID(ids, p.ID) {
				continue
			}
			owners[account] = append(ids, p.ID)
		}
	}

	warnings := make([]model.PrivacyWarning, 0)
	for _, account := range accountOrder {
		ids := owners[account]
		if len(ids) < 2 {
			continue
		}

		// The quoted account string in the description is load-bearing:
		// recommendation generation falls back to re-extracting it when the
		// structured Value is absent.
		description := fmt.Sprintf("Account %q is connected to %d personas", account, len(ids))
		warnings = append(warnings, model.NewWarning(model.TypeAccountOverlap, description, account, ids))
	}

	return warnings
}

// containsID reports whether ids already contains id.
func containsID(ids []string, id string) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

// Ensure AccountOverlapDetector implements Detector.
var _ Detector = (*AccountOverlapDetector)(nil)
