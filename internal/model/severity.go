package model

// Severity represents the risk level of a privacy warning.
// Each detector emits warnings at a fixed severity tier; severity is never
// computed per instance.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The String() method provides
// the wire representation when needed.
type Severity int

const (
	// SeverityLow indicates a weak correlation signal.
	// Example: similar free-text notes across personas. Stylistic similarity
	// requires substantial additional data before it links identities.
	SeverityLow Severity = iota

	// SeverityMedium indicates a moderate correlation signal.
	// Example: lexically close usernames on different platforms. Pattern
	// analysis of handles is a common and effective linkage technique.
	SeverityMedium

	// SeverityHigh indicates a direct linkage between personas.
	// Example: the same connected account appearing under two personas.
	// An observer who sees both personas sees the same account.
	SeverityHigh
)

// String returns the wire representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// WarningType identifies which detector produced a warning.
// This is a closed set: new detector kinds add a new type, existing types
// are never overloaded.
type WarningType string

const (
	// TypeAccountOverlap is emitted when the same connected account string
	// appears verbatim under more than one persona.
	TypeAccountOverlap WarningType = "account_overlap"

	// TypeUsernameReuse is emitted when two distinct usernames are lexically
	// close enough to plausibly belong to the same person.
	TypeUsernameReuse WarningType = "username_reuse"

	// TypeMetadataSimilarity is emitted when the private notes of two
	// personas are suspiciously similar.
	TypeMetadataSimilarity WarningType = "metadata_similarity"
)

// WarningInfo contains metadata about a warning type: its fixed severity
// and an impact description for report output.
type WarningInfo struct {
	Severity Severity
	Impact   string
}

// warningInfoMapping maps warning types to their metadata.
// This centralized mapping ensures consistent risk assessment across the
// application.
//
// Design decision: We use a map rather than embedding severity in each
// detector because:
// 1. It provides a single source of truth for the severity-per-type contract
// 2. It makes it easy to generate severity documentation
// 3. Report writers can look up impact text without importing the analyzer
var warningInfoMapping = map[WarningType]WarningInfo{
	TypeAccountOverlap: {
		Severity: SeverityHigh,
		Impact:   "The same connected account under multiple personas directly links them to one real-world actor.",
	},
	TypeUsernameReuse: {
		Severity: SeverityMedium,
		Impact:   "Similar usernames across platforms can be linked by pattern analysis even without shared accounts.",
	},
	TypeMetadataSimilarity: {
		Severity: SeverityLow,
		Impact:   "Similar private notes suggest shared authorship or copy-pasted boilerplate between personas.",
	},
}

// GetSeverity returns the fixed severity for a warning type.
// Returns SeverityLow if the warning type is not in the mapping.
func GetSeverity(warningType WarningType) Severity {
	if info, ok := warningInfoMapping[warningType]; ok {
		return info.Severity
	}
	return SeverityLow
}

// GetWarningInfo returns the full metadata for a warning type.
// Returns a default WarningInfo with SeverityLow if the type is unknown.
func GetWarningInfo(warningType WarningType) WarningInfo {
	if info, ok := warningInfoMapping[warningType]; ok {
		return info
	}
	return WarningInfo{
		Severity: SeverityLow,
		Impact:   "Unknown warning type. Review manually.",
	}
}
