package model

// PrivacyWarning is one detected instance of cross-persona correlation risk.
// Warnings are constructed fresh on every analysis run and are never written
// back onto persona records.
type PrivacyWarning struct {
	// Type identifies the detector that produced this warning.
	Type WarningType `json:"type"`

	// Severity is the fixed risk tier for this warning type.
	Severity Severity `json:"severity"`

	// SeverityText is the human-readable severity.
	SeverityText string `json:"severity_text"`

	// Description is a precomputed human-readable explanation. For account
	// overlap it embeds the offending account string in double quotes;
	// recommendation generation can fall back to extracting it from here.
	Description string `json:"description"`

	// Value carries the identifying value behind the warning (the
	// overlapping account string, or the similar username pair) as
	// structured data, so consumers do not have to parse Description.
	Value string `json:"value,omitempty"`

	// AffectedPersonas is the set of persona ids involved, stored in
	// encounter order with duplicates removed before emission.
	AffectedPersonas []string `json:"affected_personas"`
}

// NewWarning creates a warning of the given type with its fixed severity
// filled in from the type mapping.
func NewWarning(warningType WarningType, description, value string, affected []string) PrivacyWarning {
	severity := GetSeverity(warningType)
	return PrivacyWarning{
		Type:             warningType,
		Severity:         severity,
		SeverityText:     severity.String(),
		Description:      description,
		Value:            value,
		AffectedPersonas: affected,
	}
}
