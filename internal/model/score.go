package model

// PrivacyScore is the weighted isolation score derived from one analysis
// run. It is recomputed from the warning list on every call, never read
// back from a previous run.
type PrivacyScore struct {
	// Score is the overall 0-100 score, rounded to the nearest integer.
	Score int `json:"score"`

	// Grade is the letter grade derived from Score by fixed thresholds.
	// One of A+, A, B, C, D, F.
	Grade string `json:"grade"`

	// AccountIsolation is the 0-100 sub-score derived from the count of
	// account overlap warnings.
	AccountIsolation int `json:"account_isolation"`

	// UsernameUniqueness is the 0-100 sub-score derived from the count of
	// username reuse warnings.
	UsernameUniqueness int `json:"username_uniqueness"`

	// MetadataSeparation is the 0-100 sub-score derived from the count of
	// metadata similarity warnings.
	MetadataSeparation int `json:"metadata_separation"`
}
