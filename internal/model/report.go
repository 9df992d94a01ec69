package model

import "time"

// AnalysisReport is the aggregate result of one privacy analysis run.
// It bundles the warnings, score, recommendations, and graph so report
// writers and the CLI can consume a single value.
//
// Design decision: We keep this as a plain data aggregate built by the
// analyzer rather than computing pieces lazily in the writers because:
// 1. It gives every output format the same curated view
// 2. It can be serialized to JSON for tools that want structured output
// 3. It separates presentation concerns from detection
type AnalysisReport struct {
	// DateAnalyzed is when the analysis was performed.
	DateAnalyzed time.Time `json:"date_analyzed"`

	// PersonaCount is the number of personas that went into the analysis.
	PersonaCount int `json:"persona_count"`

	// === Severity Summary ===

	// HighCount is the number of high severity warnings.
	HighCount int `json:"high_count"`

	// MediumCount is the number of medium severity warnings.
	MediumCount int `json:"medium_count"`

	// LowCount is the number of low severity warnings.
	LowCount int `json:"low_count"`

	// === Results ===

	// Warnings contains all warnings in detector emission order.
	Warnings []PrivacyWarning `json:"warnings"`

	// Score is the weighted privacy score derived from Warnings.
	Score PrivacyScore `json:"score"`

	// Recommendations contains the actionable instruction strings.
	Recommendations []string `json:"recommendations"`

	// Graph is the node/link linkage representation.
	Graph PrivacyGraph `json:"graph"`
}

// NewAnalysisReport assembles a report from the analysis outputs.
// Severity counts are derived from the warning list.
func NewAnalysisReport(personaCount int, warnings []PrivacyWarning, score PrivacyScore, recommendations []string, graph PrivacyGraph) *AnalysisReport {
	r := &AnalysisReport{
		DateAnalyzed:    time.Now(),
		PersonaCount:    personaCount,
		Warnings:        warnings,
		Score:           score,
		Recommendations: recommendations,
		Graph:           graph,
	}

	for _, w := range warnings {
		switch w.Severity {
		case SeverityHigh:
			r.HighCount++
		case SeverityMedium:
			r.MediumCount++
		case SeverityLow:
			r.LowCount++
		}
	}

	return r
}

// TotalWarnings returns the total number of warnings.
func (r *AnalysisReport) TotalWarnings() int {
	return len(r.Warnings)
}

// HasWarnings returns true if the analysis produced any warnings.
func (r *AnalysisReport) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// WarningsBySeverity returns warnings filtered by severity.
func (r *AnalysisReport) WarningsBySeverity(severity Severity) []PrivacyWarning {
	var result []PrivacyWarning
	for _, w := range r.Warnings {
		if w.Severity == severity {
			result = append(result, w)
		}
	}
	return result
}
