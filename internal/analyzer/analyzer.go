package analyzer

import (
	"github.com/nao1215/personaguard/internal/model"
)

// Similarity thresholds and the severity-per-type mapping are contractual
// constants: output depends on their exact values, and the tests pin them.
const (
	// usernameSimilarityThreshold is the strict lower bound above which two
	// distinct usernames are flagged as reuse.
	usernameSimilarityThreshold = 0.7

	// metadataSimilarityThreshold is the strict lower bound above which two
	// personas' notes are flagged as similar.
	metadataSimilarityThreshold = 0.5
)

// Detector defines the interface for individual leak detectors.
// Each detector focuses on one class of cross-persona correlation.
//
// Design decision: We use an interface rather than concrete types because:
//  1. Allows for easy extension with new detectors
//  2. Enables testing with mock detectors
//  3. Keeps the orchestrator free of per-detector knowledge
type Detector interface {
	// Name returns the detector's name for logging and reporting.
	Name() string

	// Detect runs the detection over the full persona set and returns the
	// warnings found. Implementations must not mutate the personas.
	Detect(personas []model.Persona) []model.PrivacyWarning
}

// Analyzer coordinates leak detection across all registered detectors.
//
// Design decision: Detectors run in a fixed registration order (account
// overlap, then username reuse, then metadata similarity) and their outputs
// are concatenated in that order. No deduplication happens across detector
// types: a persona pair can legitimately appear in warnings of different
// kinds, and each detector already eliminates its own duplicates.
type Analyzer struct {
	// detectors is the ordered list of registered detectors.
	detectors []Detector
}

// NewAnalyzer creates an Analyzer with all built-in detectors registered
// in their canonical order.
func NewAnalyzer() *Analyzer {
	a := &Analyzer{
		detectors: make([]Detector, 0, 3),
	}

	a.Register(NewAccountOverlapDetector())
	a.Register(NewUsernameReuseDetector())
	a.Register(NewMetadataSimilarityDetector())

	return a
}

// Register appends a detector to the run order.
func (a *Analyzer) Register(d Detector) {
	a.detectors = append(a.detectors, d)
}

// Analyze runs all registered detectors over the persona set and returns
// their warnings concatenated in registration order.
//
// A set of zero or one personas returns an empty slice immediately: a single
// persona cannot leak against itself. This is a hard short-circuit, not a
// detector-level concern.
//
// The Analyzer holds no mutable state, so Analyze is safe to call
// concurrently from multiple request contexts.
func (a *Analyzer) Analyze(personas []model.Persona) []model.PrivacyWarning {
	warnings := make([]model.PrivacyWarning, 0)

	if len(personas) <= 1 {
		return warnings
	}

	for _, d := range a.detectors {
		warnings = append(warnings, d.Detect(personas)...)
	}

	return warnings
}

// Report runs the full analysis and assembles the aggregate report:
// warnings, score, recommendations, and graph.
func (a *Analyzer) Report(personas []model.Persona) *model.AnalysisReport {
	warnings := a.Analyze(personas)
	return model.NewAnalysisReport(
		len(personas),
		warnings,
		CalculateScore(warnings),
		Recommendations(warnings),
		Graph(personas, warnings),
	)
}
