// Package model defines the core data structures used throughout personaguard.
//
// This package contains the following main types:
//   - Persona: An isolated identity with its own keys and private attributes
//   - PrivacyWarning: One detected instance of cross-persona correlation risk
//   - PrivacyScore: A weighted 0-100 isolation score with letter grade
//   - PrivacyGraph: A node/link representation of persona linkage for rendering
//   - AnalysisReport: The aggregate result of one analysis run
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (analyzer, report, vault, ledger) need to use
// these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// vault storage.
package model
