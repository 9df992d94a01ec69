// Package analyzer detects cross-persona privacy leaks.
//
// # Purpose
//
// This package inspects the full set of a user's personas and flags signals
// that could let an observer link two personas to the same real-world actor:
// shared connected accounts, lexically similar usernames, and similar private
// notes. It converts detected issues into a weighted 0-100 score with a
// letter grade, actionable recommendations, and a link graph for rendering.
//
// # Design Philosophy
//
// The analyzer follows a modular detector pattern where each leak class is
// implemented as a separate Detector. This design was chosen because:
//  1. Each leak class has unique logic and severity
//  2. Makes it easy to add new detectors without modifying existing code
//  3. Simplifies testing of individual detection components
//
// Leaks are inherently cross-persona: detectors always receive the full
// persona set, and a set of zero or one personas short-circuits to no
// warnings before any detector runs.
//
// # Guarantees
//
// All operations are pure functions over in-memory data: no I/O, no shared
// mutable state, safe for concurrent calls. Personas are never mutated;
// every finding is returned as a new value. Malformed input (account strings
// without a platform prefix, empty notes) is skipped, never rejected.
//
// # Severity Levels
//
// Each detector emits at a fixed tier:
//   - high: verbatim account overlap (direct linkage)
//   - medium: username reuse across personas (pattern linkage)
//   - low: metadata similarity (stylistic linkage)
package analyzer
