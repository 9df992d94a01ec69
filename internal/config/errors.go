package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoVaultPath is returned when the vault path is empty.
	// Every command needs a vault location to read or write personas.
	ErrNoVaultPath = errors.New("no vault path specified")

	// ErrNoKeyDir is returned when the key directory is empty.
	// Proof signing and verification need somewhere to store seeds.
	ErrNoKeyDir = errors.New("no key directory specified")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
