package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "personaguard"

	// DefaultVaultFile is the vault file name inside the XDG data directory.
	DefaultVaultFile = "vault.bin"

	// DefaultKeyDirName is the key directory name inside the XDG data
	// directory. Seeds live here, one PEM file per persona.
	DefaultKeyDirName = "keys"
)

// Config holds all configuration options for PersonaGuard.
// This struct is designed to be populated from CLI flags and the optional
// YAML config file, then passed through the application via dependency
// injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// for simplicity. The number of options is manageable, and nesting would
// add complexity without significant benefit.
type Config struct {
	// VaultPath is the encrypted persona vault file location.
	// Defaults to the XDG data directory.
	VaultPath string

	// KeyDir is the directory holding per-persona Ed25519 seed files.
	// Defaults to the XDG data directory.
	KeyDir string

	// LedgerDir is the directory for the SQLite ledger storing proofs and
	// analysis history. When empty, analysis results are not persisted.
	LedgerDir string

	// SaveToLedger indicates whether to save analysis results to the
	// ledger. Automatically set to true when LedgerDir is configured.
	SaveToLedger bool

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONReport enables JSON report output instead of human-readable
	// format. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables GitHub Flavored Markdown report output.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .personaguard in the current
	// directory and then in the user's home directory.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use
// cases. Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because the storage paths are non-zero defaults. This also
// serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		VaultPath: filepath.Join(XDGDataDir(), DefaultVaultFile),
		KeyDir:    filepath.Join(XDGDataDir(), DefaultKeyDirName),
		LedgerDir: XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for PersonaGuard.
// On Linux: ~/.local/share/personaguard
// On macOS: ~/Library/Application Support/personaguard
// On Windows: %LOCALAPPDATA%\personaguard
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for PersonaGuard.
// On Linux: ~/.config/personaguard
// On macOS: ~/Library/Application Support/personaguard
// On Windows: %APPDATA%\personaguard
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// We chose to return the first error found rather than collecting all
// errors because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if c.VaultPath == "" {
		return ErrNoVaultPath
	}

	if c.KeyDir == "" {
		return ErrNoKeyDir
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}
