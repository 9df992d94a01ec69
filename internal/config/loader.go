package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".personaguard"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .personaguard configuration file.
// All fields are optional; unset values keep their CLI or built-in
// defaults.
type File struct {
	// VaultPath overrides the encrypted vault location.
	VaultPath string `yaml:"vaultPath,omitempty"`

	// KeyDir overrides the seed directory.
	KeyDir string `yaml:"keyDir,omitempty"`

	// LedgerDir overrides the ledger directory.
	LedgerDir string `yaml:"ledgerDir,omitempty"`

	// Format selects the default report format: "simple", "json", or
	// "markdown".
	Format string `yaml:"format,omitempty"`

	// Verbose enables debug logging by default.
	Verbose bool `yaml:"verbose,omitempty"`
}

// LoadConfigFile loads settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error appropriately based on whether the
// config file path was explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// Apply overlays the file's settings onto c. Only set fields override.
func (cf *File) Apply(c *Config) {
	if cf.VaultPath != "" {
		c.VaultPath = cf.VaultPath
	}
	if cf.KeyDir != "" {
		c.KeyDir = cf.KeyDir
	}
	if cf.LedgerDir != "" {
		c.LedgerDir = cf.LedgerDir
	}
	switch cf.Format {
	case "json":
		c.JSONReport = true
	case "markdown":
		c.MarkdownReport = true
	}
	if cf.Verbose {
		c.Verbose = true
	}
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .personaguard in the current directory
// 3. Look for .personaguard in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if
// not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
