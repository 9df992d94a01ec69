package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestNewConfig tests default construction.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	c := NewConfig()
	if c.VaultPath == "" {
		t.Error("expected non-empty default vault path")
	}
	if c.KeyDir == "" {
		t.Error("expected non-empty default key directory")
	}
	if c.LedgerDir == "" {
		t.Error("expected non-empty default ledger directory")
	}
	if filepath.Base(c.VaultPath) != DefaultVaultFile {
		t.Errorf("expected vault file %q, got %q", DefaultVaultFile, filepath.Base(c.VaultPath))
	}
	if c.JSONReport || c.MarkdownReport {
		t.Error("expected simple report format by default")
	}
}

// TestValidate tests configuration validation.
func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "defaults are valid",
			mutate:  func(*Config) {},
			wantErr: nil,
		},
		{
			name:    "empty vault path",
			mutate:  func(c *Config) { c.VaultPath = "" },
			wantErr: ErrNoVaultPath,
		},
		{
			name:    "empty key directory",
			mutate:  func(c *Config) { c.KeyDir = "" },
			wantErr: ErrNoKeyDir,
		},
		{
			name: "conflicting report formats",
			mutate: func(c *Config) {
				c.JSONReport = true
				c.MarkdownReport = true
			},
			wantErr: ErrConflictingReportFormats,
		},
		{
			name:    "markdown alone is fine",
			mutate:  func(c *Config) { c.MarkdownReport = true },
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := NewConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestLoadConfigFile tests YAML loading and overlay behavior.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nope.yaml")
		if _, err := LoadConfigFile(path); !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte("vaultPath: [unclosed"), 0600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})

	t.Run("applies set fields only", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		content := "vaultPath: /custom/vault.bin\nformat: markdown\nverbose: true\n"
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		c := NewConfig()
		defaultKeyDir := c.KeyDir
		cf.Apply(c)

		if c.VaultPath != "/custom/vault.bin" {
			t.Errorf("expected overridden vault path, got %q", c.VaultPath)
		}
		if c.KeyDir != defaultKeyDir {
			t.Errorf("expected key directory untouched, got %q", c.KeyDir)
		}
		if !c.MarkdownReport {
			t.Error("expected markdown format to be applied")
		}
		if !c.Verbose {
			t.Error("expected verbose to be applied")
		}
	})
}

// TestFindConfigFile tests the search order.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit path used when present", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(path, []byte("verbose: true\n"), 0600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		if got := FindConfigFile(path); got != path {
			t.Errorf("expected %q, got %q", path, got)
		}
	})

	t.Run("explicit missing path yields empty", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nope.yaml")
		if got := FindConfigFile(path); got != "" {
			t.Errorf("expected empty, got %q", got)
		}
	})
}
