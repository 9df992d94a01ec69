package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/nao1215/personaguard/internal/model"
)

// testPassphrase is used for every test vault.
const testPassphrase = "correct horse battery staple"

// writeTestConfig creates a configuration file whose vault, key, and
// ledger locations all live under a fresh temporary directory. It
// returns the config file path and the directory.
func writeTestConfig(t *testing.T) (string, string) {
	t.Helper()

	dir := t.TempDir()
	content := fmt.Sprintf("vaultPath: %s\nkeyDir: %s\nledgerDir: %s\n",
		filepath.Join(dir, "vault.bin"),
		filepath.Join(dir, "keys"),
		filepath.Join(dir, "ledger"),
	)
	path := filepath.Join(dir, ".personaguard")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path, dir
}

// runCommand executes the CLI with the given arguments and returns the
// combined output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// TestFindPersona tests persona resolution by id and name.
func TestFindPersona(t *testing.T) {
	t.Parallel()

	personas := []model.Persona{
		{ID: "id-1", Name: "work"},
		{ID: "id-2", Name: "gaming"},
		{ID: "id-3", Name: "gaming"},
	}

	t.Run("resolves by id", func(t *testing.T) {
		t.Parallel()
		i, err := findPersona(personas, "id-2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if i != 1 {
			t.Errorf("expected index 1, got %d", i)
		}
	})

	t.Run("resolves by unique name", func(t *testing.T) {
		t.Parallel()
		i, err := findPersona(personas, "work")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if i != 0 {
			t.Errorf("expected index 0, got %d", i)
		}
	})

	t.Run("id wins over name", func(t *testing.T) {
		t.Parallel()
		mixed := []model.Persona{
			{ID: "work", Name: "other"},
			{ID: "id-9", Name: "work"},
		}
		i, err := findPersona(mixed, "work")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if i != 0 {
			t.Errorf("expected index 0, got %d", i)
		}
	})

	t.Run("ambiguous name errors", func(t *testing.T) {
		t.Parallel()
		if _, err := findPersona(personas, "gaming"); err == nil {
			t.Error("expected error for ambiguous name")
		}
	})

	t.Run("unknown reference errors", func(t *testing.T) {
		t.Parallel()
		if _, err := findPersona(personas, "nope"); err == nil {
			t.Error("expected error for unknown persona")
		}
	})
}

// TestReadPassphraseSources tests passphrase resolution order.
func TestReadPassphraseSources(t *testing.T) {
	t.Run("flag wins over environment", func(t *testing.T) {
		t.Setenv(passphraseEnv, "from-env")

		cmd := NewCreateCmd()
		if err := cmd.Flags().Set("passphrase", "from-flag"); err != nil {
			t.Fatalf("failed to set flag: %v", err)
		}
		got, err := readPassphrase(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(got) != "from-flag" {
			t.Errorf("expected passphrase from flag, got %q", got)
		}
	})

	t.Run("environment used when flag empty", func(t *testing.T) {
		t.Setenv(passphraseEnv, "from-env")

		cmd := NewCreateCmd()
		got, err := readPassphrase(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(got) != "from-env" {
			t.Errorf("expected passphrase from environment, got %q", got)
		}
	})

	t.Run("prompts on stdin as last resort", func(t *testing.T) {
		t.Setenv(passphraseEnv, "")

		cmd := NewCreateCmd()
		cmd.SetIn(bytes.NewBufferString("typed secret\n"))
		cmd.SetOut(&bytes.Buffer{})
		got, err := readPassphrase(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(got) != "typed secret" {
			t.Errorf("expected trimmed stdin passphrase, got %q", got)
		}
	})
}
