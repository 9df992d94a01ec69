package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/personaguard/internal/vault"
)

// TestCreateCmd tests persona creation end to end.
func TestCreateCmd(t *testing.T) {
	cfgPath, dir := writeTestConfig(t)

	output, err := runCommand(t, "-c", cfgPath, "create", "work-alias",
		"--notes", "freelance contracts", "--passphrase", testPassphrase)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(output, "Created persona \"work-alias\"") {
		t.Errorf("expected creation message, got %q", output)
	}

	v := vault.New(filepath.Join(dir, "vault.bin"))
	personas, err := v.Load([]byte(testPassphrase))
	if err != nil {
		t.Fatalf("failed to load vault: %v", err)
	}
	if len(personas) != 1 {
		t.Fatalf("expected 1 persona, got %d", len(personas))
	}

	p := personas[0]
	if p.Name != "work-alias" {
		t.Errorf("expected name 'work-alias', got %q", p.Name)
	}
	if p.ID == "" {
		t.Error("expected non-empty persona id")
	}
	if p.PublicKey == "" {
		t.Error("expected persona to carry a public key")
	}
	if p.PrivateData.Notes != "freelance contracts" {
		t.Errorf("expected notes to be stored, got %q", p.PrivateData.Notes)
	}
	if p.IsPublic {
		t.Error("expected persona to be private by default")
	}
	if p.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	// The seed is written next to the vault, never inside it.
	seedFile := filepath.Join(dir, "keys", p.ID+".seed")
	if _, err := os.Stat(seedFile); err != nil {
		t.Errorf("expected seed file %s: %v", seedFile, err)
	}
}

// TestCreateCmdPublicFlag tests the --public flag.
func TestCreateCmdPublicFlag(t *testing.T) {
	cfgPath, dir := writeTestConfig(t)

	if _, err := runCommand(t, "-c", cfgPath, "create", "open-alias",
		"--public", "--passphrase", testPassphrase); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	personas, err := vault.New(filepath.Join(dir, "vault.bin")).Load([]byte(testPassphrase))
	if err != nil {
		t.Fatalf("failed to load vault: %v", err)
	}
	if !personas[0].IsPublic {
		t.Error("expected persona to be public")
	}
}

// TestListCmd tests persona listing.
func TestListCmd(t *testing.T) {
	cfgPath, _ := writeTestConfig(t)

	t.Run("errors when vault does not exist", func(t *testing.T) {
		_, err := runCommand(t, "-c", cfgPath, "list", "--passphrase", testPassphrase)
		if err == nil {
			t.Error("expected error for missing vault")
		}
	})

	t.Run("lists created personas", func(t *testing.T) {
		for _, name := range []string{"work", "gaming"} {
			if _, err := runCommand(t, "-c", cfgPath, "create", name,
				"--passphrase", testPassphrase); err != nil {
				t.Fatalf("failed to create persona %q: %v", name, err)
			}
		}

		output, err := runCommand(t, "-c", cfgPath, "list", "--passphrase", testPassphrase)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"ID", "NAME", "work", "gaming", "private"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected list output to contain %q, got %q", want, output)
			}
		}
	})

	t.Run("rejects wrong passphrase", func(t *testing.T) {
		_, err := runCommand(t, "-c", cfgPath, "list", "--passphrase", "wrong")
		if err == nil {
			t.Error("expected error for wrong passphrase")
		}
	})
}

// TestConnectCmd tests account connection.
func TestConnectCmd(t *testing.T) {
	cfgPath, dir := writeTestConfig(t)

	if _, err := runCommand(t, "-c", cfgPath, "create", "work",
		"--passphrase", testPassphrase); err != nil {
		t.Fatalf("failed to create persona: %v", err)
	}

	t.Run("connects account", func(t *testing.T) {
		output, err := runCommand(t, "-c", cfgPath, "connect", "work", "twitter:@workalias",
			"--passphrase", testPassphrase)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output, "Connected account") {
			t.Errorf("expected connect message, got %q", output)
		}

		personas, err := vault.New(filepath.Join(dir, "vault.bin")).Load([]byte(testPassphrase))
		if err != nil {
			t.Fatalf("failed to load vault: %v", err)
		}
		if !personas[0].HasAccount("twitter:@workalias") {
			t.Error("expected account to be recorded")
		}
	})

	t.Run("rejects duplicate account", func(t *testing.T) {
		_, err := runCommand(t, "-c", cfgPath, "connect", "work", "twitter:@workalias",
			"--passphrase", testPassphrase)
		if err == nil {
			t.Fatal("expected error for duplicate account")
		}
		if !strings.Contains(err.Error(), "already lists") {
			t.Errorf("expected 'already lists' error, got %v", err)
		}
	})

	t.Run("rejects unknown persona", func(t *testing.T) {
		_, err := runCommand(t, "-c", cfgPath, "connect", "nobody", "twitter:@x",
			"--passphrase", testPassphrase)
		if err == nil {
			t.Error("expected error for unknown persona")
		}
	})
}

// TestDisconnectCmd tests account removal.
func TestDisconnectCmd(t *testing.T) {
	cfgPath, dir := writeTestConfig(t)

	if _, err := runCommand(t, "-c", cfgPath, "create", "work",
		"--passphrase", testPassphrase); err != nil {
		t.Fatalf("failed to create persona: %v", err)
	}
	for _, account := range []string{"twitter:@a", "github:a"} {
		if _, err := runCommand(t, "-c", cfgPath, "connect", "work", account,
			"--passphrase", testPassphrase); err != nil {
			t.Fatalf("failed to connect %q: %v", account, err)
		}
	}

	t.Run("disconnects exact account", func(t *testing.T) {
		output, err := runCommand(t, "-c", cfgPath, "disconnect", "work", "twitter:@a",
			"--passphrase", testPassphrase)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output, "Disconnected account") {
			t.Errorf("expected disconnect message, got %q", output)
		}

		personas, err := vault.New(filepath.Join(dir, "vault.bin")).Load([]byte(testPassphrase))
		if err != nil {
			t.Fatalf("failed to load vault: %v", err)
		}
		if personas[0].HasAccount("twitter:@a") {
			t.Error("expected account to be removed")
		}
		if !personas[0].HasAccount("github:a") {
			t.Error("expected other accounts to survive")
		}
	})

	t.Run("rejects account not listed", func(t *testing.T) {
		_, err := runCommand(t, "-c", cfgPath, "disconnect", "work", "twitter:@a",
			"--passphrase", testPassphrase)
		if err == nil {
			t.Fatal("expected error for absent account")
		}
		if !strings.Contains(err.Error(), "does not list") {
			t.Errorf("expected 'does not list' error, got %v", err)
		}
	})
}
