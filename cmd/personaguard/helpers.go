package main

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/personaguard/internal/config"
	"github.com/nao1215/personaguard/internal/keys"
	"github.com/nao1215/personaguard/internal/log"
	"github.com/nao1215/personaguard/internal/model"
	"github.com/nao1215/personaguard/internal/vault"
)

// passphraseEnv is the environment variable consulted for the vault
// passphrase before prompting.
const passphraseEnv = "PERSONAGUARD_PASSPHRASE"

// errPersonaNotFound is returned when an id or name matches no persona.
var errPersonaNotFound = errors.New("persona not found")

// buildConfig creates a Config from persistent flags and the optional
// configuration file.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	configFilePath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg.ConfigFilePath = configFilePath

	// If the user explicitly specified a config file path, error if not
	// found. If no path specified, silently skip when no file is found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cf.Apply(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	// Flags override the config file.
	vaultPath, err := cmd.Flags().GetString("vault")
	if err != nil {
		return nil, err
	}
	if vaultPath != "" {
		cfg.VaultPath = vaultPath
	}

	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Verbose = true
	}

	cfg.SaveToLedger = cfg.LedgerDir != ""

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	return cfg, nil
}

// setupLogger installs a sanitizing logger as the process default and
// returns it. Vault passphrases and persona notes never reach the log
// output even in verbose mode.
func setupLogger(cfg *config.Config) *slog.Logger {
	logger := log.NewSecureLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)
	return logger
}

// readPassphrase obtains the vault passphrase: the --passphrase flag
// first, then the PERSONAGUARD_PASSPHRASE environment variable, then an
// interactive prompt on stdin.
func readPassphrase(cmd *cobra.Command) ([]byte, error) {
	if flag := cmd.Flags().Lookup("passphrase"); flag != nil {
		value, err := cmd.Flags().GetString("passphrase")
		if err != nil {
			return nil, err
		}
		if value != "" {
			return []byte(value), nil
		}
	}

	if value := os.Getenv(passphraseEnv); value != "" {
		return []byte(value), nil
	}

	fmt.Fprint(cmd.OutOrStdout(), "Vault passphrase: ")
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("read passphrase: %w", err)
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}

// openVault loads the persona set. A missing vault yields an empty set
// when allowMissing is true, an error otherwise.
func openVault(cfg *config.Config, passphrase []byte, allowMissing bool) (*vault.Vault, []model.Persona, error) {
	v := vault.New(cfg.VaultPath)
	if !v.Exists() {
		if allowMissing {
			return v, []model.Persona{}, nil
		}
		return nil, nil, fmt.Errorf("no vault at %s (create a persona first)", cfg.VaultPath)
	}

	personas, err := v.Load(passphrase)
	if err != nil {
		return nil, nil, err
	}
	return v, personas, nil
}

// findPersona resolves a persona by id first, then by unique name.
func findPersona(personas []model.Persona, ref string) (int, error) {
	for i, p := range personas {
		if p.ID == ref {
			return i, nil
		}
	}

	match := -1
	for i, p := range personas {
		if p.Name == ref {
			if match >= 0 {
				return -1, fmt.Errorf("persona name %q is ambiguous, use the id", ref)
			}
			match = i
		}
	}
	if match < 0 {
		return -1, fmt.Errorf("%w: %q", errPersonaNotFound, ref)
	}
	return match, nil
}

// seedPath returns the seed file location for a persona.
func seedPath(cfg *config.Config, personaID string) string {
	return filepath.Join(cfg.KeyDir, personaID+".seed")
}

// loadPersonaKeys loads a persona's keypair from its seed file.
func loadPersonaKeys(cfg *config.Config, personaID string) (*keys.KeyPair, error) {
	pair, err := keys.LoadSeed(seedPath(cfg, personaID))
	if err != nil {
		return nil, fmt.Errorf("load keys for persona %s: %w", personaID, err)
	}
	return pair, nil
}
