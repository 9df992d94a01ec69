package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/personaguard/internal/ledger"
	"github.com/nao1215/personaguard/internal/proof"
)

// NewProveCmd creates the prove command.
func NewProveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prove <persona> <platform:handle>",
		Short: "Sign an ownership proof for a connected account",
		Long: `Prove signs a statement binding a connected account to a persona
using the persona's private key, and records the proof on the ledger.

The proof can later be checked with "personaguard verify" using only the
persona's public key, so ownership can be demonstrated to collaborators
without disclosing anything else about the persona.

Examples:
  # Prove ownership of a connected account
  personaguard prove work-persona twitter:@alice

  # Use a custom statement
  personaguard prove work-persona twitter:@alice -s "I control this handle as of 2026-08-30"`,
		Args: cobra.ExactArgs(2),
		RunE: runProveCmd,
	}

	cmd.Flags().StringP("passphrase", "p", "", "Vault passphrase (prefer "+passphraseEnv+" or the prompt)")
	cmd.Flags().StringP("statement", "s", "", "Statement to sign (default: a standard ownership claim)")

	return cmd
}

// runProveCmd executes the prove command.
func runProveCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg)

	passphrase, err := readPassphrase(cmd)
	if err != nil {
		return err
	}

	v, personas, err := openVault(cfg, passphrase, false)
	if err != nil {
		return err
	}

	idx, err := findPersona(personas, args[0])
	if err != nil {
		return err
	}
	account := args[1]

	if !personas[idx].HasAccount(account) {
		return fmt.Errorf("persona %q has no account %q (connect it first)", personas[idx].Name, account)
	}

	pair, err := loadPersonaKeys(cfg, personas[idx].ID)
	if err != nil {
		return err
	}

	statement, err := cmd.Flags().GetString("statement")
	if err != nil {
		return err
	}
	if statement == "" {
		statement = fmt.Sprintf("This persona controls the account %s.", account)
	}

	p, err := proof.Build(pair, personas[idx].ID, account, statement)
	if err != nil {
		return fmt.Errorf("build proof: %w", err)
	}

	l, err := ledger.Open(cfg.LedgerDir, ledger.DefaultOptions())
	if err != nil {
		return err
	}
	defer l.Close()

	if err := l.PutProof(cmd.Context(), p); err != nil {
		return fmt.Errorf("record proof: %w", err)
	}

	personas[idx].PrivateData.SignedProofs = append(personas[idx].PrivateData.SignedProofs, p.ID)
	if err := v.Save(personas, passphrase); err != nil {
		return fmt.Errorf("save vault: %w", err)
	}

	logger.Info("proof recorded", "proof_id", p.ID, "persona_id", personas[idx].ID)
	fmt.Fprintf(cmd.OutOrStdout(), "Proof %s recorded for persona %q\n", p.ID, personas[idx].Name)
	return nil
}
