package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/nao1215/personaguard/internal/keys"
	"github.com/nao1215/personaguard/internal/model"
)

// NewCreateCmd creates the create command.
func NewCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new persona",
		Long: `Create adds a new persona to the vault.

A fresh Ed25519 keypair is generated for the persona. The public key is
stored in the persona record; the seed is written to the key directory
and never enters the vault.

Examples:
  # Create a persona
  personaguard create work-alias

  # Create a persona with private notes
  personaguard create work-alias --notes "used for freelance contracts"

  # Create a persona that may be disclosed to verifiers
  personaguard create work-alias --public`,
		Args: cobra.ExactArgs(1),
		RunE: runCreateCmd,
	}

	cmd.Flags().StringP("notes", "n", "", "Private notes attached to the persona (never logged)")
	cmd.Flags().Bool("public", false, "Mark the persona as disclosable to verification collaborators")
	cmd.Flags().StringP("passphrase", "p", "", "Vault passphrase (prefer "+passphraseEnv+" or the prompt)")

	return cmd
}

// runCreateCmd executes the create command.
func runCreateCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg)

	passphrase, err := readPassphrase(cmd)
	if err != nil {
		return err
	}

	v, personas, err := openVault(cfg, passphrase, true)
	if err != nil {
		return err
	}

	notes, err := cmd.Flags().GetString("notes")
	if err != nil {
		return err
	}
	isPublic, err := cmd.Flags().GetBool("public")
	if err != nil {
		return err
	}

	pair, err := keys.Generate()
	if err != nil {
		return err
	}

	persona := model.Persona{
		ID:        uuid.NewString(),
		Name:      args[0],
		IsPublic:  isPublic,
		PublicKey: keys.EncodePublic(pair.Public),
		PrivateData: model.PrivateData{
			Accounts: []string{},
			Notes:    notes,
		},
		CreatedAt: time.Now().UTC(),
	}

	if err := pair.SaveSeed(seedPath(cfg, persona.ID)); err != nil {
		return err
	}

	personas = append(personas, persona)
	if err := v.Save(personas, passphrase); err != nil {
		return err
	}

	logger.Info("persona created", "persona_id", persona.ID, "name", persona.Name)
	fmt.Fprintf(cmd.OutOrStdout(), "Created persona %q (%s)\n", persona.Name, persona.ID)
	return nil
}

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List personas in the vault",
		Long: `List prints every persona in the vault with its id, account count,
and visibility. Private notes are never printed.`,
		Args: cobra.NoArgs,
		RunE: runListCmd,
	}

	cmd.Flags().StringP("passphrase", "p", "", "Vault passphrase (prefer "+passphraseEnv+" or the prompt)")

	return cmd
}

// runListCmd executes the list command.
func runListCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	setupLogger(cfg)

	passphrase, err := readPassphrase(cmd)
	if err != nil {
		return err
	}

	_, personas, err := openVault(cfg, passphrase, false)
	if err != nil {
		return err
	}

	if len(personas) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No personas in the vault.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tACCOUNTS\tVISIBILITY\tCREATED")
	for _, p := range personas {
		visibility := "private"
		if p.IsPublic {
			visibility = "public"
		}
		created := ""
		if !p.CreatedAt.IsZero() {
			created = p.CreatedAt.Format("2006-01-02")
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", p.ID, p.Name, p.AccountCount(), visibility, created)
	}
	return tw.Flush()
}

// NewConnectCmd creates the connect command.
func NewConnectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "connect <persona> <platform:handle>",
		Short: "Connect an account to a persona",
		Long: `Connect records an external account on a persona.

The account string is conventionally "<platform>:<handle>", for example
"twitter:@alias" or "github:alias". The colon shape is recommended but
not enforced; accounts without it are still checked for overlap.

Examples:
  personaguard connect work-alias twitter:@workalias
  personaguard connect 6e5a... github:workalias`,
		Args: cobra.ExactArgs(2),
		RunE: runConnectCmd,
	}

	cmd.Flags().StringP("passphrase", "p", "", "Vault passphrase (prefer "+passphraseEnv+" or the prompt)")

	return cmd
}

// runConnectCmd executes the connect command.
func runConnectCmd(cmd *cobra.Command, args []string) error {
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

	i, err := findPersona(personas, args[0])
	if err != nil {
		return err
	}

	account := args[1]
	if personas[i].HasAccount(account) {
		return fmt.Errorf("persona %q already lists account %q", personas[i].Name, account)
	}

	personas[i].PrivateData.Accounts = append(personas[i].PrivateData.Accounts, account)
	if err := v.Save(personas, passphrase); err != nil {
		return err
	}

	logger.Info("account connected", "persona_id", personas[i].ID)
	fmt.Fprintf(cmd.OutOrStdout(), "Connected account to persona %q\n", personas[i].Name)
	return nil
}

// NewDisconnectCmd creates the disconnect command.
func NewDisconnectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disconnect <persona> <platform:handle>",
		Short: "Disconnect an account from a persona",
		Long: `Disconnect removes an external account from a persona. The account
string must match the connected value exactly.`,
		Args: cobra.ExactArgs(2),
		RunE: runDisconnectCmd,
	}

	cmd.Flags().StringP("passphrase", "p", "", "Vault passphrase (prefer "+passphraseEnv+" or the prompt)")

	return cmd
}

// runDisconnectCmd executes the disconnect command.
func runDisconnectCmd(cmd *cobra.Command, args []string) error {
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

	i, err := findPersona(personas, args[0])
	if err != nil {
		return err
	}

	account := args[1]
	if !personas[i].HasAccount(account) {
		return fmt.Errorf("persona %q does not list account %q", personas[i].Name, account)
	}

	accounts := personas[i].PrivateData.Accounts
	kept := make([]string, 0, len(accounts)-1)
	for _, a := range accounts {
		if a != account {
			kept = append(kept, a)
		}
	}
	personas[i].PrivateData.Accounts = kept

	if err := v.Save(personas, passphrase); err != nil {
		return err
	}

	logger.Info("account disconnected", "persona_id", personas[i].ID)
	fmt.Fprintf(cmd.OutOrStdout(), "Disconnected account from persona %q\n", personas[i].Name)
	return nil
}
