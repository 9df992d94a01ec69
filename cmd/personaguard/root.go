// Package main provides the entry point for the PersonaGuard CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for PersonaGuard.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "personaguard",
		Short: "Privacy analyzer for separated online personas",
		Long: `PersonaGuard manages separated online personas and analyzes them for
privacy leaks. It detects shared accounts, suspiciously similar usernames,
and correlatable metadata that could link personas to one real-world
identity, then scores the persona set and suggests fixes.

Personas are stored in a passphrase-encrypted vault. Each persona owns an
Ed25519 keypair used to sign account ownership proofs.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().String("vault", "", "Vault file path (default: XDG data directory)")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .personaguard in current or home directory)")

	// Add subcommands
	cmd.AddCommand(NewCreateCmd())
	cmd.AddCommand(NewListCmd())
	cmd.AddCommand(NewConnectCmd())
	cmd.AddCommand(NewDisconnectCmd())
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewProveCmd())
	cmd.AddCommand(NewVerifyCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
