package main

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"sort"
	"sync"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nao1215/personaguard/internal/keys"
	"github.com/nao1215/personaguard/internal/ledger"
	"github.com/nao1215/personaguard/internal/model"
	"github.com/nao1215/personaguard/internal/proof"
)

// maxConcurrentVerifications bounds the verification worker pool.
const maxConcurrentVerifications = 4

// NewVerifyCmd creates the verify command.
func NewVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify [proof-id]",
		Short: "Verify recorded ownership proofs",
		Long: `Verify checks recorded proofs against the owning persona's public
key and updates their ledger status: valid proofs move to "verified",
proofs that fail the signature check move to "revoked".

With a proof id argument a single proof is checked. With --persona all
proofs of that persona are checked, and with --all every persona's
proofs are checked.

Examples:
  # Verify a single proof
  personaguard verify 4c0f7b1e-...

  # Verify all proofs of one persona
  personaguard verify --persona work-persona

  # Verify everything on the ledger
  personaguard verify --all`,
		Args: cobra.MaximumNArgs(1),
		RunE: runVerifyCmd,
	}

	cmd.Flags().StringP("passphrase", "p", "", "Vault passphrase (prefer "+passphraseEnv+" or the prompt)")
	cmd.Flags().StringP("persona", "P", "", "Verify all proofs of the given persona (id or name)")
	cmd.Flags().Bool("all", false, "Verify all proofs of all personas")

	return cmd
}

// verifyResult is the outcome of checking one proof.
type verifyResult struct {
	proof  *proof.Proof
	status string
	err    error
}

// runVerifyCmd executes the verify command.
func runVerifyCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg)

	personaRef, err := cmd.Flags().GetString("persona")
	if err != nil {
		return err
	}
	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	if len(args) == 0 && personaRef == "" && !all {
		return fmt.Errorf("specify a proof id, --persona, or --all")
	}

	passphrase, err := readPassphrase(cmd)
	if err != nil {
		return err
	}

	_, personas, err := openVault(cfg, passphrase, false)
	if err != nil {
		return err
	}

	publicKeys, err := personaPublicKeys(personas)
	if err != nil {
		return err
	}

	l, err := ledger.Open(cfg.LedgerDir, ledger.DefaultOptions())
	if err != nil {
		return err
	}
	defer l.Close()

	proofs, err := collectProofs(cmd, l, personas, args, personaRef, all)
	if err != nil {
		return err
	}
	if len(proofs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No proofs to verify.")
		return nil
	}

	results := verifyProofs(cmd, l, proofs, publicKeys)

	sort.Slice(results, func(i, j int) bool { return results[i].proof.ID < results[j].proof.ID })

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PROOF\tPERSONA\tACCOUNT\tSTATUS")
	failed := 0
	for _, r := range results {
		status := r.status
		if r.err != nil {
			status = fmt.Sprintf("%s (%v)", r.status, r.err)
		}
		if r.status != proof.StatusVerified {
			failed++
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.proof.ID, r.proof.PersonaID, r.proof.Account, status)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	logger.Info("verification finished", "proofs", len(results), "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d proofs failed verification", failed, len(results))
	}
	return nil
}

// personaPublicKeys decodes each persona's public key, keyed by persona id.
func personaPublicKeys(personas []model.Persona) (map[string]ed25519.PublicKey, error) {
	publicKeys := make(map[string]ed25519.PublicKey, len(personas))
	for _, p := range personas {
		if p.PublicKey == "" {
			continue
		}
		public, err := keys.DecodePublic(p.PublicKey)
		if err != nil {
			return nil, fmt.Errorf("decode public key for persona %s: %w", p.ID, err)
		}
		publicKeys[p.ID] = public
	}
	return publicKeys, nil
}

// collectProofs gathers the proofs selected by the command arguments.
func collectProofs(cmd *cobra.Command, l *ledger.Ledger, personas []model.Persona, args []string, personaRef string, all bool) ([]*proof.Proof, error) {
	ctx := cmd.Context()

	if len(args) == 1 {
		p, err := l.GetProof(ctx, args[0])
		if err != nil {
			return nil, err
		}
		return []*proof.Proof{p}, nil
	}

	if personaRef != "" {
		idx, err := findPersona(personas, personaRef)
		if err != nil {
			return nil, err
		}
		return l.ListProofsByPersona(ctx, personas[idx].ID)
	}

	var proofs []*proof.Proof
	for _, p := range personas {
		list, err := l.ListProofsByPersona(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		proofs = append(proofs, list...)
	}
	return proofs, nil
}

// verifyProofs checks proofs concurrently and persists the resulting
// status transitions. Verification failures are results, not errors, so
// one bad proof never stops the batch.
func verifyProofs(cmd *cobra.Command, l *ledger.Ledger, proofs []*proof.Proof, publicKeys map[string]ed25519.PublicKey) []verifyResult {
	ctx := cmd.Context()

	var mu sync.Mutex
	results := make([]verifyResult, 0, len(proofs))

	g := &errgroup.Group{}
	g.SetLimit(maxConcurrentVerifications)
	for _, p := range proofs {
		g.Go(func() error {
			r := verifyResult{proof: p, status: proof.StatusVerified}

			public, ok := publicKeys[p.PersonaID]
			if !ok {
				r.status = proof.StatusRevoked
				r.err = fmt.Errorf("no public key for persona %s", p.PersonaID)
			} else if err := p.Verify(public); err != nil {
				r.status = proof.StatusRevoked
				r.err = err
			}

			if err := l.UpdateProofStatus(ctx, p.ID, r.status); err != nil {
				// The proof keeps its stored status when the update fails,
				// so report that status rather than the one we computed.
				r.err = errors.Join(r.err, fmt.Errorf("status not saved: %w", err))
				r.status = p.Status
			}

			mu.Lock()
			results = append(results, r)
			mu.Unlock()
			return nil
		})
	}
	g.Wait() //nolint:errcheck // workers only report via results

	return results
}
