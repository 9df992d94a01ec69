package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/personaguard/internal/analyzer"
	"github.com/nao1215/personaguard/internal/config"
	"github.com/nao1215/personaguard/internal/ledger"
	"github.com/nao1215/personaguard/internal/model"
	"github.com/nao1215/personaguard/internal/report"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze personas for privacy leaks",
		Long: `Analyze runs all privacy detectors over the persona set:

- Account overlap: the same connected account under multiple personas
- Username reuse: suspiciously similar usernames across personas
- Metadata similarity: similar private notes suggesting shared authorship

The result is a 0-100 privacy score with a letter grade, actionable
recommendations, and a persona linkage graph. Results are saved to the
ledger for historical comparison.

Examples:
  # Analyze and print a human-readable report
  personaguard analyze

  # Output JSON for tool integration
  personaguard analyze --json

  # Write a Markdown report to a file
  personaguard analyze --markdown -o report.md`,
		Args: cobra.NoArgs,
		RunE: runAnalyzeCmd,
	}

	cmd.Flags().StringP("passphrase", "p", "", "Vault passphrase (prefer "+passphraseEnv+" or the prompt)")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("no-save", false, "Do not record the result in the ledger")

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildAnalyzeConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg)

	passphrase, err := readPassphrase(cmd)
	if err != nil {
		return err
	}

	_, personas, err := openVault(cfg, passphrase, false)
	if err != nil {
		return err
	}

	logger.Info("starting analysis", "personas", len(personas))

	analysisReport := analyzer.NewAnalyzer().Report(personas)

	if err := outputReport(cfg, cmd.OutOrStdout(), analysisReport); err != nil {
		return err
	}

	if cfg.SaveToLedger {
		if err := saveAnalysisReport(cmd.Context(), cfg, analysisReport, logger); err != nil {
			logger.Error("failed to save analysis report", "error", err)
		}
	}

	return nil
}

// buildAnalyzeConfig extends the shared config with analyze-only flags.
func buildAnalyzeConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return nil, err
	}

	// Flags add to, never unset, the config file's format choice.
	jsonReport, err := cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}
	if jsonReport {
		cfg.JSONReport = true
	}

	markdownReport, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}
	if markdownReport {
		cfg.MarkdownReport = true
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	if noSave {
		cfg.SaveToLedger = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	return cfg, nil
}

// outputReport outputs the analysis report in the requested format.
func outputReport(cfg *config.Config, stdout io.Writer, analysisReport *model.AnalysisReport) error {
	var output io.Writer
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Reports name accounts and personas, so they are written with
		// owner-only permissions.
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = stdout
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	_, err := writer.Write(analysisReport)
	return err
}

// saveAnalysisReport records the analysis in the ledger.
func saveAnalysisReport(ctx context.Context, cfg *config.Config, analysisReport *model.AnalysisReport, logger *slog.Logger) error {
	l, err := ledger.Open(cfg.LedgerDir, ledger.DefaultOptions())
	if err != nil {
		return err
	}
	defer l.Close()

	if err := l.SaveAnalysisReport(ctx, analysisReport); err != nil {
		return err
	}

	logger.Info("analysis report saved", "dir", cfg.LedgerDir, "score", analysisReport.Score.Score)
	return nil
}
