package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/personaguard/internal/ledger"
	"github.com/nao1215/personaguard/internal/model"
)

// Privacy direction between two analysis runs.
const (
	directionImproved  = "improved"
	directionWorsened  = "worsened"
	directionUnchanged = "unchanged"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Compare analysis results with earlier runs",
		Long: `History shows how persona isolation has changed over time.

By default the latest two analyses recorded on the ledger are compared:
- New warnings that appeared since the previous run
- Resolved warnings that are no longer present
- The change in privacy score and grade

The comparison requires at least two recorded analyses. Use
'personaguard analyze' to run analyses; each run is recorded unless
--no-save is given.

Examples:
  # Compare the latest two analyses
  personaguard history

  # List all recorded analyses
  personaguard history --list

  # Compare the latest analysis with a specific earlier run by id
  personaguard history --with-id 3

  # Output the comparison in JSON format
  personaguard history --json`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().BoolP("list", "l", false,
		"List recorded analyses instead of comparing")
	cmd.Flags().Int64P("with-id", "i", 0,
		"Compare the latest analysis with a specific run by id (use --list to see ids)")
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	setupLogger(cfg)

	l, err := ledger.Open(cfg.LedgerDir, ledger.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return fmt.Errorf("no analysis history recorded yet (run 'personaguard analyze' first): %w", err)
	}
	defer l.Close()

	ctx := cmd.Context()

	list, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	if list {
		return listAnalysisHistory(ctx, cmd.OutOrStdout(), l)
	}

	withID, err := cmd.Flags().GetInt64("with-id")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	comparison, err := buildComparison(ctx, l, withID)
	if err != nil {
		return err
	}

	if jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(comparison)
	}
	return outputComparisonText(cmd.OutOrStdout(), comparison)
}

// listAnalysisHistory lists all recorded analyses, newest first.
func listAnalysisHistory(ctx context.Context, w io.Writer, l *ledger.Ledger) error {
	summaries, err := l.AnalysisHistory(ctx)
	if err != nil {
		return fmt.Errorf("failed to get analysis history: %w", err)
	}

	if len(summaries) == 0 {
		fmt.Fprintln(w, "No analyses recorded on the ledger.")
		fmt.Fprintln(w, "\nUse 'personaguard analyze' to run and record an analysis.")
		return nil
	}

	fmt.Fprintf(w, "Recorded analyses (%d):\n\n", len(summaries))
	fmt.Fprintf(w, "  %-6s  %-20s  %-9s  %-6s  %s\n", "ID", "Date", "Personas", "Score", "Grade")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 55))
	for _, s := range summaries {
		fmt.Fprintf(w, "  %-6d  %-20s  %-9d  %-6d  %s\n",
			s.ID,
			s.Timestamp.Format("2006-01-02 15:04:05"),
			s.PersonaCount,
			s.Score,
			s.Grade,
		)
	}

	fmt.Fprintln(w, "\nUse 'personaguard history' to compare the latest two analyses.")
	fmt.Fprintln(w, "Use 'personaguard history --with-id <id>' to compare with a specific run.")
	return nil
}

// AnalysisComparison holds the result of comparing two analysis runs.
type AnalysisComparison struct {
	// PreviousRun summarizes the older analysis.
	PreviousRun RunSummary `json:"previous_run"`

	// CurrentRun summarizes the latest analysis.
	CurrentRun RunSummary `json:"current_run"`

	// NewWarnings are present in the current run but not the previous one.
	NewWarnings []model.PrivacyWarning `json:"new_warnings,omitempty"`

	// ResolvedWarnings were present in the previous run but are gone.
	ResolvedWarnings []model.PrivacyWarning `json:"resolved_warnings,omitempty"`

	// UnchangedCount is the number of warnings present in both runs.
	UnchangedCount int `json:"unchanged_count"`

	// ScoreDelta is current score minus previous score.
	ScoreDelta int `json:"score_delta"`

	// Direction is "improved", "worsened", or "unchanged".
	Direction string `json:"direction"`
}

// RunSummary contains the headline numbers of one analysis run.
type RunSummary struct {
	// DateAnalyzed is when the analysis ran.
	DateAnalyzed time.Time `json:"date_analyzed"`

	// PersonaCount is the number of personas analyzed.
	PersonaCount int `json:"persona_count"`

	// Score is the overall 0-100 privacy score.
	Score int `json:"score"`

	// Grade is the letter grade.
	Grade string `json:"grade"`

	// TotalWarnings is the warning count of this run.
	TotalWarnings int `json:"total_warnings"`

	// HighCount is the number of high severity warnings.
	HighCount int `json:"high_count"`

	// MediumCount is the number of medium severity warnings.
	MediumCount int `json:"medium_count"`

	// LowCount is the number of low severity warnings.
	LowCount int `json:"low_count"`
}

// buildComparison loads the current and previous reports from the ledger
// and diffs them. withID selects the previous run explicitly; zero means
// the run just before the latest.
func buildComparison(ctx context.Context, l *ledger.Ledger, withID int64) (*AnalysisComparison, error) {
	current, err := l.LatestAnalysisReport(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest analysis: %w", err)
	}
	if current == nil {
		return nil, fmt.Errorf("no analyses recorded (use 'personaguard analyze' first)")
	}

	summaries, err := l.AnalysisHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis history: %w", err)
	}

	var previous *model.AnalysisReport
	if withID > 0 {
		if withID == summaries[0].ID {
			return nil, fmt.Errorf("id %d is the latest analysis; pick an earlier run", withID)
		}
		previous, err = l.AnalysisReportByID(ctx, withID)
		if err != nil {
			return nil, err
		}
	} else {
		if len(summaries) < 2 {
			return nil, fmt.Errorf("at least 2 recorded analyses are required for comparison (found %d)", len(summaries))
		}
		previous, err = l.AnalysisReportByID(ctx, summaries[1].ID)
		if err != nil {
			return nil, err
		}
	}

	return compareAnalyses(previous, current), nil
}

// compareAnalyses diffs two analysis reports.
func compareAnalyses(previous, current *model.AnalysisReport) *AnalysisComparison {
	result := &AnalysisComparison{
		PreviousRun: summarizeRun(previous),
		CurrentRun:  summarizeRun(current),
	}

	previousWarnings := make(map[string]model.PrivacyWarning, len(previous.Warnings))
	for _, w := range previous.Warnings {
		previousWarnings[warningKey(w)] = w
	}
	currentWarnings := make(map[string]model.PrivacyWarning, len(current.Warnings))
	for _, w := range current.Warnings {
		currentWarnings[warningKey(w)] = w
	}

	// Iterate the ordered warning lists, not the maps, so output ordering
	// is stable across runs.
	for _, w := range current.Warnings {
		if _, exists := previousWarnings[warningKey(w)]; !exists {
			result.NewWarnings = append(result.NewWarnings, w)
		}
	}
	for _, w := range previous.Warnings {
		if _, exists := currentWarnings[warningKey(w)]; exists {
			result.UnchangedCount++
		} else {
			result.ResolvedWarnings = append(result.ResolvedWarnings, w)
		}
	}

	// Higher score means better isolation, so a positive delta improves.
	result.ScoreDelta = current.Score.Score - previous.Score.Score
	switch {
	case result.ScoreDelta > 0:
		result.Direction = directionImproved
	case result.ScoreDelta < 0:
		result.Direction = directionWorsened
	default:
		result.Direction = directionUnchanged
	}

	return result
}

// summarizeRun extracts the headline numbers of a report.
func summarizeRun(report *model.AnalysisReport) RunSummary {
	return RunSummary{
		DateAnalyzed:  report.DateAnalyzed,
		PersonaCount:  report.PersonaCount,
		Score:         report.Score.Score,
		Grade:         report.Score.Grade,
		TotalWarnings: report.TotalWarnings(),
		HighCount:     report.HighCount,
		MediumCount:   report.MediumCount,
		LowCount:      report.LowCount,
	}
}

// warningKey identifies a warning across runs. Two warnings are the same
// issue when their type, value, and affected persona set all match.
func warningKey(w model.PrivacyWarning) string {
	return string(w.Type) + "|" + w.Value + "|" + strings.Join(w.AffectedPersonas, ",")
}

// outputComparisonText renders the comparison in human-readable form.
func outputComparisonText(w io.Writer, result *AnalysisComparison) error {
	fmt.Fprintln(w, "Analysis Comparison")
	fmt.Fprintln(w, strings.Repeat("=", 60))

	fmt.Fprintf(w, "\nPrivacy Status: %s\n", formatDirection(result.Direction))

	fmt.Fprintf(w, "\nPrevious run: %s\n", result.PreviousRun.DateAnalyzed.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Current run:  %s\n", result.CurrentRun.DateAnalyzed.Format("2006-01-02 15:04:05"))

	fmt.Fprintln(w, "\nSummary:")
	fmt.Fprintf(w, "  %-10s  %-10s  %-10s  %-10s\n", "Metric", "Previous", "Current", "Change")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 45))
	fmt.Fprintf(w, "  %-10s  %-10d  %-10d  %-10s\n", "Score",
		result.PreviousRun.Score, result.CurrentRun.Score, formatDelta(result.ScoreDelta))
	fmt.Fprintf(w, "  %-10s  %-10s  %-10s  %-10s\n", "Grade",
		result.PreviousRun.Grade, result.CurrentRun.Grade, "-")
	fmt.Fprintf(w, "  %-10s  %-10d  %-10d  %-10s\n", "High",
		result.PreviousRun.HighCount, result.CurrentRun.HighCount,
		formatDelta(result.CurrentRun.HighCount-result.PreviousRun.HighCount))
	fmt.Fprintf(w, "  %-10s  %-10d  %-10d  %-10s\n", "Medium",
		result.PreviousRun.MediumCount, result.CurrentRun.MediumCount,
		formatDelta(result.CurrentRun.MediumCount-result.PreviousRun.MediumCount))
	fmt.Fprintf(w, "  %-10s  %-10d  %-10d  %-10s\n", "Low",
		result.PreviousRun.LowCount, result.CurrentRun.LowCount,
		formatDelta(result.CurrentRun.LowCount-result.PreviousRun.LowCount))
	fmt.Fprintln(w, "  "+strings.Repeat("-", 45))
	fmt.Fprintf(w, "  %-10s  %-10d  %-10d  %-10s\n", "Total",
		result.PreviousRun.TotalWarnings, result.CurrentRun.TotalWarnings,
		formatDelta(result.CurrentRun.TotalWarnings-result.PreviousRun.TotalWarnings))

	if len(result.NewWarnings) > 0 {
		fmt.Fprintf(w, "\nNew Warnings (%d):\n", len(result.NewWarnings))
		for _, warning := range result.NewWarnings {
			fmt.Fprintf(w, "  [+] [%s] %s\n", warning.SeverityText, warning.Description)
			if warning.Value != "" {
				fmt.Fprintf(w, "      Value: %s\n", warning.Value)
			}
		}
	}

	if len(result.ResolvedWarnings) > 0 {
		fmt.Fprintf(w, "\nResolved Warnings (%d):\n", len(result.ResolvedWarnings))
		for _, warning := range result.ResolvedWarnings {
			fmt.Fprintf(w, "  [-] [%s] %s\n", warning.SeverityText, warning.Description)
		}
	}

	if result.UnchangedCount > 0 {
		fmt.Fprintf(w, "\nUnchanged: %d warnings\n", result.UnchangedCount)
	}

	return nil
}

// formatDirection formats the privacy direction for display.
func formatDirection(direction string) string {
	switch direction {
	case directionImproved:
		return "IMPROVED (isolation increased)"
	case directionWorsened:
		return "WORSENED (isolation decreased)"
	default:
		return "UNCHANGED"
	}
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	}
	return strconv.Itoa(delta)
}
