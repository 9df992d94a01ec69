package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/personaguard/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with no warnings are shown.
	showEmpty bool

	// verbose enables additional detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showEmpty:  false,
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.AnalysisReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeScore(&sb, report)
	w.writeWarnings(&sb, report)
	w.writeRecommendations(&sb, report)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with analysis information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.AnalysisReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                       PERSONAGUARD REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Analysis Date:  %s\n", report.DateAnalyzed.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Personas:       %d\n", report.PersonaCount))
	sb.WriteString("\n")
}

// writeScore writes the privacy score section.
func (w *SimpleWriter) writeScore(sb *strings.Builder, report *model.AnalysisReport) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("PRIVACY SCORE\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  SCORE:               %d / 100  (grade %s)\n", report.Score.Score, report.Score.Grade))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  Account Isolation:   %d\n", report.Score.AccountIsolation))
	sb.WriteString(fmt.Sprintf("  Username Uniqueness: %d\n", report.Score.UsernameUniqueness))
	sb.WriteString(fmt.Sprintf("  Metadata Separation: %d\n", report.Score.MetadataSeparation))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("  HIGH:   %d\n", report.HighCount))
	sb.WriteString(fmt.Sprintf("  MEDIUM: %d\n", report.MediumCount))
	sb.WriteString(fmt.Sprintf("  LOW:    %d\n", report.LowCount))
	sb.WriteString(fmt.Sprintf("  TOTAL:  %d warnings\n", report.TotalWarnings()))
	sb.WriteString("\n")
}

// writeWarnings writes all warnings grouped by severity.
func (w *SimpleWriter) writeWarnings(sb *strings.Builder, report *model.AnalysisReport) {
	if !report.HasWarnings() && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("WARNINGS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	// High first
	severities := []model.Severity{
		model.SeverityHigh,
		model.SeverityMedium,
		model.SeverityLow,
	}

	for _, severity := range severities {
		warnings := report.WarningsBySeverity(severity)
		if len(warnings) == 0 && !w.showEmpty {
			continue
		}
		w.writeWarningsForSeverity(sb, severity, warnings)
	}
}

// writeWarningsForSeverity writes warnings of a specific severity level.
func (w *SimpleWriter) writeWarningsForSeverity(sb *strings.Builder, severity model.Severity, warnings []model.PrivacyWarning) {
	indicator := w.getSeverityIndicator(severity)
	sb.WriteString(fmt.Sprintf("[%s] %s\n", indicator, severity.String()))

	if len(warnings) == 0 {
		sb.WriteString("  No warnings\n\n")
		return
	}

	for _, warning := range warnings {
		sb.WriteString(fmt.Sprintf("  * %s\n", warning.Description))
		if warning.Value != "" {
			sb.WriteString(fmt.Sprintf("    Value: %s\n", warning.Value))
		}
		sb.WriteString(fmt.Sprintf("    Personas: %s\n", strings.Join(warning.AffectedPersonas, ", ")))
		if w.verbose {
			info := model.GetWarningInfo(warning.Type)
			if info.Impact != "" {
				sb.WriteString(fmt.Sprintf("    Impact: %s\n", info.Impact))
			}
		}
	}
	sb.WriteString("\n")
}

// getSeverityIndicator returns a visual indicator for the severity level.
func (w *SimpleWriter) getSeverityIndicator(severity model.Severity) string {
	switch severity {
	case model.SeverityHigh:
		return "!!"
	case model.SeverityMedium:
		return "!"
	case model.SeverityLow:
		return "-"
	default:
		return "?"
	}
}

// writeRecommendations writes the recommendations section.
func (w *SimpleWriter) writeRecommendations(sb *strings.Builder, report *model.AnalysisReport) {
	if len(report.Recommendations) == 0 && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("RECOMMENDATIONS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for i, rec := range report.Recommendations {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, rec))
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by PersonaGuard\n")
	sb.WriteString("https://github.com/nao1215/personaguard\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
