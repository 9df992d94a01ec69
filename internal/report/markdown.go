package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/personaguard/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter

	// titleCaser renders platform names for display ("twitter" -> "Twitter").
	titleCaser cases.Caser
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		titleCaser: cases.Title(language.English),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.AnalysisReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeScore(md, report)
	w.writeWarnings(md, report)
	w.writeRecommendations(md, report)
	w.writeGraph(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with analysis information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.AnalysisReport) {
	md.H1("PersonaGuard Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Analysis Date", report.DateAnalyzed.Format("2006-01-02 15:04:05 MST")},
			{"Personas", strconv.Itoa(report.PersonaCount)},
			{"Warnings", strconv.Itoa(report.TotalWarnings())},
		},
	})
	md.PlainText("")
}

// writeScore writes the privacy score section.
func (w *MarkdownWriter) writeScore(md *markdown.Markdown, report *model.AnalysisReport) {
	md.H2("Privacy Score")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"**Score**", "**" + strconv.Itoa(report.Score.Score) + " / 100**"},
			{"**Grade**", "**" + report.Score.Grade + "**"},
			{"Account Isolation", strconv.Itoa(report.Score.AccountIsolation)},
			{"Username Uniqueness", strconv.Itoa(report.Score.UsernameUniqueness)},
			{"Metadata Separation", strconv.Itoa(report.Score.MetadataSeparation)},
		},
	})
	md.PlainText("")

	if report.HasWarnings() {
		w.writePieChart(md, report)
	}

	w.writeAlert(md, report)
}

// writePieChart writes a mermaid pie chart for severity distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.AnalysisReport) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Warning Severity Distribution"),
		piechart.WithShowData(true),
	)

	if report.HighCount > 0 {
		chart.LabelAndIntValue("High", uint64(report.HighCount))
	}
	if report.MediumCount > 0 {
		chart.LabelAndIntValue("Medium", uint64(report.MediumCount))
	}
	if report.LowCount > 0 {
		chart.LabelAndIntValue("Low", uint64(report.LowCount))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on severity counts.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.AnalysisReport) {
	switch {
	case report.HighCount > 0:
		md.Cautionf(
			"Personas are directly linked! %d high severity warning(s) require immediate attention.",
			report.HighCount,
		)
	case report.MediumCount > 0:
		md.Warningf(
			"Linkable patterns detected. %d medium severity warning(s) should be addressed.",
			report.MediumCount,
		)
	case report.LowCount > 0:
		md.Importantf(
			"Weak correlation signals found. %d low severity warning(s) may erode separation over time.",
			report.LowCount,
		)
	default:
		md.Tip("No privacy issues detected. Your personas are well isolated.")
	}
	md.PlainText("")
}

// writeWarnings writes all warnings grouped by severity.
func (w *MarkdownWriter) writeWarnings(md *markdown.Markdown, report *model.AnalysisReport) {
	md.H2("Warnings")
	md.PlainText("")

	if !report.HasWarnings() {
		md.PlainText("No privacy warnings detected.")
		md.PlainText("")
		return
	}

	severities := []struct {
		level  model.Severity
		header string
	}{
		{model.SeverityHigh, "### 🟠 High"},
		{model.SeverityMedium, "### 🟡 Medium"},
		{model.SeverityLow, "### 🔵 Low"},
	}

	for _, sev := range severities {
		warnings := report.WarningsBySeverity(sev.level)
		if len(warnings) == 0 {
			continue
		}

		md.PlainText(sev.header)
		md.PlainText("")
		w.writeWarningsTable(md, warnings)
	}
}

// writeWarningsTable writes a table of warnings with details.
func (w *MarkdownWriter) writeWarningsTable(md *markdown.Markdown, warnings []model.PrivacyWarning) {
	headers := []string{"Description", "Platform", "Personas"}

	rows := make([][]string, len(warnings))
	for i, warning := range warnings {
		platform := w.platformName(warning.Value)
		if platform == "" {
			platform = "-"
		}

		rows[i] = []string{
			truncateString(warning.Description, 60),
			platform,
			strings.Join(warning.AffectedPersonas, ", "),
		}
	}

	md.Table(markdown.TableSet{
		Header: headers,
		Rows:   rows,
	})
	md.PlainText("")

	for _, warning := range warnings {
		info := model.GetWarningInfo(warning.Type)
		if info.Impact != "" {
			md.Details(string(warning.Type), info.Impact)
		}
	}
	md.PlainText("")
}

// platformName extracts and title-cases the platform prefix of an account
// value. Values without a platform prefix yield empty.
func (w *MarkdownWriter) platformName(value string) string {
	platform, _, found := strings.Cut(value, ":")
	if !found || platform == "" {
		return ""
	}
	return w.titleCaser.String(platform)
}

// writeRecommendations writes the recommendations section.
func (w *MarkdownWriter) writeRecommendations(md *markdown.Markdown, report *model.AnalysisReport) {
	md.H2("Recommendations")
	md.PlainText("")

	if len(report.Recommendations) == 0 {
		md.PlainText("Nothing to do.")
		md.PlainText("")
		return
	}

	md.OrderedList(report.Recommendations...)
	md.PlainText("")
}

// writeGraph writes the persona linkage section.
func (w *MarkdownWriter) writeGraph(md *markdown.Markdown, report *model.AnalysisReport) {
	if len(report.Graph.Links) == 0 {
		return
	}

	md.H2("Persona Linkage")
	md.PlainText("")

	rows := make([][]string, len(report.Graph.Links))
	for i, link := range report.Graph.Links {
		rows[i] = []string{
			"`" + link.Source + "`",
			"`" + link.Target + "`",
			string(link.Type),
			link.SeverityText,
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Source", "Target", "Type", "Severity"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [PersonaGuard](https://github.com/nao1215/personaguard)*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
