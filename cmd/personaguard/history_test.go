package main

import (
	"encoding/json"
	"strings"
	"testing"
)

// setupAnalysisHistory records two analyses: one with a shared account
// between the personas, then one after the link is removed. The first
// run scores 75 with one high warning, the second scores 100 with none.
func setupAnalysisHistory(t *testing.T) string {
	t.Helper()

	cfgPath, _ := setupLinkedPersonas(t)
	if _, err := runCommand(t, "-c", cfgPath, "analyze",
		"--passphrase", testPassphrase); err != nil {
		t.Fatalf("failed to record first analysis: %v", err)
	}
	if _, err := runCommand(t, "-c", cfgPath, "disconnect", "gaming", "twitter:@shared",
		"--passphrase", testPassphrase); err != nil {
		t.Fatalf("failed to disconnect account: %v", err)
	}
	if _, err := runCommand(t, "-c", cfgPath, "analyze",
		"--passphrase", testPassphrase); err != nil {
		t.Fatalf("failed to record second analysis: %v", err)
	}
	return cfgPath
}

// TestHistoryCmdList tests listing recorded analyses.
func TestHistoryCmdList(t *testing.T) {
	cfgPath := setupAnalysisHistory(t)

	output, err := runCommand(t, "-c", cfgPath, "history", "--list")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(output, "Recorded analyses (2)") {
		t.Errorf("expected 2 recorded analyses, got:\n%s", output)
	}
	for _, want := range []string{"ID", "Date", "Personas", "Score", "Grade"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected listing column %q, got:\n%s", want, output)
		}
	}
}

// TestHistoryCmdCompare tests the default comparison of the latest two
// analyses.
func TestHistoryCmdCompare(t *testing.T) {
	cfgPath := setupAnalysisHistory(t)

	output, err := runCommand(t, "-c", cfgPath, "history")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(output, "IMPROVED") {
		t.Errorf("expected improved privacy status, got:\n%s", output)
	}
	if !strings.Contains(output, "+25") {
		t.Errorf("expected score delta +25, got:\n%s", output)
	}
	if !strings.Contains(output, "Resolved Warnings (1)") {
		t.Errorf("expected one resolved warning, got:\n%s", output)
	}
	if strings.Contains(output, "New Warnings") {
		t.Errorf("expected no new warnings section, got:\n%s", output)
	}
}

// TestHistoryCmdJSONOutput tests machine-readable comparison output.
func TestHistoryCmdJSONOutput(t *testing.T) {
	cfgPath := setupAnalysisHistory(t)

	output, err := runCommand(t, "-c", cfgPath, "history", "--json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var result AnalysisComparison
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("failed to parse comparison JSON: %v", err)
	}
	if result.PreviousRun.Score != 75 {
		t.Errorf("expected previous score 75, got %d", result.PreviousRun.Score)
	}
	if result.CurrentRun.Score != 100 {
		t.Errorf("expected current score 100, got %d", result.CurrentRun.Score)
	}
	if result.ScoreDelta != 25 {
		t.Errorf("expected score delta 25, got %d", result.ScoreDelta)
	}
	if result.Direction != directionImproved {
		t.Errorf("expected direction %q, got %q", directionImproved, result.Direction)
	}
	if len(result.ResolvedWarnings) != 1 {
		t.Errorf("expected 1 resolved warning, got %d", len(result.ResolvedWarnings))
	}
	if len(result.NewWarnings) != 0 {
		t.Errorf("expected no new warnings, got %d", len(result.NewWarnings))
	}
	if result.UnchangedCount != 0 {
		t.Errorf("expected no unchanged warnings, got %d", result.UnchangedCount)
	}
}

// TestHistoryCmdWithID tests comparing against an explicit earlier run.
func TestHistoryCmdWithID(t *testing.T) {
	cfgPath := setupAnalysisHistory(t)

	output, err := runCommand(t, "-c", cfgPath, "history", "--with-id", "1", "--json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var result AnalysisComparison
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("failed to parse comparison JSON: %v", err)
	}
	if result.PreviousRun.Score != 75 {
		t.Errorf("expected previous score 75, got %d", result.PreviousRun.Score)
	}
}

// TestHistoryCmdWithLatestID tests that comparing the latest run with
// itself is rejected.
func TestHistoryCmdWithLatestID(t *testing.T) {
	cfgPath := setupAnalysisHistory(t)

	_, err := runCommand(t, "-c", cfgPath, "history", "--with-id", "2")
	if err == nil {
		t.Fatal("expected error when comparing the latest run with itself")
	}
	if !strings.Contains(err.Error(), "latest analysis") {
		t.Errorf("expected latest-run error, got %v", err)
	}
}

// TestHistoryCmdNeedsTwoRuns tests the single-analysis case.
func TestHistoryCmdNeedsTwoRuns(t *testing.T) {
	cfgPath, _ := setupLinkedPersonas(t)
	if _, err := runCommand(t, "-c", cfgPath, "analyze",
		"--passphrase", testPassphrase); err != nil {
		t.Fatalf("failed to record analysis: %v", err)
	}

	_, err := runCommand(t, "-c", cfgPath, "history")
	if err == nil {
		t.Fatal("expected error with a single recorded analysis")
	}
	if !strings.Contains(err.Error(), "at least 2") {
		t.Errorf("expected at-least-2 error, got %v", err)
	}
}

// TestHistoryCmdNoLedger tests history without any recorded analysis.
func TestHistoryCmdNoLedger(t *testing.T) {
	cfgPath, _ := writeTestConfig(t)

	_, err := runCommand(t, "-c", cfgPath, "history")
	if err == nil {
		t.Fatal("expected error without a ledger")
	}
	if !strings.Contains(err.Error(), "no analysis history") {
		t.Errorf("expected no-history error, got %v", err)
	}
}
