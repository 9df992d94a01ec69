package model

import "testing"

// TestNewAnalysisReport tests severity counting during report assembly.
func TestNewAnalysisReport(t *testing.T) {
	t.Parallel()

	warnings := []PrivacyWarning{
		NewWarning(TypeAccountOverlap, `Account "x:@a" is connected to multiple personas`, "x:@a", []string{"p1", "p2"}),
		NewWarning(TypeUsernameReuse, "similar usernames", "", []string{"p1", "p3"}),
		NewWarning(TypeMetadataSimilarity, "similar notes", "", []string{"p2", "p3"}),
		NewWarning(TypeMetadataSimilarity, "similar notes", "", []string{"p1", "p2"}),
	}

	report := NewAnalysisReport(3, warnings, PrivacyScore{}, nil, PrivacyGraph{})

	if report.HighCount != 1 {
		t.Errorf("expected 1 high, got %d", report.HighCount)
	}
	if report.MediumCount != 1 {
		t.Errorf("expected 1 medium, got %d", report.MediumCount)
	}
	if report.LowCount != 2 {
		t.Errorf("expected 2 low, got %d", report.LowCount)
	}
	if report.TotalWarnings() != 4 {
		t.Errorf("expected 4 total, got %d", report.TotalWarnings())
	}
	if !report.HasWarnings() {
		t.Error("expected HasWarnings to be true")
	}
}

// TestWarningsBySeverity tests severity filtering.
func TestWarningsBySeverity(t *testing.T) {
	t.Parallel()

	warnings := []PrivacyWarning{
		NewWarning(TypeAccountOverlap, "overlap", "", []string{"p1", "p2"}),
		NewWarning(TypeMetadataSimilarity, "notes", "", []string{"p1", "p2"}),
	}
	report := NewAnalysisReport(2, warnings, PrivacyScore{}, nil, PrivacyGraph{})

	high := report.WarningsBySeverity(SeverityHigh)
	if len(high) != 1 || high[0].Type != TypeAccountOverlap {
		t.Errorf("unexpected high severity warnings: %+v", high)
	}

	medium := report.WarningsBySeverity(SeverityMedium)
	if len(medium) != 0 {
		t.Errorf("expected no medium warnings, got %d", len(medium))
	}
}

// TestNodeLabel tests graph node label truncation.
func TestNodeLabel(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		id       string
		expected string
	}{
		{"long id truncated", "persona-abcdef-123456", "persona-"},
		{"exactly eight chars", "12345678", "12345678"},
		{"short id kept whole", "p1", "p1"},
		{"empty id", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := NodeLabel(tc.id); got != tc.expected {
				t.Errorf("got %q, expected %q", got, tc.expected)
			}
		})
	}
}

// TestPersonaHasAccount tests verbatim account membership.
func TestPersonaHasAccount(t *testing.T) {
	t.Parallel()

	p := Persona{
		ID: "p1",
		PrivateData: PrivateData{
			Accounts: []string{"twitter:@alice", "github:alice"},
		},
	}

	if !p.HasAccount("twitter:@alice") {
		t.Error("expected exact account to match")
	}
	if p.HasAccount("Twitter:@alice") {
		t.Error("expected case-sensitive comparison")
	}
	if p.AccountCount() != 2 {
		t.Errorf("expected 2 accounts, got %d", p.AccountCount())
	}
}
