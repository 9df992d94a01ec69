package analyzer

import (
	"testing"

	"github.com/nao1215/personaguard/internal/model"
)

// warningOf is a test helper that builds a warning of the given type.
func warningOf(warningType model.WarningType) model.PrivacyWarning {
	return model.NewWarning(warningType, "test warning", "", []string{"p1", "p2"})
}

// repeatWarnings builds n warnings of the given type.
func repeatWarnings(warningType model.WarningType, n int) []model.PrivacyWarning {
	warnings := make([]model.PrivacyWarning, 0, n)
	for i := 0; i < n; i++ {
		warnings = append(warnings, warningOf(warningType))
	}
	return warnings
}

// TestCalculateScore tests the weighted score and sub-score derivation.
func TestCalculateScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name               string
		warnings           []model.PrivacyWarning
		wantScore          int
		wantGrade          string
		wantIsolation      int
		wantUniqueness     int
		wantSeparation     int
	}{
		{
			name:           "no warnings is a perfect score",
			warnings:       []model.PrivacyWarning{},
			wantScore:      100,
			wantGrade:      "A+",
			wantIsolation:  100,
			wantUniqueness: 100,
			wantSeparation: 100,
		},
		{
			name:           "nil warnings is a perfect score",
			warnings:       nil,
			wantScore:      100,
			wantGrade:      "A+",
			wantIsolation:  100,
			wantUniqueness: 100,
			wantSeparation: 100,
		},
		{
			name:           "single overlap costs half the isolation sub-score",
			warnings:       repeatWarnings(model.TypeAccountOverlap, 1),
			wantScore:      75,
			wantGrade:      "C",
			wantIsolation:  50,
			wantUniqueness: 100,
			wantSeparation: 100,
		},
		{
			name:           "single username reuse",
			warnings:       repeatWarnings(model.TypeUsernameReuse, 1),
			wantScore:      93, // 100*0.5 + 75*0.3 + 100*0.2 = 92.5, rounds up
			wantGrade:      "A",
			wantIsolation:  100,
			wantUniqueness: 75,
			wantSeparation: 100,
		},
		{
			name:           "single metadata similarity",
			warnings:       repeatWarnings(model.TypeMetadataSimilarity, 1),
			wantScore:      97,
			wantGrade:      "A+",
			wantIsolation:  100,
			wantUniqueness: 100,
			wantSeparation: 85,
		},
		{
			name:           "sub-scores clamp at zero",
			warnings:       repeatWarnings(model.TypeAccountOverlap, 3),
			wantScore:      50,
			wantGrade:      "F",
			wantIsolation:  0,
			wantUniqueness: 100,
			wantSeparation: 100,
		},
		{
			name: "mixed warning types",
			warnings: append(
				repeatWarnings(model.TypeAccountOverlap, 1),
				warningOf(model.TypeUsernameReuse),
				warningOf(model.TypeMetadataSimilarity),
			),
			wantScore:      65, // 50*0.5 + 75*0.3 + 85*0.2 = 64.5, rounds up
			wantGrade:      "D",
			wantIsolation:  50,
			wantUniqueness: 75,
			wantSeparation: 85,
		},
		{
			name: "everything gone wrong",
			warnings: append(
				repeatWarnings(model.TypeAccountOverlap, 5),
				append(
					repeatWarnings(model.TypeUsernameReuse, 5),
					repeatWarnings(model.TypeMetadataSimilarity, 10)...,
				)...,
			),
			wantScore:      0,
			wantGrade:      "F",
			wantIsolation:  0,
			wantUniqueness: 0,
			wantSeparation: 0,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := CalculateScore(tt.warnings)
			if got.Score != tt.wantScore {
				t.Errorf("score: expected %d, got %d", tt.wantScore, got.Score)
			}
			if got.Grade != tt.wantGrade {
				t.Errorf("grade: expected %q, got %q", tt.wantGrade, got.Grade)
			}
			if got.AccountIsolation != tt.wantIsolation {
				t.Errorf("account isolation: expected %d, got %d", tt.wantIsolation, got.AccountIsolation)
			}
			if got.UsernameUniqueness != tt.wantUniqueness {
				t.Errorf("username uniqueness: expected %d, got %d", tt.wantUniqueness, got.UsernameUniqueness)
			}
			if got.MetadataSeparation != tt.wantSeparation {
				t.Errorf("metadata separation: expected %d, got %d", tt.wantSeparation, got.MetadataSeparation)
			}
		})
	}
}

// TestGradeBoundaries tests every letter-grade cutoff.
func TestGradeBoundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score int
		want  string
	}{
		{0, "F"},
		{59, "F"},
		{60, "D"},
		{69, "D"},
		{70, "C"},
		{79, "C"},
		{80, "B"},
		{89, "B"},
		{90, "A"},
		{94, "A"},
		{95, "A+"},
		{100, "A+"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()

			if got := gradeFor(tt.score); got != tt.want {
				t.Errorf("gradeFor(%d): expected %q, got %q", tt.score, tt.want, got)
			}
		})
	}
}
