package analyzer

import (
	"strings"

	"github.com/nao1215/personaguard/internal/model"
	"github.com/nao1215/personaguard/internal/similarity"
)

// MetadataSimilarityDetector flags personas whose free-text notes are
// suspiciously similar. Shared phrasing or copy-pasted boilerplate in
// private annotations can reveal the same real-world author.
//
// This detector is strictly pairwise at the persona level: two personas
// with similar notes trigger exactly one warning regardless of how many
// other personas exist. Pairs where either note is empty are skipped.
type MetadataSimilarityDetector struct{}

// NewMetadataSimilarityDetector creates a new MetadataSimilarityDetector.
func NewMetadataSimilarityDetector() *MetadataSimilarityDetector {
	return &MetadataSimilarityDetector{}
}

// Name returns the detector name.
func (d *MetadataSimilarityDetector) Name() string {
	return "metadata_similarity"
}

// Detect compares every unordered persona pair (by input index, i < j),
// lowercasing both notes, and emits a warning for pairs scoring strictly
// above the metadata threshold.
func (d *MetadataSimilarityDetector) Detect(personas []model.Persona) []model.PrivacyWarning {
	warnings := make([]model.PrivacyWarning, 0)

	for i := 0; i < len(personas); i++ {
		for j := i + 1; j < len(personas); j++ {
			notesA := personas[i].PrivateData.Notes
			notesB := personas[j].PrivateData.Notes
			if notesA == "" || notesB == "" {
				continue
			}

			if similarity.Score(strings.ToLower(notesA), strings.ToLower(notesB)) <= metadataSimilarityThreshold {
				continue
			}

			// No downstream extraction depends on this description, so it
			// stays generic and keeps the note contents out of the output.
			description := "Persona notes are suspiciously similar and may reveal shared authorship"
			affected := []string{personas[i].ID, personas[j].ID}
			warnings = append(warnings, model.NewWarning(model.TypeMetadataSimilarity, description, "", affected))
		}
	}

	return warnings
}

// Ensure MetadataSimilarityDetector implements Detector.
var _ Detector = (*MetadataSimilarityDetector)(nil)
