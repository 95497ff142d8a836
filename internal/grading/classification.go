package grading

import (
	"sort"
	"strings"

	"github.com/noah-isme/grading-engine/internal/models"
)

type classificationBand struct {
	minCGPA        float64
	classification string
	class          string
}

var (
	diplomaBands = []classificationBand{
		{minCGPA: 4.00, classification: "Distinction", class: "Distinction"},
		{minCGPA: 3.00, classification: "Credit", class: "Credit"},
		{minCGPA: 2.00, classification: "Pass", class: "Pass"},
		{minCGPA: 0, classification: "Fail", class: "Fail"},
	}
	degreeBands = []classificationBand{
		{minCGPA: 4.40, classification: "First Class Honours", class: "First Class"},
		{minCGPA: 3.60, classification: "Second Class Honours (Upper Division)", class: "Second Class Upper"},
		{minCGPA: 2.80, classification: "Second Class Honours (Lower Division)", class: "Second Class Lower"},
		{minCGPA: 2.00, classification: "Pass", class: "Pass"},
		{minCGPA: 0, classification: "Fail", class: "Fail"},
	}
)

// ResolveClassification maps a CGPA to the fixed classification table of a
// program category. Certificates are not classified; unknown categories use
// the degree table.
func ResolveClassification(cgpa float64, category string) models.ClassificationResult {
	result := models.ClassificationResult{CGPA: cgpa}
	var bands []classificationBand
	switch models.ProgramCategory(strings.ToLower(strings.TrimSpace(category))) {
	case models.ProgramCategoryCertificate:
		return result
	case models.ProgramCategoryDiploma:
		bands = diplomaBands
	default:
		bands = degreeBands
	}
	for _, band := range bands {
		if cgpa >= band.minCGPA {
			classification, class := band.classification, band.class
			result.Classification = &classification
			result.Class = &class
			return result
		}
	}
	return result
}

// ResolveConfiguredClassification resolves against classification bands
// configured for a program level. The first band, by descending minimum,
// whose range holds the CGPA wins.
func ResolveConfiguredClassification(cgpa float64, bands []models.AcademicClassification) models.ClassificationResult {
	result := models.ClassificationResult{CGPA: cgpa}
	sorted := make([]models.AcademicClassification, len(bands))
	copy(sorted, bands)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].MinCGPA > sorted[j].MinCGPA })
	for _, band := range sorted {
		if cgpa >= band.MinCGPA && cgpa <= band.MaxCGPA {
			classification := band.ClassificationLabel
			class := band.ClassLabel
			if class == "" {
				class = classification
			}
			result.Classification = &classification
			result.Class = &class
			return result
		}
	}
	return result
}
