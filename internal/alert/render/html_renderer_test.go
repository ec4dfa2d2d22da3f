package render

import (
	"strings"
	"testing"
	"time"
)

func TestRenderViolations(t *testing.T) {
	r := NewRenderer()
	html, err := r.RenderViolations(ViolationsInput{
		FacilityName: "Sunshine Kids",
		Violations: []ViolationView{{
			RiskLevel:   "High",
			Description: "Supervision standard not met",
			Date:        time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"Sunshine Kids", "High", "Supervision standard not met"} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered email missing %q", want)
		}
	}
}

func TestRenderViolationsEscapesHTML(t *testing.T) {
	r := NewRenderer()
	html, err := r.RenderViolations(ViolationsInput{
		FacilityName: "Kids <script>alert(1)</script>",
		Violations:   []ViolationView{{RiskLevel: "Low", Date: time.Now()}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Fatal("facility name must be escaped")
	}
}

func TestRenderInspections(t *testing.T) {
	r := NewRenderer()
	html, err := r.RenderInspections(InspectionsInput{
		FacilityName: "Sunshine Kids",
		Inspections: []InspectionView{{
			Type:   "Monitoring",
			Result: "Completed",
			Date:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "Monitoring") || !strings.Contains(html, "Completed") {
		t.Fatal("rendered email missing inspection details")
	}
}

func TestRenderRatingChangeShowsAllFields(t *testing.T) {
	r := NewRenderer()
	html, err := r.RenderRatingChange(RatingInput{
		FacilityName: "Sunshine Kids",
		Fields: []FieldRow{
			{Label: "Rating", Previous: "3.0", Current: "3.5"},
			{Label: "Total Capacity", Previous: "50", Current: "50"},
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"Rating", "3.0", "3.5", "Total Capacity", "50"} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered email missing %q", want)
		}
	}
}

func TestRenderDigest(t *testing.T) {
	r := NewRenderer()
	html, err := r.RenderDigest(DigestInput{
		DisplayName: "Ana",
		Date:        time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
		Items: []DigestItem{
			{Message: "1 new violation reported for Sunshine Kids", CreatedAt: time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC)},
			{Message: "Rating information updated for Sunshine Kids", CreatedAt: time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)},
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "Ana") {
		t.Fatal("digest must greet the subscriber")
	}
	if !strings.Contains(html, "1 new violation reported for Sunshine Kids") {
		t.Fatal("digest must list each notification message")
	}
}
