package render

import "time"

// ViolationsInput renders the new-violations alert email.
type ViolationsInput struct {
	FacilityName string
	Violations   []ViolationView
}

type ViolationView struct {
	RiskLevel   string
	Description string
	Date        time.Time
}

// InspectionsInput renders the new-inspections alert email.
type InspectionsInput struct {
	FacilityName string
	Inspections  []InspectionView
}

type InspectionView struct {
	Type   string
	Result string
	Date   time.Time
}

// RatingInput renders the rating-change alert email as a before/after
// table over the full tracked field set.
type RatingInput struct {
	FacilityName string
	Fields       []FieldRow
}

type FieldRow struct {
	Label    string
	Previous string
	Current  string
}

// DigestInput renders the daily digest email.
type DigestInput struct {
	DisplayName string
	Date        time.Time
	Items       []DigestItem
}

type DigestItem struct {
	Message   string
	CreatedAt time.Time
}

type Renderer interface {
	RenderViolations(input ViolationsInput) (string, error)
	RenderInspections(input InspectionsInput) (string, error)
	RenderRatingChange(input RatingInput) (string, error)
	RenderDigest(input DigestInput) (string, error)
}
