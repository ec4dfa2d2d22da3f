package events

// Alert pipeline event types recorded in the outbox for downstream
// consumers (webhooks, news feed).
const (
	EventFacilityChanged = "facility.changed"
)

// FacilityChangedPayload captures the minimal data downstream consumers
// need to react to a detected change.
type FacilityChangedPayload struct {
	OperationNumber string `json:"operation_number"`
	FacilityName    string `json:"facility_name,omitempty"`
	NewViolations   int    `json:"new_violations"`
	NewInspections  int    `json:"new_inspections"`
	RatingChanged   bool   `json:"rating_changed"`
	CheckedAt       string `json:"checked_at"`
}

// ToMap converts a payload into an outbox-friendly map.
func (p FacilityChangedPayload) ToMap() map[string]any {
	payload := map[string]any{
		"operation_number": p.OperationNumber,
		"new_violations":   p.NewViolations,
		"new_inspections":  p.NewInspections,
		"rating_changed":   p.RatingChanged,
		"checked_at":       p.CheckedAt,
	}
	if p.FacilityName != "" {
		payload["facility_name"] = p.FacilityName
	}
	return payload
}
