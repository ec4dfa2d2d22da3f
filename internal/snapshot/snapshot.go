package snapshot

import (
	"time"

	facilitydomain "github.com/lonestarcare/carewatch/internal/facility/domain"
)

// Tracked record fields. A change in any of them counts as a rating change.
const (
	FieldRating         = "rating"
	FieldCapacity       = "total_capacity"
	FieldInspections2Yr = "inspections_2yr"
	FieldViolations2Yr  = "violations_2yr"
)

// TrackedFields lists the rating-relevant fields in display order.
var TrackedFields = []string{FieldRating, FieldCapacity, FieldInspections2Yr, FieldViolations2Yr}

// Record holds the tracked rating-relevant fields of one facility. An empty
// record means "no data available": the facility was missing or the fetch
// failed, and the snapshot must never be diffed as if it were real state.
type Record map[string]float64

// Snapshot is the observed state of one facility at a point in time.
type Snapshot struct {
	OperationNumber string
	FacilityName    string
	Record          Record
	Violations      []facilitydomain.Violation
	Inspections     []facilitydomain.Inspection
	ObservedAt      time.Time
}

// HasData reports whether the snapshot carries a facility record.
func (s Snapshot) HasData() bool {
	return len(s.Record) > 0
}

// Sentinel returns the "no data" snapshot for a facility.
func Sentinel(operationNumber string, observedAt time.Time) Snapshot {
	return Snapshot{
		OperationNumber: operationNumber,
		Record:          Record{},
		ObservedAt:      observedAt,
	}
}
