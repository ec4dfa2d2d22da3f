package diff

import (
	"testing"
	"time"

	facilitydomain "github.com/lonestarcare/carewatch/internal/facility/domain"
	"github.com/lonestarcare/carewatch/internal/snapshot"
)

func fullRecord(rating float64, capacity, inspections, violations int) snapshot.Record {
	return snapshot.Record{
		snapshot.FieldRating:         rating,
		snapshot.FieldCapacity:       float64(capacity),
		snapshot.FieldInspections2Yr: float64(inspections),
		snapshot.FieldViolations2Yr:  float64(violations),
	}
}

func richSnapshot(violationIDs ...string) snapshot.Snapshot {
	violations := make([]facilitydomain.Violation, 0, len(violationIDs))
	for _, id := range violationIDs {
		violations = append(violations, facilitydomain.Violation{ViolationID: id, RiskLevel: "Medium"})
	}
	return snapshot.Snapshot{
		OperationNumber: "100001",
		Record:          fullRecord(4.0, 50, 4, 2),
		Violations:      violations,
		ObservedAt:      time.Now(),
	}
}

func TestFirstSightYieldsNoChanges(t *testing.T) {
	previous := snapshot.Sentinel("100001", time.Now())
	current := richSnapshot("v1", "v2")

	set := Diff(previous, current)
	if !set.Empty() {
		t.Fatalf("expected empty change-set on first sight, got %+v", set)
	}
}

func TestNoDataGuardOnCurrent(t *testing.T) {
	previous := richSnapshot("v1", "v2")
	current := snapshot.Sentinel("100001", time.Now())

	set := Diff(previous, current)
	if !set.Empty() {
		t.Fatalf("expected empty change-set against sentinel, got %+v", set)
	}
}

func TestNoveltyIsByIDNotContent(t *testing.T) {
	previous := richSnapshot("v1")
	previous.Violations[0].RiskLevel = "Low"

	current := richSnapshot("v1")
	current.Violations[0].RiskLevel = "High"

	set := Diff(previous, current)
	if len(set.NewViolations) != 0 {
		t.Fatalf("edited violation with same id must not be new, got %d", len(set.NewViolations))
	}
}

func TestNewViolationDetected(t *testing.T) {
	previous := richSnapshot("v1")
	current := richSnapshot("v1", "v2")

	set := Diff(previous, current)
	if len(set.NewViolations) != 1 {
		t.Fatalf("expected 1 new violation, got %d", len(set.NewViolations))
	}
	if set.NewViolations[0].ViolationID != "v2" {
		t.Fatalf("expected v2, got %s", set.NewViolations[0].ViolationID)
	}
	if set.RatingChange != nil {
		t.Fatalf("unchanged record must not produce a rating change")
	}
}

func TestNewInspectionDetected(t *testing.T) {
	previous := richSnapshot()
	previous.Inspections = []facilitydomain.Inspection{{InspectionID: "i1"}}

	current := richSnapshot()
	current.Inspections = []facilitydomain.Inspection{{InspectionID: "i2"}, {InspectionID: "i1"}}

	set := Diff(previous, current)
	if len(set.NewInspections) != 1 || set.NewInspections[0].InspectionID != "i2" {
		t.Fatalf("expected only i2 as new, got %+v", set.NewInspections)
	}
}

func TestRatingChangeCarriesFullFieldTable(t *testing.T) {
	previous := richSnapshot()
	previous.Record = fullRecord(3.0, 50, 4, 2)

	current := richSnapshot()
	current.Record = fullRecord(3.5, 50, 4, 2)

	set := Diff(previous, current)
	if set.RatingChange == nil {
		t.Fatal("expected a rating change")
	}
	for _, field := range snapshot.TrackedFields {
		if _, ok := set.RatingChange.Previous[field]; !ok {
			t.Fatalf("previous table missing field %s", field)
		}
		if _, ok := set.RatingChange.Current[field]; !ok {
			t.Fatalf("current table missing field %s", field)
		}
	}
	if set.RatingChange.Previous[snapshot.FieldRating] != 3.0 {
		t.Fatalf("expected previous rating 3.0, got %v", set.RatingChange.Previous[snapshot.FieldRating])
	}
	if set.RatingChange.Current[snapshot.FieldRating] != 3.5 {
		t.Fatalf("expected current rating 3.5, got %v", set.RatingChange.Current[snapshot.FieldRating])
	}
	if set.RatingChange.Previous[snapshot.FieldCapacity] != 50 || set.RatingChange.Current[snapshot.FieldCapacity] != 50 {
		t.Fatal("unchanged fields must still appear in the table")
	}
}

func TestIdenticalSnapshotsAreEmpty(t *testing.T) {
	previous := richSnapshot("v1")
	current := richSnapshot("v1")

	set := Diff(previous, current)
	if !set.Empty() {
		t.Fatalf("expected empty change-set, got %+v", set)
	}
}

func TestCapacityChangeTriggersRatingChange(t *testing.T) {
	previous := richSnapshot()
	current := richSnapshot()
	current.Record = fullRecord(4.0, 75, 4, 2)

	set := Diff(previous, current)
	if set.RatingChange == nil {
		t.Fatal("capacity change must trigger a rating change")
	}
}
