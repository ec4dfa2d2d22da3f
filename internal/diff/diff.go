// Package diff compares two facility snapshots and reports what changed.
package diff

import (
	facilitydomain "github.com/lonestarcare/carewatch/internal/facility/domain"
	"github.com/lonestarcare/carewatch/internal/snapshot"
)

// RatingChange carries the complete before/after set of tracked fields.
// When any tracked field differs the whole table is reported, because the
// rating-change email renders every field side by side.
type RatingChange struct {
	Previous snapshot.Record
	Current  snapshot.Record
}

// ChangeSet is the structured difference between two snapshots of one
// facility. It is ephemeral; nothing here is persisted.
type ChangeSet struct {
	NewViolations  []facilitydomain.Violation
	NewInspections []facilitydomain.Inspection
	RatingChange   *RatingChange
}

// Empty reports whether the change-set warrants no notification.
func (c ChangeSet) Empty() bool {
	return len(c.NewViolations) == 0 && len(c.NewInspections) == 0 && c.RatingChange == nil
}

// Diff computes the changes between a previous and a current snapshot.
// If either side carries no record data there is no baseline to compare
// against, so the result is empty: first sight and fetch failures never
// produce alerts.
func Diff(previous, current snapshot.Snapshot) ChangeSet {
	if !previous.HasData() || !current.HasData() {
		return ChangeSet{}
	}

	var set ChangeSet
	set.NewViolations = newViolations(previous.Violations, current.Violations)
	set.NewInspections = newInspections(previous.Inspections, current.Inspections)
	set.RatingChange = ratingChange(previous.Record, current.Record)
	return set
}

// Novelty is decided by identifier alone. A violation edited or re-dated
// under the same id is not new.
func newViolations(previous, current []facilitydomain.Violation) []facilitydomain.Violation {
	seen := make(map[string]struct{}, len(previous))
	for _, v := range previous {
		seen[v.ViolationID] = struct{}{}
	}
	var fresh []facilitydomain.Violation
	for _, v := range current {
		if _, ok := seen[v.ViolationID]; !ok {
			fresh = append(fresh, v)
		}
	}
	return fresh
}

func newInspections(previous, current []facilitydomain.Inspection) []facilitydomain.Inspection {
	seen := make(map[string]struct{}, len(previous))
	for _, i := range previous {
		seen[i.InspectionID] = struct{}{}
	}
	var fresh []facilitydomain.Inspection
	for _, i := range current {
		if _, ok := seen[i.InspectionID]; !ok {
			fresh = append(fresh, i)
		}
	}
	return fresh
}

func ratingChange(previous, current snapshot.Record) *RatingChange {
	changed := false
	for _, field := range snapshot.TrackedFields {
		if previous[field] != current[field] {
			changed = true
			break
		}
	}
	if !changed {
		return nil
	}

	prevCopy := make(snapshot.Record, len(snapshot.TrackedFields))
	currCopy := make(snapshot.Record, len(snapshot.TrackedFields))
	for _, field := range snapshot.TrackedFields {
		prevCopy[field] = previous[field]
		currCopy[field] = current[field]
	}
	return &RatingChange{Previous: prevCopy, Current: currCopy}
}
