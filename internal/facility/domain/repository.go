package domain

import "context"

type Repository interface {
	// FindByOperationNumber returns nil when the facility is unknown.
	FindByOperationNumber(ctx context.Context, operationNumber string) (*Facility, error)
	RecentViolations(ctx context.Context, operationNumber string, limit int) ([]Violation, error)
	RecentInspections(ctx context.Context, operationNumber string, limit int) ([]Inspection, error)
}
