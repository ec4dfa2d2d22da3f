package repository

import (
	"context"
	"strings"

	"github.com/lonestarcare/carewatch/internal/facility/domain"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) domain.Repository {
	return &Repository{db: db}
}

func (r *Repository) FindByOperationNumber(ctx context.Context, operationNumber string) (*domain.Facility, error) {
	operationNumber = strings.TrimSpace(operationNumber)
	if operationNumber == "" {
		return nil, nil
	}

	var row domain.Facility
	err := r.db.WithContext(ctx).Raw(
		`SELECT operation_number, operation_name, city, rating, total_capacity,
		        inspections_2yr, violations_2yr, updated_at
		 FROM facilities
		 WHERE operation_number = ?`,
		operationNumber,
	).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.OperationNumber == "" {
		return nil, nil
	}
	return &row, nil
}

func (r *Repository) RecentViolations(ctx context.Context, operationNumber string, limit int) ([]domain.Violation, error) {
	var rows []domain.Violation
	err := r.db.WithContext(ctx).Raw(
		`SELECT violation_id, operation_number, risk_level, description, violation_date
		 FROM facility_violations
		 WHERE operation_number = ?
		 ORDER BY violation_date DESC, violation_id DESC
		 LIMIT ?`,
		operationNumber,
		limit,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) RecentInspections(ctx context.Context, operationNumber string, limit int) ([]domain.Inspection, error) {
	var rows []domain.Inspection
	err := r.db.WithContext(ctx).Raw(
		`SELECT inspection_id, operation_number, inspection_type, result, inspection_date
		 FROM facility_inspections
		 WHERE operation_number = ?
		 ORDER BY inspection_date DESC, inspection_id DESC
		 LIMIT ?`,
		operationNumber,
		limit,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
