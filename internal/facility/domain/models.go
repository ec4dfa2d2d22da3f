package domain

import "time"

// Facility is one licensed daycare operation as last imported from the
// state registry. The operation number is the registry's stable identifier.
type Facility struct {
	OperationNumber string    `gorm:"primaryKey;column:operation_number"`
	OperationName   string    `gorm:"column:operation_name;not null"`
	City            string    `gorm:"column:city"`
	Rating          float64   `gorm:"column:rating;not null"`
	TotalCapacity   int       `gorm:"column:total_capacity;not null"`
	Inspections2Yr  int       `gorm:"column:inspections_2yr;not null"`
	Violations2Yr   int       `gorm:"column:violations_2yr;not null"`
	UpdatedAt       time.Time `gorm:"column:updated_at;not null"`
}

func (Facility) TableName() string { return "facilities" }

// Violation is a standards deficiency recorded against a facility.
type Violation struct {
	ViolationID     string    `gorm:"primaryKey;column:violation_id"`
	OperationNumber string    `gorm:"column:operation_number;not null;index"`
	RiskLevel       string    `gorm:"column:risk_level;not null"`
	Description     string    `gorm:"column:description"`
	ViolationDate   time.Time `gorm:"column:violation_date;not null"`
}

func (Violation) TableName() string { return "facility_violations" }

// Inspection is one monitoring visit recorded against a facility.
type Inspection struct {
	InspectionID    string    `gorm:"primaryKey;column:inspection_id"`
	OperationNumber string    `gorm:"column:operation_number;not null;index"`
	InspectionType  string    `gorm:"column:inspection_type;not null"`
	Result          string    `gorm:"column:result"`
	InspectionDate  time.Time `gorm:"column:inspection_date;not null"`
}

func (Inspection) TableName() string { return "facility_inspections" }
