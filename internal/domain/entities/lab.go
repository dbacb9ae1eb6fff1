package entities

import (
	"time"
)

// Lab is a diagnostic laboratory offering bookable tests
type Lab struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Address   string    `json:"address" db:"address"`
	Phone     string    `json:"phone" db:"phone"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// LabTest is a single test offered by a lab
type LabTest struct {
	ID       string  `json:"id" db:"id"`
	LabID    string  `json:"lab_id" db:"lab_id"`
	Name     string  `json:"name" db:"name"`
	Category string  `json:"category" db:"category"`
	Price    float64 `json:"price" db:"price"`
}

// LabReportStatus tracks a lab order from booking to result delivery
type LabReportStatus string

const (
	LabReportStatusBooked    LabReportStatus = "booked"
	LabReportStatusCompleted LabReportStatus = "completed"
)

// LabReport is a patient's order for a lab test and its eventual result
type LabReport struct {
	ID            string          `json:"id" db:"id"`
	LabID         string          `json:"lab_id" db:"lab_id"`
	TestID        string          `json:"test_id" db:"test_id"`
	TestName      string          `json:"test_name" db:"test_name"`
	LabName       string          `json:"lab_name" db:"lab_name"`
	Category      string          `json:"category" db:"category"`
	Price         float64         `json:"price" db:"price"`
	PatientID     string          `json:"patient_id" db:"patient_id"`
	Status        LabReportStatus `json:"status" db:"status"`
	PaymentStatus string          `json:"payment_status" db:"payment_status"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}
