package entities

import (
	"time"
)

// MedicineRecord is one entry in a patient's medicine history
type MedicineRecord struct {
	ID        string    `json:"id" db:"id"`
	PatientID string    `json:"patient_id" db:"patient_id"`
	Name      string    `json:"name" db:"name"`
	Dosage    string    `json:"dosage" db:"dosage"`
	Frequency string    `json:"frequency" db:"frequency"`
	Notes     string    `json:"notes" db:"notes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
