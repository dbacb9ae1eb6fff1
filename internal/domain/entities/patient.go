package entities

import (
	"time"
)

// PatientProfileStatus gates booking on a completed profile
type PatientProfileStatus string

const (
	ProfileStatusComplete   PatientProfileStatus = "complete"
	ProfileStatusIncomplete PatientProfileStatus = "incomplete"
)

// Patient is the app user's health profile
type Patient struct {
	ID          string               `json:"id" db:"id"`
	FullName    string               `json:"full_name" db:"full_name"`
	Email       string               `json:"email" db:"email"`
	Phone       string               `json:"phone" db:"phone"`
	DateOfBirth string               `json:"date_of_birth" db:"date_of_birth"`
	Gender      string               `json:"gender" db:"gender"`
	BloodGroup  string               `json:"blood_group" db:"blood_group"`
	Allergies   string               `json:"allergies" db:"allergies"`
	Status      PatientProfileStatus `json:"status" db:"status"`
	CreatedAt   time.Time            `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at" db:"updated_at"`
}
