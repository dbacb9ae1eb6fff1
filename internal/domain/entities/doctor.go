package entities

import (
	"time"
)

// DoctorStatus is the admin-side approval state of a doctor profile
type DoctorStatus string

const (
	DoctorStatusApproved DoctorStatus = "approved"
	DoctorStatusPending  DoctorStatus = "pending"
)

// Doctor is a bookable practitioner profile
type Doctor struct {
	ID             string       `json:"id" db:"id"`
	FullName       string       `json:"full_name" db:"full_name"`
	Specialist     string       `json:"specialist" db:"specialist"`
	Email          string       `json:"email" db:"email"`
	Phone          string       `json:"phone" db:"phone"`
	Experience     float64      `json:"experience" db:"experience"`
	ProfilePicture string       `json:"profile_picture" db:"profile_picture"`
	Status         DoctorStatus `json:"status" db:"status"`
	CreatedAt      time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at" db:"updated_at"`
}
