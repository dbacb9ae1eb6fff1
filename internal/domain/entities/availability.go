package entities

import (
	"time"
)

// Location is a physical consultation address with map coordinates
type Location struct {
	Address   string  `json:"address" db:"address"`
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}

// Availability is a doctor-defined window of bookable time. It is created by
// doctor-side tooling and immutable from the patient app's perspective.
type Availability struct {
	ID       string `json:"id" db:"id"`
	DoctorID string `json:"doctor_id" db:"doctor_id"`
	// Date is the calendar day of the window as a plain YYYY-MM-DD string.
	Date         string           `json:"date" db:"date"`
	StartTime    time.Time        `json:"start_time" db:"start_time"`
	EndTime      time.Time        `json:"end_time" db:"end_time"`
	SlotDuration int              `json:"slot_duration" db:"slot_duration"`
	Mode         ConsultationMode `json:"mode" db:"mode"`
	Location     *Location        `json:"location,omitempty"`
	Price        float64          `json:"price" db:"price"`
}
