package entities

import (
	"time"
)

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	// AppointmentStatusInProgress is a created booking awaiting payment.
	AppointmentStatusInProgress AppointmentStatus = "in-progress"
	AppointmentStatusConfirmed  AppointmentStatus = "confirmed"
	AppointmentStatusCanceled   AppointmentStatus = "canceled"
	AppointmentStatusExpired    AppointmentStatus = "expired"
	AppointmentStatusCompleted  AppointmentStatus = "completed"
)

// ConsultationMode distinguishes online video consultations from in-person visits
type ConsultationMode string

const (
	ModeOnline   ConsultationMode = "online"
	ModePhysical ConsultationMode = "physical"
)

// Appointment represents a patient's claim on a slot
type Appointment struct {
	ID          string            `json:"id" db:"id"`
	DoctorID    string            `json:"doctor_id" db:"doctor_id"`
	PatientID   string            `json:"patient_id" db:"patient_id"`
	Date        time.Time         `json:"date" db:"date"`
	Type        ConsultationMode  `json:"type" db:"type"`
	SlotID      string            `json:"slot_id" db:"slot_id"`
	SlotPortion string            `json:"slot_portion" db:"slot_portion"`
	Location    string            `json:"location" db:"location"`
	Price       float64           `json:"price" db:"price"`
	Status      AppointmentStatus `json:"status" db:"status"`
	// ChannelName is the realtime video room identifier; it equals the
	// appointment id assigned at creation.
	ChannelName string    `json:"channel_name" db:"channel_name"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// IsPending reports whether the appointment is still awaiting payment.
func (a *Appointment) IsPending() bool {
	return a.Status == AppointmentStatusInProgress
}

// AppointmentView is an appointment with derived presentation state attached.
type AppointmentView struct {
	Appointment
	// CountdownSeconds is the non-negative time until an online confirmed
	// appointment starts; nil for physical or unconfirmed appointments.
	CountdownSeconds *int64 `json:"countdown_seconds,omitempty"`
	// CanJoinCall is true once an online confirmed appointment's countdown
	// has reached zero.
	CanJoinCall bool `json:"can_join_call"`
}
