package entities

import (
	"time"
)

// AppointmentEventType classifies appointment change notifications
type AppointmentEventType string

const (
	AppointmentEventCreated   AppointmentEventType = "appointment.created"
	AppointmentEventConfirmed AppointmentEventType = "appointment.confirmed"
	AppointmentEventCanceled  AppointmentEventType = "appointment.canceled"
	AppointmentEventExpired   AppointmentEventType = "appointment.expired"
)

// AppointmentEvent is published on the event bus whenever an appointment
// changes, so open slot views can refresh without polling.
type AppointmentEvent struct {
	ID            string               `json:"id"`
	Type          AppointmentEventType `json:"type"`
	AppointmentID string               `json:"appointment_id"`
	DoctorID      string               `json:"doctor_id"`
	SlotID        string               `json:"slot_id"`
	Date          time.Time            `json:"date"`
	OccurredAt    time.Time            `json:"occurred_at"`
}
