package entities

import (
	"time"
)

// Payment records a successful charge for a confirmed appointment.
// There is at most one payment per appointment.
type Payment struct {
	AppointmentID   string    `json:"appointment_id" db:"appointment_id"`
	PatientID       string    `json:"patient_id" db:"patient_id"`
	PaymentMethodID string    `json:"payment_method_id" db:"payment_method_id"`
	Amount          float64   `json:"amount" db:"amount"`
	DoctorID        string    `json:"doctor_id" db:"doctor_id"`
	BillingEmail    string    `json:"billing_email" db:"billing_email"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// PaymentDetail is a payment joined with doctor and appointment context for
// the patient's payment history.
type PaymentDetail struct {
	Payment
	DoctorName      string           `json:"doctor_name"`
	AppointmentDate time.Time        `json:"appointment_date"`
	Type            ConsultationMode `json:"type"`
}
