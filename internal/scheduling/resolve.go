package scheduling

import (
	"time"

	"github.com/healthhub/healthhub-backend/internal/domain/entities"
)

// BookingState is the resolved state of one slot for one viewer
type BookingState string

const (
	// StateFree means no claim exists and the slot may be selected.
	StateFree BookingState = "free"
	// StatePending means the viewer holds an unpaid booking for the slot.
	StatePending BookingState = "pending"
	// StateConfirmed means some patient holds a paid booking for the slot.
	StateConfirmed BookingState = "confirmed"
	// StateCanceled means the viewer canceled a booking for the slot; it is
	// shown for context but remains selectable.
	StateCanceled BookingState = "canceled"
)

// Selectable reports whether a slot in this state may be picked for booking.
func (s BookingState) Selectable() bool {
	return s == StateFree || s == StateCanceled
}

// Resolution pairs a booking state with the appointment that produced it.
type Resolution struct {
	State BookingState `json:"state"`
	// AppointmentID is set for pending, confirmed and canceled states.
	AppointmentID string `json:"appointment_id,omitempty"`
}

// Resolve determines the booking state of a slot instant. A confirmed
// appointment from any patient always wins; failing that, the viewer's own
// pending or canceled booking is reported; otherwise the slot is free.
// Instant matching is exact, so both appointment sets must carry timestamps
// derived from the same Expand run.
func Resolve(slotID string, instant time.Time, confirmed, viewerOwned []*entities.Appointment) Resolution {
	for _, appt := range confirmed {
		if appt.SlotID == slotID && appt.Date.Equal(instant) {
			return Resolution{State: StateConfirmed, AppointmentID: appt.ID}
		}
	}
	// A patient who cancels and rebooks the same instant owns both records,
	// so the live booking must outrank the canceled one regardless of order.
	var canceled *entities.Appointment
	for _, appt := range viewerOwned {
		if appt.SlotID != slotID || !appt.Date.Equal(instant) {
			continue
		}
		switch appt.Status {
		case entities.AppointmentStatusConfirmed:
			return Resolution{State: StateConfirmed, AppointmentID: appt.ID}
		case entities.AppointmentStatusCanceled:
			if canceled == nil {
				canceled = appt
			}
		default:
			return Resolution{State: StatePending, AppointmentID: appt.ID}
		}
	}
	if canceled != nil {
		return Resolution{State: StateCanceled, AppointmentID: canceled.ID}
	}
	return Resolution{State: StateFree}
}

// ResolvedSlot is a slot annotated with its booking state for the viewer.
type ResolvedSlot struct {
	Slot
	Resolution
	Selectable bool `json:"selectable"`
}

// ResolveAll annotates every slot of an Expand run against the confirmed and
// viewer-owned appointment sets.
func ResolveAll(slots []Slot, confirmed, viewerOwned []*entities.Appointment) []ResolvedSlot {
	resolved := make([]ResolvedSlot, 0, len(slots))
	for _, slot := range slots {
		res := Resolve(slot.AvailabilityID, slot.Start, confirmed, viewerOwned)
		resolved = append(resolved, ResolvedSlot{
			Slot:       slot,
			Resolution: res,
			Selectable: res.State.Selectable(),
		})
	}
	return resolved
}
