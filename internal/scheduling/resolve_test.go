package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthhub/healthhub-backend/internal/domain/entities"
)

func appt(id, slotID string, date time.Time, status entities.AppointmentStatus) *entities.Appointment {
	return &entities.Appointment{
		ID:     id,
		SlotID: slotID,
		Date:   date,
		Status: status,
	}
}

func TestResolve_FreeWhenNoClaims(t *testing.T) {
	instant := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	res := Resolve("av-1", instant, nil, nil)
	assert.Equal(t, StateFree, res.State)
	assert.Empty(t, res.AppointmentID)
	assert.True(t, res.State.Selectable())
}

func TestResolve_ConfirmedWinsOverViewerPending(t *testing.T) {
	instant := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	confirmed := []*entities.Appointment{
		appt("other", "av-1", instant, entities.AppointmentStatusConfirmed),
	}
	viewerOwned := []*entities.Appointment{
		appt("mine", "av-1", instant, entities.AppointmentStatusInProgress),
	}

	res := Resolve("av-1", instant, confirmed, viewerOwned)
	assert.Equal(t, StateConfirmed, res.State)
	assert.Equal(t, "other", res.AppointmentID)
	assert.False(t, res.State.Selectable())
}

func TestResolve_ViewerPending(t *testing.T) {
	instant := time.Date(2024, 6, 1, 9, 15, 0, 0, time.UTC)
	viewerOwned := []*entities.Appointment{
		appt("mine", "av-1", instant, entities.AppointmentStatusInProgress),
	}

	res := Resolve("av-1", instant, nil, viewerOwned)
	assert.Equal(t, StatePending, res.State)
	assert.Equal(t, "mine", res.AppointmentID)
	assert.False(t, res.State.Selectable())
}

func TestResolve_ViewerCanceledStaysSelectable(t *testing.T) {
	instant := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	viewerOwned := []*entities.Appointment{
		appt("mine", "av-1", instant, entities.AppointmentStatusCanceled),
	}

	res := Resolve("av-1", instant, nil, viewerOwned)
	assert.Equal(t, StateCanceled, res.State)
	assert.Equal(t, "mine", res.AppointmentID)
	assert.True(t, res.State.Selectable())
}

func TestResolve_RebookedSlotOutranksOlderCanceledRecord(t *testing.T) {
	instant := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	viewerOwned := []*entities.Appointment{
		appt("old-canceled", "av-1", instant, entities.AppointmentStatusCanceled),
		appt("new-pending", "av-1", instant, entities.AppointmentStatusInProgress),
	}

	res := Resolve("av-1", instant, nil, viewerOwned)
	assert.Equal(t, StatePending, res.State)
	assert.Equal(t, "new-pending", res.AppointmentID)

	// Same outcome when the live booking precedes the canceled one.
	res = Resolve("av-1", instant, nil, []*entities.Appointment{viewerOwned[1], viewerOwned[0]})
	assert.Equal(t, StatePending, res.State)
	assert.Equal(t, "new-pending", res.AppointmentID)
}

func TestResolve_IgnoresOtherSlotsAndInstants(t *testing.T) {
	instant := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	viewerOwned := []*entities.Appointment{
		appt("wrong-slot", "av-2", instant, entities.AppointmentStatusInProgress),
		appt("wrong-time", "av-1", instant.Add(15*time.Minute), entities.AppointmentStatusInProgress),
	}

	res := Resolve("av-1", instant, nil, viewerOwned)
	assert.Equal(t, StateFree, res.State)
}

func TestResolve_Idempotent(t *testing.T) {
	instant := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	confirmed := []*entities.Appointment{
		appt("other", "av-1", instant, entities.AppointmentStatusConfirmed),
	}

	first := Resolve("av-1", instant, confirmed, nil)
	second := Resolve("av-1", instant, confirmed, nil)
	assert.Equal(t, first, second)
}

func TestResolveAll_AnnotatesEverySlot(t *testing.T) {
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	av := availabilityAt(start, start.Add(30*time.Minute), 15)

	slots, err := Expand(av)
	require.NoError(t, err)
	require.Len(t, slots, 3)

	confirmed := []*entities.Appointment{
		appt("other", av.ID, slots[0].Start, entities.AppointmentStatusConfirmed),
	}
	viewerOwned := []*entities.Appointment{
		appt("mine", av.ID, slots[1].Start, entities.AppointmentStatusInProgress),
	}

	resolved := ResolveAll(slots, confirmed, viewerOwned)
	require.Len(t, resolved, 3)

	assert.Equal(t, StateConfirmed, resolved[0].State)
	assert.False(t, resolved[0].Selectable)

	assert.Equal(t, StatePending, resolved[1].State)
	assert.False(t, resolved[1].Selectable)

	assert.Equal(t, StateFree, resolved[2].State)
	assert.True(t, resolved[2].Selectable)
}
