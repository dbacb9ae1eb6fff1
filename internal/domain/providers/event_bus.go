package providers

import (
	"context"

	"github.com/healthhub/healthhub-backend/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to
// appointment change events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.AppointmentEvent) error

	// Subscribe subscribes to events on a channel. The returned channel is
	// closed when ctx is done.
	Subscribe(ctx context.Context, channel string) (<-chan *entities.AppointmentEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

const (
	// EventChannelAppointments is the channel for all appointment updates
	EventChannelAppointments = "appointments:updates"

	// eventChannelDoctorPrefix is the prefix for doctor-specific channels
	eventChannelDoctorPrefix = "appointments:doctor:"
)

// DoctorChannel returns the channel carrying appointment events for one doctor.
func DoctorChannel(doctorID string) string {
	return eventChannelDoctorPrefix + doctorID
}
