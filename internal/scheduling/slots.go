// Package scheduling derives bookable time slots from doctor availability
// windows and resolves their booking state against existing appointments.
// Everything here is pure computation over immutable inputs; persistence and
// transport live elsewhere.
package scheduling

import (
	"fmt"
	"sort"
	"time"

	"github.com/healthhub/healthhub-backend/internal/domain/entities"
	apperrors "github.com/healthhub/healthhub-backend/pkg/errors"
)

// Slot is one discrete bookable time point derived from an availability
// window. Slots are recomputed on every view and never persisted.
type Slot struct {
	AvailabilityID string    `json:"availability_id"`
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	// Portion is the display label for the slot, e.g. "9:00 AM - 9:15 AM".
	Portion string `json:"portion"`
}

// Expand walks an availability window from start to end in slot-duration
// increments. The end instant itself is included when the step lands on it
// exactly. A non-positive duration or an inverted window fails fast instead
// of looping forever.
func Expand(av *entities.Availability) ([]Slot, error) {
	if av.SlotDuration <= 0 {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("invalid availability %s: slot duration must be positive, got %d", av.ID, av.SlotDuration))
	}
	if av.EndTime.Before(av.StartTime) {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("invalid availability %s: end time precedes start time", av.ID))
	}

	step := time.Duration(av.SlotDuration) * time.Minute
	var slots []Slot
	for t := av.StartTime; !t.After(av.EndTime); t = t.Add(step) {
		end := t.Add(step)
		slots = append(slots, Slot{
			AvailabilityID: av.ID,
			Start:          t,
			End:            end,
			Portion:        Portion(t, end),
		})
	}
	return slots, nil
}

// Portion formats a slot's time range the way the booking UI displays it.
func Portion(start, end time.Time) string {
	return clock12(start) + " - " + clock12(end)
}

func clock12(t time.Time) string {
	hours := t.Hour()
	suffix := "AM"
	switch {
	case hours == 0:
		hours = 12
	case hours == 12:
		suffix = "PM"
	case hours > 12:
		hours -= 12
		suffix = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", hours, t.Minute(), suffix)
}

// GroupByDate groups availability windows by their calendar date string.
func GroupByDate(availabilities []*entities.Availability) map[string][]*entities.Availability {
	grouped := make(map[string][]*entities.Availability)
	for _, av := range availabilities {
		grouped[av.Date] = append(grouped[av.Date], av)
	}
	return grouped
}

// SortedDates returns the keys of a grouped availability map in ascending
// calendar order. Dates are plain YYYY-MM-DD strings, so lexical order is
// calendar order.
func SortedDates(grouped map[string][]*entities.Availability) []string {
	dates := make([]string, 0, len(grouped))
	for date := range grouped {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// FilterMode keeps only the windows matching the selected consultation mode.
func FilterMode(availabilities []*entities.Availability, mode entities.ConsultationMode) []*entities.Availability {
	var filtered []*entities.Availability
	for _, av := range availabilities {
		if av.Mode == mode {
			filtered = append(filtered, av)
		}
	}
	return filtered
}
