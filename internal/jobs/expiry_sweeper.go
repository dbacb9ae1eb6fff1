// Package jobs holds the background schedules that keep booking state honest.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/healthhub/healthhub-backend/internal/application/services"
)

// ExpirySweeper periodically expires bookings that sat unpaid past the
// pending deadline.
type ExpirySweeper struct {
	booking  *services.BookingService
	deadline time.Duration
	schedule string
	cron     *cron.Cron
	now      func() time.Time
}

// NewExpirySweeper creates a sweeper that runs on the given cron schedule and
// expires in-progress bookings older than deadline.
func NewExpirySweeper(booking *services.BookingService, deadline time.Duration, schedule string) *ExpirySweeper {
	return &ExpirySweeper{
		booking:  booking,
		deadline: deadline,
		schedule: schedule,
		cron:     cron.New(),
		now:      time.Now,
	}
}

// Start registers the sweep and begins the schedule.
func (s *ExpirySweeper) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		s.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Info().
		Str("schedule", s.schedule).
		Dur("deadline", s.deadline).
		Msg("Expiry sweeper started")
	return nil
}

// RunOnce performs a single sweep. Exposed so startup and tests can sweep
// without waiting for the schedule.
func (s *ExpirySweeper) RunOnce(ctx context.Context) {
	cutoff := s.now().Add(-s.deadline)

	swept, err := s.booking.ExpireStale(ctx, cutoff)
	if err != nil {
		log.Error().Err(err).Msg("expiry sweep failed")
		return
	}

	if swept > 0 {
		log.Info().Int("swept", swept).Time("cutoff", cutoff).Msg("expired stale bookings")
	}
}

// Stop halts the schedule and waits for a running sweep to finish.
func (s *ExpirySweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info().Msg("Expiry sweeper stopped")
}
