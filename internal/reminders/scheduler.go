// Package reminders schedules in-process reminder notifications for
// upcoming reservations. Reminders are advisory: they never gate or mutate
// reservation state.
package reminders

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"roomreserve/internal/events"
	"roomreserve/internal/metrics"
	"roomreserve/internal/schedule"
)

// Notifier delivers a reminder about an upcoming reservation.
type Notifier interface {
	SendReminder(ctx context.Context, res events.ReservationEvent, startsAt time.Time) error
}

// Config holds scheduler settings.
type Config struct {
	// Lead is how long before the slot start the reminder fires.
	Lead time.Duration
	// RatePerSecond and Burst bound notification dispatch.
	RatePerSecond float64
	Burst         int
	// Location resolves wall-clock slot times; nil means time.Local.
	Location *time.Location
}

// DefaultConfig returns the standard settings: 30 minutes lead, 5
// notifications per second with a burst of 10.
func DefaultConfig() Config {
	return Config{Lead: 30 * time.Minute, RatePerSecond: 5, Burst: 10}
}

// Scheduler keeps one timer per upcoming reservation.
type Scheduler struct {
	cfg      Config
	notifier Notifier
	limiter  *rate.Limiter
	logger   zerolog.Logger

	timers   map[string]*time.Timer
	mu       sync.Mutex
	ctx      context.Context
	cancel   context.CancelFunc
	stopOnce sync.Once

	now func() time.Time
}

// NewScheduler creates a scheduler dispatching through the given notifier.
func NewScheduler(cfg Config, notifier Notifier, logger *zerolog.Logger) *Scheduler {
	if cfg.Lead <= 0 {
		cfg.Lead = 30 * time.Minute
	}
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = 5
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 10
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}

	l := zerolog.Nop()
	if logger != nil {
		l = *logger
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cfg:      cfg,
		notifier: notifier,
		limiter:  rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
		logger:   l,
		timers:   make(map[string]*time.Timer),
		ctx:      ctx,
		cancel:   cancel,
		now:      time.Now,
	}
}

// Subscribe wires the scheduler to reservation lifecycle events.
func (s *Scheduler) Subscribe(bus *events.Bus) {
	bus.Subscribe(events.TypeReservationCreated, func(e events.Event) {
		if err := s.Schedule(e.Reservation); err != nil {
			s.logger.Warn().Err(err).
				Str("reservation_id", e.Reservation.ReservationID).
				Msg("reminder not scheduled")
		}
	})
	bus.Subscribe(events.TypeReservationCancelled, func(e events.Event) {
		s.CancelReminder(e.Reservation.ReservationID)
	})
}

// Schedule registers a reminder for the reservation. Reservations whose
// slot has already started are skipped silently; a reminder window already
// past but with the slot still ahead fires immediately.
func (s *Scheduler) Schedule(res events.ReservationEvent) error {
	startsAt, err := schedule.At(res.Date, res.SlotStart, s.cfg.Location)
	if err != nil {
		return fmt.Errorf("resolve slot start: %w", err)
	}

	now := s.now()
	if !startsAt.After(now) {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctx.Err() != nil {
		return fmt.Errorf("scheduler stopped")
	}

	// Replace any existing timer for this reservation.
	if timer, ok := s.timers[res.ReservationID]; ok {
		timer.Stop()
		delete(s.timers, res.ReservationID)
	}

	delay := startsAt.Add(-s.cfg.Lead).Sub(now)
	if delay <= 0 {
		go s.fire(res, startsAt)
		return nil
	}

	s.timers[res.ReservationID] = time.AfterFunc(delay, func() {
		s.fire(res, startsAt)
	})
	return nil
}

// CancelReminder drops the pending reminder for a reservation, if any.
func (s *Scheduler) CancelReminder(reservationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if timer, ok := s.timers[reservationID]; ok {
		timer.Stop()
		delete(s.timers, reservationID)
	}
}

// Stop cancels all pending reminders. Safe to call more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		for id, timer := range s.timers {
			timer.Stop()
			delete(s.timers, id)
		}
		s.cancel()
	})
}

// Pending returns the number of scheduled reminders.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

func (s *Scheduler) fire(res events.ReservationEvent, startsAt time.Time) {
	s.mu.Lock()
	delete(s.timers, res.ReservationID)
	s.mu.Unlock()

	if err := s.limiter.Wait(s.ctx); err != nil {
		return
	}

	if err := s.notifier.SendReminder(s.ctx, res, startsAt); err != nil {
		s.logger.Error().Err(err).
			Str("reservation_id", res.ReservationID).
			Msg("send reminder failed")
		return
	}

	metrics.IncReminderSent()
	s.logger.Debug().
		Str("reservation_id", res.ReservationID).
		Time("starts_at", startsAt).
		Msg("reminder sent")
}
