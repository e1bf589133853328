// Package schedule decides admissibility of resource bookings and drives the
// scheduled → active → completed lifecycle.
package schedule

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"frontdesk/internal/domain"
	"frontdesk/internal/metrics"
	"frontdesk/internal/model"
	"frontdesk/internal/repository"
)

type Scheduler struct {
	store repository.ReservationStore
	log   *zap.Logger
}

func NewScheduler(store repository.ReservationStore, logger *zap.Logger) *Scheduler {
	return &Scheduler{store: store, log: logger}
}

// HasConflict reports whether the candidate's half-open [start, end) range
// overlaps any existing scheduled or active booking for the same area and
// date. Back-to-back bookings do not conflict; completed bookings never do.
func HasConflict(candidate model.Reservation, existing []model.Reservation) bool {
	candidateStart, err := domain.MinutesOfDay(candidate.StartTime)
	if err != nil {
		return false
	}
	candidateEnd, err := domain.MinutesOfDay(candidate.EndTime)
	if err != nil {
		return false
	}
	for _, booking := range existing {
		if booking.AreaID != candidate.AreaID || booking.Date != candidate.Date {
			continue
		}
		if booking.Status != domain.ReservationStatusScheduled && booking.Status != domain.ReservationStatusActive {
			continue
		}
		bookingStart, err := domain.MinutesOfDay(booking.StartTime)
		if err != nil {
			continue
		}
		bookingEnd, err := domain.MinutesOfDay(booking.EndTime)
		if err != nil {
			continue
		}
		if candidateStart < bookingEnd && candidateEnd > bookingStart {
			return true
		}
	}
	return false
}

// Create validates the candidate and checks it against existing bookings
// before anything reaches the store. Two staff members racing on the same
// slot are resolved by the store's own write ordering, not here; the
// validation layer is last-write-wins by design.
func (s *Scheduler) Create(ctx context.Context, candidate model.Reservation) (model.Reservation, error) {
	if candidate.ResidentID == "" || candidate.AreaID == "" || candidate.Date == "" {
		return model.Reservation{}, domain.ErrMissingRequiredFields
	}
	start, err := domain.MinutesOfDay(candidate.StartTime)
	if err != nil {
		return model.Reservation{}, err
	}
	end, err := domain.MinutesOfDay(candidate.EndTime)
	if err != nil {
		return model.Reservation{}, err
	}
	if end <= start {
		return model.Reservation{}, fmt.Errorf("%w: end %q not after start %q", domain.ErrInvalidReservationTime, candidate.EndTime, candidate.StartTime)
	}

	existing, err := s.store.ListReservationsForAreaDate(ctx, candidate.AreaID, candidate.Date)
	if err != nil {
		s.log.Error("list reservations failed",
			zap.String("area_id", candidate.AreaID),
			zap.String("date", candidate.Date),
			zap.Error(err),
		)
		return model.Reservation{}, err
	}
	if HasConflict(candidate, existing) {
		metrics.ReservationConflicts.Inc()
		return model.Reservation{}, domain.ErrReservationConflict
	}

	candidate.Status = domain.ReservationStatusScheduled
	created, err := s.store.CreateReservation(ctx, candidate)
	if err != nil {
		s.log.Error("store create reservation failed",
			zap.String("area_id", candidate.AreaID),
			zap.String("resident_id", candidate.ResidentID),
			zap.String("date", candidate.Date),
			zap.Error(err),
		)
		return model.Reservation{}, err
	}
	return created, nil
}

// Advance moves a booking one step along its lifecycle. Advancing a completed
// booking is a no-op, not an error, so duplicate clicks are tolerated.
func (s *Scheduler) Advance(ctx context.Context, id string) (model.Reservation, error) {
	reservation, err := s.store.GetReservation(ctx, id)
	if err != nil {
		return model.Reservation{}, err
	}
	next, err := domain.NextReservationStatus(reservation.Status)
	if err != nil {
		return model.Reservation{}, err
	}
	if next == reservation.Status {
		return reservation, nil
	}
	if err := s.store.UpdateReservationStatus(ctx, id, next); err != nil {
		s.log.Error("store update reservation status failed",
			zap.String("reservation_id", id),
			zap.String("status", next),
			zap.Error(err),
		)
		return model.Reservation{}, err
	}
	reservation.Status = next
	return reservation, nil
}

// List returns all bookings; conflict checking is re-run by callers whenever
// the list is refreshed.
func (s *Scheduler) List(ctx context.Context) ([]model.Reservation, error) {
	reservations, err := s.store.ListReservations(ctx)
	if err != nil {
		s.log.Error("store list reservations failed", zap.Error(err))
		return nil, err
	}
	return reservations, nil
}
