package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"frontdesk/internal/domain"
	"frontdesk/internal/model"
)

func (s *Store) CreateReservation(_ context.Context, reservation model.Reservation) (model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if reservation.ID == "" {
		reservation.ID = uuid.NewString()
	}
	if reservation.CreatedAt.IsZero() {
		reservation.CreatedAt = time.Now().UTC()
	}
	s.reservations = append(s.reservations, reservation)
	return reservation, nil
}

func (s *Store) ListReservations(_ context.Context) ([]model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]model.Reservation, len(s.reservations))
	copy(result, s.reservations)
	return result, nil
}

func (s *Store) ListReservationsForAreaDate(_ context.Context, areaID, date string) ([]model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Reservation
	for _, record := range s.reservations {
		if record.AreaID == areaID && record.Date == date {
			result = append(result, record)
		}
	}
	return result, nil
}

func (s *Store) GetReservation(_ context.Context, id string) (model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, record := range s.reservations {
		if record.ID == id {
			return record, nil
		}
	}
	return model.Reservation{}, domain.ErrReservationNotFound
}

func (s *Store) UpdateReservationStatus(_ context.Context, id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.reservations {
		if s.reservations[i].ID == id {
			s.reservations[i].Status = status
			return nil
		}
	}
	return domain.ErrReservationNotFound
}
