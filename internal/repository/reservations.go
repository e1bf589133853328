package repository

import (
	"context"

	"frontdesk/internal/model"
)

type ReservationStore interface {
	ListReservations(ctx context.Context) ([]model.Reservation, error)
	ListReservationsForAreaDate(ctx context.Context, areaID, date string) ([]model.Reservation, error)
	GetReservation(ctx context.Context, id string) (model.Reservation, error)
	CreateReservation(ctx context.Context, reservation model.Reservation) (model.Reservation, error)
	UpdateReservationStatus(ctx context.Context, id, status string) error
}
