package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"frontdesk/internal/domain"
	"frontdesk/internal/model"
)

const reservationColumns = `id, area_id, resident_id, booking_date, start_time, end_time, status, created_at`

func (s *Store) CreateReservation(ctx context.Context, reservation model.Reservation) (model.Reservation, error) {
	if reservation.ID == "" {
		reservation.ID = uuid.NewString()
	}
	if reservation.CreatedAt.IsZero() {
		reservation.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO reservations (`+reservationColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		reservation.ID,
		reservation.AreaID,
		reservation.ResidentID,
		reservation.Date,
		reservation.StartTime,
		reservation.EndTime,
		reservation.Status,
		reservation.CreatedAt,
	)
	if err != nil {
		s.log.Error("sql create reservation failed",
			zap.String("area_id", reservation.AreaID),
			zap.String("resident_id", reservation.ResidentID),
			zap.Error(err),
		)
		return model.Reservation{}, err
	}
	return reservation, nil
}

func (s *Store) ListReservations(ctx context.Context) ([]model.Reservation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations ORDER BY booking_date, start_time`)
	if err != nil {
		s.log.Error("sql list reservations failed", zap.Error(err))
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return scanReservations(rows)
}

func (s *Store) ListReservationsForAreaDate(ctx context.Context, areaID, date string) ([]model.Reservation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE area_id = ? AND booking_date = ? ORDER BY start_time`,
		areaID, date,
	)
	if err != nil {
		s.log.Error("sql list reservations failed", zap.String("area_id", areaID), zap.String("date", date), zap.Error(err))
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return scanReservations(rows)
}

func (s *Store) GetReservation(ctx context.Context, id string) (model.Reservation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = ?`, id)
	var record model.Reservation
	err := row.Scan(
		&record.ID,
		&record.AreaID,
		&record.ResidentID,
		&record.Date,
		&record.StartTime,
		&record.EndTime,
		&record.Status,
		&record.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Reservation{}, domain.ErrReservationNotFound
	}
	if err != nil {
		s.log.Error("sql get reservation failed", zap.String("reservation_id", id), zap.Error(err))
		return model.Reservation{}, err
	}
	return record, nil
}

func (s *Store) UpdateReservationStatus(ctx context.Context, id, status string) error {
	result, err := s.db.ExecContext(ctx, `UPDATE reservations SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		s.log.Error("sql update reservation status failed", zap.String("reservation_id", id), zap.Error(err))
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}

func scanReservations(rows *sql.Rows) ([]model.Reservation, error) {
	var result []model.Reservation
	for rows.Next() {
		var record model.Reservation
		if err := rows.Scan(
			&record.ID,
			&record.AreaID,
			&record.ResidentID,
			&record.Date,
			&record.StartTime,
			&record.EndTime,
			&record.Status,
			&record.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, record)
	}
	return result, rows.Err()
}
