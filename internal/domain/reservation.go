package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	ReservationStatusScheduled = "scheduled"
	ReservationStatusActive    = "active"
	ReservationStatusCompleted = "completed"
)

var (
	ErrReservationConflict    = errors.New("reservation overlaps an existing booking")
	ErrReservationNotFound    = errors.New("reservation not found")
	ErrMissingRequiredFields  = errors.New("resident, area and date are required")
	ErrInvalidReservationTime = errors.New("invalid reservation time range")
)

func IsValidReservationStatus(value string) bool {
	switch value {
	case ReservationStatusScheduled, ReservationStatusActive, ReservationStatusCompleted:
		return true
	default:
		return false
	}
}

// NextReservationStatus encodes the one-way lifecycle. Completed is terminal:
// advancing it returns completed again rather than an error, so duplicate
// check-out clicks stay harmless.
func NextReservationStatus(current string) (string, error) {
	switch current {
	case ReservationStatusScheduled:
		return ReservationStatusActive, nil
	case ReservationStatusActive:
		return ReservationStatusCompleted, nil
	case ReservationStatusCompleted:
		return ReservationStatusCompleted, nil
	default:
		return "", fmt.Errorf("unknown reservation status %q", current)
	}
}

// MinutesOfDay parses a "15:04" wall-clock value into minutes since midnight.
func MinutesOfDay(clock string) (int, error) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidReservationTime, clock)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidReservationTime, clock)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidReservationTime, clock)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidReservationTime, clock)
	}
	return hours*60 + minutes, nil
}
