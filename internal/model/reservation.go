package model

import "time"

// Date is a calendar day ("2006-01-02"); StartTime and EndTime are same-day
// wall-clock values ("15:04"). The range is half-open: EndTime itself is free.
type Reservation struct {
	ID         string    `json:"id"`
	AreaID     string    `json:"area_id"`
	ResidentID string    `json:"resident_id"`
	Date       string    `json:"date"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}
