package dto

type CreateReservationRequest struct {
	AreaID     string `json:"area_id"`
	ResidentID string `json:"resident_id"`
	Date       string `json:"date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
}
