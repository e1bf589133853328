package model

import "time"

type ChatMessage struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	SenderRole string    `json:"sender_role"`
	Timestamp  time.Time `json:"timestamp"`
	Read       bool      `json:"read"`
}
