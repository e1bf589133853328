package dto

import "frontdesk/internal/model"

type PublishEventRequest struct {
	RecipientID string `json:"recipient_id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Message     string `json:"message"`
	RelatedID   string `json:"related_id"`
	ImageURL    string `json:"image_url"`
}

type NotificationListResponse struct {
	Items  []model.Notification `json:"items"`
	Unread int                  `json:"unread"`
}

type SessionResponse struct {
	RecipientID       string `json:"recipient_id"`
	SubscriptionState string `json:"subscription_state"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type StatusResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
