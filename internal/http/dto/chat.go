package dto

import "frontdesk/internal/model"

type SendMessageRequest struct {
	Text       string `json:"text"`
	SenderRole string `json:"sender_role"`
}

type ChatHistoryResponse struct {
	Messages []model.ChatMessage `json:"messages"`
}
