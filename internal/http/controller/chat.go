package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"frontdesk/internal/domain"
	"frontdesk/internal/http/dto"
	"frontdesk/internal/http/resp"
	"frontdesk/internal/model"
)

// ListMessages returns chat history limited to the current session; the
// stored history itself is untouched.
func (h *Handler) ListMessages(c *gin.Context) {
	recipientID := c.Param("recipient")
	messages, err := h.desk.VisibleMessages(c.Request.Context(), recipientID)
	if err != nil {
		h.sessionError(c, recipientID, err)
		return
	}
	c.JSON(http.StatusOK, dto.ChatHistoryResponse{Messages: messages})
}

func (h *Handler) SendMessage(c *gin.Context) {
	recipientID := c.Param("recipient")
	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "invalid json"})
		return
	}
	if req.Text == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "text required"})
		return
	}
	if !domain.IsValidSenderRole(req.SenderRole) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "sender_role must be resident or staff"})
		return
	}

	message, err := h.desk.SendMessage(c.Request.Context(), recipientID, model.ChatMessage{
		Text:       req.Text,
		SenderRole: req.SenderRole,
	})
	if err != nil {
		h.sessionError(c, recipientID, err)
		return
	}
	c.JSON(http.StatusCreated, message)
}
