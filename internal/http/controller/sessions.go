package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"frontdesk/internal/http/dto"
	"frontdesk/internal/http/resp"
)

func (h *Handler) OpenSession(c *gin.Context) {
	recipientID := c.Param("recipient")
	if recipientID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "recipient required"})
		return
	}
	if err := h.desk.OpenSession(c.Request.Context(), recipientID); err != nil {
		h.log.Error("open session failed", zap.String("recipient_id", recipientID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to open session"})
		return
	}
	state, _ := h.desk.SubscriptionState(recipientID)
	c.JSON(http.StatusCreated, dto.SessionResponse{RecipientID: recipientID, SubscriptionState: string(state)})
}

func (h *Handler) CloseSession(c *gin.Context) {
	recipientID := c.Param("recipient")
	if recipientID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "recipient required"})
		return
	}
	h.desk.CloseSession(recipientID)
	c.Status(http.StatusNoContent)
}
