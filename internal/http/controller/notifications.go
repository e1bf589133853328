package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"frontdesk/internal/dispatch"
	"frontdesk/internal/domain"
	"frontdesk/internal/http/dto"
	"frontdesk/internal/http/resp"
	"frontdesk/internal/model"
	"frontdesk/internal/service/desk"
)

func (h *Handler) ListNotifications(c *gin.Context) {
	recipientID := c.Param("recipient")
	items, unread, err := h.desk.Snapshot(recipientID)
	if err != nil {
		h.sessionError(c, recipientID, err)
		return
	}
	c.JSON(http.StatusOK, dto.NotificationListResponse{Items: items, Unread: unread})
}

func (h *Handler) DeleteNotification(c *gin.Context) {
	recipientID := c.Param("recipient")
	id := c.Param("id")
	if err := h.desk.DeleteNotification(c.Request.Context(), recipientID, id); err != nil {
		if errors.Is(err, desk.ErrNoActiveSession) {
			h.sessionError(c, recipientID, err)
			return
		}
		h.log.Error("delete notification failed",
			zap.String("recipient_id", recipientID),
			zap.String("notification_id", id),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "delete was applied locally but the store write failed"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) MarkRead(c *gin.Context) {
	recipientID := c.Param("recipient")
	id := c.Param("id")
	if err := h.desk.MarkRead(c.Request.Context(), recipientID, id); err != nil {
		if errors.Is(err, desk.ErrNoActiveSession) {
			h.sessionError(c, recipientID, err)
			return
		}
		h.log.Error("mark read failed",
			zap.String("recipient_id", recipientID),
			zap.String("notification_id", id),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "mark-read was applied locally but the store write failed"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	recipientID := c.Param("recipient")
	if err := h.desk.MarkAllRead(c.Request.Context(), recipientID); err != nil {
		if errors.Is(err, desk.ErrNoActiveSession) {
			h.sessionError(c, recipientID, err)
			return
		}
		h.log.Error("mark all read failed", zap.String("recipient_id", recipientID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "mark-all-read was applied locally but the store write failed"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Resync is the page-visible and view-refresh fallback trigger.
func (h *Handler) Resync(c *gin.Context) {
	recipientID := c.Param("recipient")
	if err := h.desk.Resync(c.Request.Context(), recipientID); err != nil {
		if errors.Is(err, desk.ErrNoActiveSession) {
			h.sessionError(c, recipientID, err)
			return
		}
		h.log.Error("resync failed", zap.String("recipient_id", recipientID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "resync failed"})
		return
	}
	items, unread, err := h.desk.Snapshot(recipientID)
	if err != nil {
		h.sessionError(c, recipientID, err)
		return
	}
	c.JSON(http.StatusOK, dto.NotificationListResponse{Items: items, Unread: unread})
}

// PublishEvent is the producer surface: an external trigger (package
// received, occurrence opened) persists the notification and pushes the
// insert event through the broker to whoever is subscribed.
func (h *Handler) PublishEvent(c *gin.Context) {
	var req dto.PublishEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "invalid json"})
		return
	}
	if req.RecipientID == "" || req.Type == "" || req.Title == "" || req.Message == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "recipient_id, type, title, message are required"})
		return
	}
	if !domain.IsValidNotificationType(req.Type) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "type must be one of: package, occurrence, notice, generic"})
		return
	}

	created, err := h.store.CreateNotification(c.Request.Context(), model.Notification{
		RecipientID: req.RecipientID,
		Type:        req.Type,
		Title:       req.Title,
		Message:     req.Message,
		RelatedID:   req.RelatedID,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		h.log.Error("create notification failed",
			zap.String("recipient_id", req.RecipientID),
			zap.String("type", req.Type),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to create notification"})
		return
	}

	payload, err := json.Marshal(created)
	if err != nil {
		h.log.Error("event payload marshal failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to publish event"})
		return
	}
	routingKey := dispatch.EntityClassNotifications + "." + created.RecipientID + "." + model.EventOpInsert
	if err := h.pub.Publish(c.Request.Context(), payload, routingKey); err != nil {
		h.log.Error("publish event failed",
			zap.String("recipient_id", created.RecipientID),
			zap.String("notification_id", created.ID),
			zap.Error(err),
		)
		// The record is persisted; subscribers pick it up on resync.
		c.JSON(http.StatusCreated, created)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *Handler) sessionError(c *gin.Context, recipientID string, err error) {
	if errors.Is(err, desk.ErrNoActiveSession) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Code: resp.CodeNoSession, Message: "no active session for " + recipientID})
		return
	}
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: err.Error()})
}
