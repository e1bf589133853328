package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"frontdesk/internal/http/dto"
	"frontdesk/internal/http/resp"
	"frontdesk/internal/model"
	"frontdesk/internal/sse"
)

// Stream is the UI's observation point: one SSE connection per open tab,
// fed a full snapshot first and reconciler updates afterwards.
func (h *Handler) Stream(c *gin.Context) {
	recipientID := c.Param("recipient")
	if recipientID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "recipient required"})
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		h.log.Error("streaming unsupported", zap.String("recipient_id", recipientID))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "streaming unsupported"})
		return
	}

	items, unread, err := h.desk.Snapshot(recipientID)
	if err != nil {
		h.sessionError(c, recipientID, err)
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	if err := writeSnapshot(c.Writer, items, unread); err != nil {
		h.log.Error("write snapshot failed", zap.String("recipient_id", recipientID), zap.Error(err))
		return
	}
	flusher.Flush()

	client := &sse.Client{
		RecipientID: recipientID,
		Ch:          make(chan model.Update, 16),
	}
	h.hub.Register(client)
	defer h.hub.Unregister(client)

	heartbeat := time.NewTicker(h.cfg.SSEHeartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case <-heartbeat.C:
			if _, err := fmt.Fprint(c.Writer, ": ping\n\n"); err != nil {
				h.log.Error("heartbeat write failed", zap.String("recipient_id", recipientID), zap.Error(err))
				return
			}
			flusher.Flush()
		case update, ok := <-client.Ch:
			if !ok {
				return
			}
			if err := writeUpdate(c.Writer, update); err != nil {
				h.log.Error("write update failed", zap.String("recipient_id", recipientID), zap.Error(err))
				return
			}
			flusher.Flush()
		}
	}
}

func writeSnapshot(w http.ResponseWriter, items []model.Notification, unread int) error {
	payload, err := json.Marshal(dto.NotificationListResponse{Items: items, Unread: unread})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", payload)
	return err
}

func writeUpdate(w http.ResponseWriter, update model.Update) error {
	payload, err := json.Marshal(update)
	if err != nil {
		return err
	}
	// JS side uses addEventListener("update", ...).
	_, err = fmt.Fprintf(w, "event: update\ndata: %s\n\n", payload)
	return err
}
