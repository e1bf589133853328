package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"frontdesk/internal/domain"
	"frontdesk/internal/http/dto"
	"frontdesk/internal/http/resp"
	"frontdesk/internal/model"
)

func (h *Handler) ListReservations(c *gin.Context) {
	reservations, err := h.scheduler.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to list reservations"})
		return
	}
	c.JSON(http.StatusOK, reservations)
}

func (h *Handler) CreateReservation(c *gin.Context) {
	var req dto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "invalid json"})
		return
	}

	created, err := h.scheduler.Create(c.Request.Context(), model.Reservation{
		AreaID:     req.AreaID,
		ResidentID: req.ResidentID,
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	})
	switch {
	case errors.Is(err, domain.ErrMissingRequiredFields), errors.Is(err, domain.ErrInvalidReservationTime):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: err.Error()})
		return
	case errors.Is(err, domain.ErrReservationConflict):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Code: resp.CodeConflict, Message: "time range overlaps an existing booking"})
		return
	case err != nil:
		h.log.Error("create reservation failed",
			zap.String("area_id", req.AreaID),
			zap.String("resident_id", req.ResidentID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to create reservation"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// AdvanceReservation is the staff check-in/check-out action.
func (h *Handler) AdvanceReservation(c *gin.Context) {
	id := c.Param("id")
	reservation, err := h.scheduler.Advance(c.Request.Context(), id)
	switch {
	case errors.Is(err, domain.ErrReservationNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Code: resp.CodeNotFound, Message: "reservation not found"})
		return
	case err != nil:
		h.log.Error("advance reservation failed", zap.String("reservation_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to advance reservation"})
		return
	}
	c.JSON(http.StatusOK, reservation)
}
