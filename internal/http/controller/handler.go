package controller

import (
	"go.uber.org/zap"

	"frontdesk/internal/config"
	"frontdesk/internal/queue"
	"frontdesk/internal/repository"
	"frontdesk/internal/schedule"
	"frontdesk/internal/service/desk"
	"frontdesk/internal/sse"
)

type Handler struct {
	cfg       *config.Config
	desk      *desk.Service
	scheduler *schedule.Scheduler
	store     repository.NotificationStore
	pub       queue.Publisher
	hub       *sse.Hub
	log       *zap.Logger
}

func NewHandler(cfg *config.Config, deskService *desk.Service, scheduler *schedule.Scheduler, store repository.NotificationStore, publisher queue.Publisher, hub *sse.Hub, logger *zap.Logger) *Handler {
	return &Handler{
		cfg:       cfg,
		desk:      deskService,
		scheduler: scheduler,
		store:     store,
		pub:       publisher,
		hub:       hub,
		log:       logger,
	}
}
