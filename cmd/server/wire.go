//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"frontdesk/internal/app"
	"frontdesk/internal/config"
	"frontdesk/internal/http"
	"frontdesk/internal/http/controller"
	"frontdesk/internal/logging"
	"frontdesk/internal/queue/rabbitmq"
	"frontdesk/internal/schedule"
	"frontdesk/internal/service/desk"
	"frontdesk/internal/sse"
	"frontdesk/internal/store"
)

func InitializeApp() (*app.App, error) {
	wire.Build(
		config.New,
		logging.New,
		store.NewStore,
		store.NotificationStore,
		store.ChatStore,
		store.ReservationStore,
		sse.NewHub,
		rabbitmq.NewChannel,
		rabbitmq.NewPublisher,
		desk.NewService,
		schedule.NewScheduler,
		controller.NewHandler,
		http.NewRouter,
		app.NewApp,
	)
	return &app.App{}, nil
}
