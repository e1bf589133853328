package app

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"frontdesk/internal/config"
	"frontdesk/internal/service/desk"
	"frontdesk/internal/sse"
	"frontdesk/internal/telemetry"
)

type App struct {
	cfg    *config.Config
	hub    *sse.Hub
	desk   *desk.Service
	server *http.Server
	logger *zap.Logger
	wg     sync.WaitGroup

	shutdownTracing func(context.Context) error
}

func NewApp(cfg *config.Config, hub *sse.Hub, deskService *desk.Service, router *gin.Engine, logger *zap.Logger) *App {
	return &App{
		cfg:  cfg,
		hub:  hub,
		desk: deskService,
		server: &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: router,
		},
		logger: logger,
	}
}

func (a *App) Run(ctx context.Context) error {
	shutdownTracing, err := telemetry.Init(ctx, a.cfg)
	if err != nil {
		a.logger.Warn("telemetry init failed", zap.Error(err))
	} else {
		a.shutdownTracing = shutdownTracing
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.hub.Run(ctx)
	}()

	a.logger.Info("server starting", zap.String("addr", a.cfg.HTTPAddr))
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("graceful shutdown started")
	shutdownErr := a.server.Shutdown(ctx)

	// Close every open session so push subscriptions are torn down before
	// the broker connections drop out from under them.
	a.desk.Shutdown()

	if a.shutdownTracing != nil {
		if err := a.shutdownTracing(ctx); err != nil {
			a.logger.Warn("tracing shutdown failed", zap.Error(err))
		}
	}

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		a.logger.Info("graceful shutdown completed")
		return shutdownErr
	case <-ctx.Done():
		if shutdownErr != nil {
			return shutdownErr
		}
		return ctx.Err()
	}
}

func (a *App) Logger() *zap.Logger {
	return a.logger
}
