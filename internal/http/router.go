package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"frontdesk/internal/http/controller"
	"frontdesk/internal/http/middleware"
)

func NewRouter(handler *controller.Handler, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(middleware.ZapLogger(logger), middleware.ZapRecovery(logger), otelgin.Middleware("frontdesk"))

	router.GET("/health", func(c *gin.Context) {
		c.Status(200)
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/sessions/:recipient", handler.OpenSession)
	router.DELETE("/sessions/:recipient", handler.CloseSession)
	router.POST("/sessions/:recipient/read-all", handler.MarkAllRead)
	router.POST("/sessions/:recipient/resync", handler.Resync)

	router.GET("/notifications/:recipient", handler.ListNotifications)
	router.DELETE("/notifications/:recipient/:id", handler.DeleteNotification)
	router.POST("/notifications/:recipient/:id/read", handler.MarkRead)

	router.GET("/stream/:recipient", handler.Stream)

	router.GET("/chat/:recipient", handler.ListMessages)
	router.POST("/chat/:recipient", handler.SendMessage)

	router.GET("/reservations", handler.ListReservations)
	router.POST("/reservations", handler.CreateReservation)
	router.POST("/reservations/:id/advance", handler.AdvanceReservation)

	router.POST("/events", handler.PublishEvent)

	return router
}
