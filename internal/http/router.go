package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"mockui/internal/config"
	"mockui/internal/http/controller"
	"mockui/internal/http/middleware"
	"mockui/internal/telemetry"
)

func NewRouter(cfg *config.Config, handler *controller.Handler, metrics *telemetry.Metrics, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		otelgin.Middleware(cfg.OTELServiceName),
		middleware.ZapLogger(logger),
		middleware.ZapRecovery(logger),
	)

	router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	router.GET("/meta/:list", handler.Snapshot)
	router.GET("/sse/:list", handler.SSE)
	router.POST("/fetch", handler.Fetch)
	router.POST("/logs", handler.Log)
	router.POST("/render/:type", handler.Render)

	return router
}
