package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/bhavpulse/internal/middleware"
)

const (
	queryTimeout = 10 * time.Second
	mergeTimeout = 5 * time.Minute
)

// NewRouter creates a Gin engine with routes configured.
// It receives a Handler instance with both services already injected.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler, Metrics, RateLimiter).
//   - Bounds analysis requests to 10 seconds and merge requests to 5 minutes.
//   - Mounts Swagger docs (/swagger/*any) and Prometheus metrics (/metrics).
//   - Configures API v1 routes (/api/v1) and the merged table download.
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
func NewRouter(handler *Handler, limiter *middleware.IPRateLimiter) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.Metrics(),
	)

	// ─── Observability ────────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	limited := router.Group("/", middleware.RateLimiter(limiter))

	// ─── API v1 ───────────────────────────────────
	v1 := limited.Group("/api/v1")
	{
		analysis := v1.Group("", withTimeout(queryTimeout))
		analysis.GET("/gains", handler.GetGains)
		analysis.GET("/gains/export", handler.ExportGains)
		analysis.GET("/charts/bar", handler.GetBarChart)
		analysis.GET("/charts/candlestick", handler.GetCandlestick)
		analysis.GET("/options", handler.GetOptions)

		merge := v1.Group("", withTimeout(mergeTimeout))
		merge.POST("/archives", handler.UploadArchives)
		merge.POST("/merge", handler.RunMerge)
	}
	limited.GET(downloadRoute, handler.DownloadMerged)

	return router
}

func withTimeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
