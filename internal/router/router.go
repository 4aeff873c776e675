package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"readiness/internal/handler"
	"readiness/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Upload   *handler.UploadHandler
	Analysis *handler.AnalysisHandler
	Report   *handler.ReportHandler
	Schema   *handler.SchemaHandler
	Health   *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(h Handlers, allowedOrigins []string) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks and metrics
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")

	v1.GET("/schema", h.Schema.Get)

	uploads := v1.Group("/uploads")
	uploads.POST("", h.Upload.Upload)
	uploads.GET("/:id", h.Upload.GetByID)

	v1.POST("/analyze", h.Analysis.Analyze)

	reports := v1.Group("/reports")
	reports.GET("", h.Report.List)
	reports.GET("/:id", h.Report.GetByID)
	reports.GET("/:id/export", h.Report.ExportCSV)

	return r
}
