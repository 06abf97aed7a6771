package router

import (
	"github.com/gin-gonic/gin"

	"nebenscan/internal/config"
	"nebenscan/internal/handler"
	"nebenscan/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.CORSConfig,
	billH *handler.BillHandler,
	analysisH *handler.AnalysisHandler,
	reportH *handler.ReportHandler,
	paymentH *handler.PaymentHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Bill routes
	bills := v1.Group("/bills")
	bills.POST("", billH.Upload)
	bills.GET("", billH.List)
	bills.GET("/:id", billH.GetByID)
	bills.POST("/:id/extract", analysisH.Extract)
	bills.PUT("/:id/verify", analysisH.Verify)
	bills.GET("/:id/preview", reportH.Preview)
	bills.GET("/:id/report", reportH.Report)
	bills.GET("/:id/letter", reportH.Letter)
	bills.GET("/:id/export", reportH.Export)
	bills.POST("/:id/checkout", paymentH.Checkout)

	// Payment provider webhooks
	webhooks := v1.Group("/webhooks")
	webhooks.POST("/stripe", paymentH.Webhook)

	return r
}
