package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/shopkit/shopkit-payments/internal/shared/metrics"
)

// SetupRouter configures the Gin router with all routes and middleware.
func SetupRouter(handler *Handler, ginMode string, logger *zap.Logger, m *metrics.Metrics) *gin.Engine {
	gin.SetMode(ginMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(LoggingMiddleware(logger))
	router.Use(MetricsMiddleware(m))
	router.Use(CORSMiddleware())

	router.GET("/health", handler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// The order-completion page. The gateway's return and cancel URLs
	// point at the GET form of this route; the storefront posts the pay
	// form to the POST form.
	router.GET("/checkout/complete/:order_id", handler.CompleteCheckout)
	router.POST("/checkout/complete/:order_id", handler.CompleteCheckout)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/payment-methods", handler.ListPaymentMethods)
	}

	return router
}
