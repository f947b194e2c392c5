package http

import (
	"github.com/akozadaev/po-api/internal/adapter/config"
	"github.com/akozadaev/po-api/internal/adapter/metrics"
	"github.com/akozadaev/po-api/internal/core/port"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type Router struct {
	*gin.Engine
}

func NewRouter(
	conf *config.HTTP,
	authorizer port.Authorizer,
	serverMetrics *metrics.ServerMetrics,
	orderHandler *OrderHandler,
	categoryHandler *CategoryHandler,
	logger *zap.Logger) (*Router, error) {

	router := gin.New()
	router.Use(gin.Recovery(), requestID(), requestLogger(logger), observeMetrics(serverMetrics))

	// Swagger
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group("/api")
	{
		api.Use(capabilityCheck(authorizer))

		orders := api.Group("/purchase-orders")
		{
			orders.GET("", orderHandler.ListOrders)
			orders.POST("", orderHandler.CreateOrder)
			// The bulk route must be registered before the id routes.
			orders.DELETE("/delete", orderHandler.DeleteOrders)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.PATCH("/:id", orderHandler.UpdateOrder)
			orders.DELETE("/:id", orderHandler.DeleteOrder)
		}

		api.GET("/categories", categoryHandler.ListCategories)
	}

	return &Router{router}, nil
}

// Serve starts the HTTP server
func (r *Router) Serve(listenAddr string) error {
	return r.Run(listenAddr)
}
