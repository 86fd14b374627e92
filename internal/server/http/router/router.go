package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	pkgAuth "github.com/lithoprint/printdesk/internal/pkg/auth"
	"github.com/lithoprint/printdesk/internal/server/http/handlers"
	"github.com/lithoprint/printdesk/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.PrintFacade, strategy pkgAuth.Strategy, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	// The machine channel is hijacked for the websocket upgrade and must
	// not pass through the gzip writer.
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/ws"})))

	ingestHandler := handlers.NewIngestHandler(facade)
	checkoutHandler := handlers.NewCheckoutHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	imageHandler := handlers.NewImageHandler(facade)
	machineHandler := handlers.NewMachineHandler(facade, logger)

	engine.POST("/upload", ingestHandler.Upload)
	engine.POST("/complete-order", checkoutHandler.Complete)
	engine.POST("/process-image", imageHandler.Adjust)
	engine.GET("/ws", machineHandler.Channel)

	api := engine.Group("/api")
	api.Use(middleware.StaffRequired(strategy))
	api.GET("/orders", orderHandler.List)
	api.GET("/order/:id", orderHandler.Detail)
	api.POST("/update-order-status", orderHandler.UpdateStatus)
	api.POST("/update-item-status", orderHandler.UpdateItemStatus)
	api.POST("/resend-stl", orderHandler.Resend)

	return engine
}
