package main

import (
	"graphview-service/internal/graph"
	"graphview-service/internal/handler"
	mid "graphview-service/internal/middleware"
	"graphview-service/pkg/config"
	"graphview-service/pkg/logger"
	"graphview-service/pkg/supplychain"
	"graphview-service/prometheus"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Optional .env file; environment variables win in deployed setups.
	_ = godotenv.Load()

	appConfig, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logger.SetLevel(appConfig.Log.Level)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting graphview-service", appConfig.LogConfig()...)

	prometheus.InitMetrics(appConfig.Metrics.Prefix)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	backend := supplychain.NewClient(
		appConfig.Backend.BaseURL,
		appConfig.Backend.Timeout,
		appConfig.Backend.PageLimit,
		log,
	)
	views := graph.NewRegistry(appConfig.View.TTL)

	graphHandler := handler.NewGraphHandler(backend, views)
	statsHandler := handler.NewStatsHandler(backend)

	e := echo.New()

	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.SessionMiddleware)
	e.Use(mid.MetricsMiddleware)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", handler.Health)

	graphAPI := e.Group("/api/graph/:entity")
	graphAPI.GET("", graphHandler.LoadPage)
	graphAPI.GET("/search", graphHandler.Search)
	graphAPI.POST("/nodes", graphHandler.CreateNode)
	graphAPI.POST("/edges", graphHandler.CreateEdge)
	graphAPI.POST("/connect", graphHandler.Connect)
	graphAPI.POST("/changes", graphHandler.ApplyChanges)
	graphAPI.GET("/selection", graphHandler.GetSelection)
	graphAPI.POST("/selection", graphHandler.SetSelection)
	graphAPI.DELETE("/selection", graphHandler.ClearSelection)

	e.GET("/api/stats/:report", statsHandler.Report)

	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
