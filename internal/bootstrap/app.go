// Package bootstrap wires the HTTP application together.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/takeda9/rulesheet-go/internal/config"
	"github.com/takeda9/rulesheet-go/internal/handler"
	"github.com/takeda9/rulesheet-go/internal/logger"
	"github.com/takeda9/rulesheet-go/pkg/rulesheet/blob"
)

// App bundles the echo server and its shared blob store.
type App struct {
	Echo  *echo.Echo
	Blobs *blob.Store
}

// NewApp creates an uninitialized App.
func NewApp() *App {
	return &App{
		Echo:  echo.New(),
		Blobs: blob.NewStore(),
	}
}

// Initialize loads configuration, sets up logging, and registers middlewares
// and routes.
func (a *App) Initialize(ctx context.Context) error {
	if err := config.LoadEnvConfig(); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}

	logger.InitLogging(config.DefaultEnvConfig.LOG_LEVEL)
	logger.InfoLog(ctx, "environment configuration loaded")

	parseHandler := handler.NewParseHandler(a.Blobs)
	mediaHandler := handler.NewMediaHandler(a.Blobs)

	a.Echo.HideBanner = true
	a.Echo.Use(middleware.Logger())
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.CORS())
	a.Echo.Use(middleware.BodyLimit(fmt.Sprintf("%dM", config.DefaultEnvConfig.MAX_UPLOAD_MB)))

	a.Echo.GET("/health", handler.Health)
	a.Echo.GET("/media/:hash", mediaHandler.ServeBlob)
	a.Echo.POST("/api/parse", parseHandler.ParseExcel)
	// legacy alias, kept so older clients keep working
	a.Echo.POST("/parse", parseHandler.ParseExcel)

	return nil
}

// Run starts the server on the configured port.
func (a *App) Run() error {
	return a.Echo.Start(":" + config.DefaultEnvConfig.APP_PORT)
}
