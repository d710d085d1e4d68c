package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/ougirez/profitability/internal/api/controller"
	"github.com/ougirez/profitability/internal/config"
	"github.com/ougirez/profitability/internal/service/indicators"
)

type APIService struct {
	router            *echo.Echo
	indicatorsService *indicators.Service
}

// Serve blocks until the server stops. A graceful shutdown is not an error.
func (svc *APIService) Serve(addr string) error {
	if err := svc.router.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

func (svc *APIService) Handler() http.Handler {
	return svc.router
}

func NewAPIService(service *indicators.Service, cfg config.ServerConfig) (*APIService, error) {
	svc := &APIService{router: echo.New(), indicatorsService: service}

	svc.router.HideBanner = true
	svc.router.HidePort = true
	svc.router.Logger.SetLevel(log.OFF)

	svc.router.JSONSerializer = sonicSerializer{}
	svc.router.Validator = NewValidator()
	svc.router.Binder = NewBinder()
	svc.router.HTTPErrorHandler = httpErrorHandler

	svc.router.Use(middleware.Recover())
	svc.router.Use(requestIDMiddleware)
	svc.router.Use(requestLogger())
	svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,                                     // Разрешить запросы только от этих доменов
		AllowMethods: []string{echo.GET, echo.PUT, echo.POST, echo.DELETE}, // Разрешить эти HTTP-методы
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAccept},
	}))

	api := svc.router.Group("/api/v1")
	cntrl := controller.NewController(svc.indicatorsService)

	api.GET("/health", cntrl.GetHealth)
	api.GET("/indicators", cntrl.GetIndicators)
	api.GET("/years", cntrl.GetYears)

	values := api.Group("/values")
	values.GET("", cntrl.GetValues)
	values.POST("", cntrl.CreateValue)
	values.GET("/export.xlsx", cntrl.ExportValues)
	values.GET("/:id", cntrl.GetValue)
	values.PUT("/:id", cntrl.UpdateValue)
	values.DELETE("/:id", cntrl.DeleteValue)

	api.GET("/view", cntrl.GetView)
	api.GET("/statistics", cntrl.GetStatistics)
	api.GET("/chart", cntrl.GetChart)
	api.GET("/chart.png", cntrl.GetChartPNG)

	return svc, nil
}
