package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (c *Controller) GetHealth(ctx echo.Context) error {
	if err := c.service.Health(ctx.Request().Context()); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (c *Controller) GetIndicators(ctx echo.Context) error {
	indicators, err := c.service.ListIndicators(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, indicators)
}

func (c *Controller) GetYears(ctx echo.Context) error {
	years, err := c.service.ListYears(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, years)
}
