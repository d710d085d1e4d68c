package controller

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/profitability/internal/pkg/render"
)

func (c *Controller) GetView(ctx echo.Context) error {
	filter, err := parseFilter(ctx)
	if err != nil {
		return err
	}

	view, err := c.service.Refresh(ctx.Request().Context(), filter)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, view)
}

func wantsHTML(ctx echo.Context) bool {
	if ctx.QueryParam("format") == "html" {
		return true
	}
	return strings.Contains(ctx.Request().Header.Get(echo.HeaderAccept), echo.MIMETextHTML)
}

func (c *Controller) GetStatistics(ctx echo.Context) error {
	filter, err := parseFilter(ctx)
	if err != nil {
		return err
	}

	stats, err := c.service.Statistics(ctx.Request().Context(), filter)
	if err != nil {
		return err
	}

	if !wantsHTML(ctx) {
		return ctx.JSON(http.StatusOK, stats)
	}

	var buf bytes.Buffer
	if err := render.StatisticsHTML(&buf, stats); err != nil {
		return err
	}
	return ctx.HTMLBlob(http.StatusOK, buf.Bytes())
}

func (c *Controller) GetChart(ctx echo.Context) error {
	filter, err := parseFilter(ctx)
	if err != nil {
		return err
	}

	chart, err := c.service.Chart(ctx.Request().Context(), filter)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, chart)
}

func (c *Controller) GetChartPNG(ctx echo.Context) error {
	filter, err := parseFilter(ctx)
	if err != nil {
		return err
	}

	chart, err := c.service.Chart(ctx.Request().Context(), filter)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := render.ChartPNG(&buf, chart, "Indicators"); err != nil {
		if errors.Is(err, render.ErrEmptyChart) {
			return ctx.NoContent(http.StatusNoContent)
		}
		return err
	}

	return ctx.Blob(http.StatusOK, "image/png", buf.Bytes())
}
