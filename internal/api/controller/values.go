package controller

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/profitability/internal/domain/dto"
	"github.com/ougirez/profitability/internal/pkg/render"
)

const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (c *Controller) GetValues(ctx echo.Context) error {
	filter, err := parseFilter(ctx)
	if err != nil {
		return err
	}

	rows, err := c.service.ListValues(ctx.Request().Context(), filter)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, rows)
}

func (c *Controller) GetValue(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return err
	}

	row, err := c.service.GetValue(ctx.Request().Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, row)
}

func (c *Controller) CreateValue(ctx echo.Context) error {
	var req dto.IndicatorValueDto
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	row, err := c.service.AddValue(ctx.Request().Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, row)
}

func (c *Controller) UpdateValue(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateIndicatorValueDto
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	row, err := c.service.EditValue(ctx.Request().Context(), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, row)
}

func (c *Controller) DeleteValue(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return err
	}

	if err := c.service.RemoveValue(ctx.Request().Context(), id); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (c *Controller) ExportValues(ctx echo.Context) error {
	filter, err := parseFilter(ctx)
	if err != nil {
		return err
	}

	rows, err := c.service.ListValues(ctx.Request().Context(), filter)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := render.ValuesXLSX(&buf, rows); err != nil {
		return err
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="values.xlsx"`)
	return ctx.Blob(http.StatusOK, mimeXLSX, buf.Bytes())
}
