package controller

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/profitability/internal/domain"
	"github.com/ougirez/profitability/internal/pkg/constants"
	"github.com/ougirez/profitability/internal/service/indicators"
)

type Controller struct {
	service *indicators.Service
}

func NewController(service *indicators.Service) *Controller {
	return &Controller{service: service}
}

// parseFilter reads indicator_id and year from the query string.
// indicator_id=0 and year="All years" select everything, like an absent parameter.
func parseFilter(ctx echo.Context) (domain.ValueFilter, error) {
	var filter domain.ValueFilter

	if raw := strings.TrimSpace(ctx.QueryParam("indicator_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 0 {
			return filter, fmt.Errorf("%w: invalid indicator_id %q", constants.ErrValidation, raw)
		}
		if id != constants.AllIndicators {
			filter.IndicatorID = &id
		}
	}

	if raw := strings.TrimSpace(ctx.QueryParam("year")); raw != "" && raw != constants.AllYears {
		year, err := indicators.ParseYear(raw)
		if err != nil {
			return filter, err
		}
		filter.Year = &year
	}

	return filter, nil
}

func parseID(ctx echo.Context) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", constants.ErrValidation, ctx.Param("id"))
	}
	return id, nil
}
