package indicators

import (
	"context"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ougirez/profitability/internal/domain"
	"github.com/ougirez/profitability/internal/domain/dto"
	"github.com/ougirez/profitability/internal/pkg/analytics"
	"github.com/ougirez/profitability/internal/pkg/constants"
	"github.com/ougirez/profitability/internal/pkg/logger"
	"github.com/ougirez/profitability/internal/pkg/store"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Options struct {
	Company        string
	AllYearsPolicy string
	FallbackYear   domain.Year
}

type Service struct {
	store    store.Store
	validate *validator.Validate
	opts     Options
}

func NewIndicatorsService(store store.Store, opts Options) *Service {
	if opts.Company == "" {
		opts.Company = constants.DefaultCompany
	}
	if opts.AllYearsPolicy == "" {
		opts.AllYearsPolicy = constants.AllYearsPolicyFixed
	}
	if opts.FallbackYear == "" {
		opts.FallbackYear = constants.DefaultFallbackYear
	}

	return &Service{
		store:    store,
		validate: validator.New(),
		opts:     opts,
	}
}

// Health reports whether the database answers.
func (s *Service) Health(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return fmt.Errorf("store.Ping: %w", err)
	}
	return nil
}

func (s *Service) ListIndicators(ctx context.Context) ([]*domain.Indicator, error) {
	indicators, err := s.store.ListIndicators(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.ListIndicators: %w", err)
	}

	return indicators, nil
}

func (s *Service) Catalog(ctx context.Context) (domain.Catalog, error) {
	indicators, err := s.ListIndicators(ctx)
	if err != nil {
		return nil, err
	}

	return domain.NewCatalog(indicators), nil
}

// ListYears returns the years that have values, ascending.
func (s *Service) ListYears(ctx context.Context) ([]domain.Year, error) {
	years, err := s.store.ListYears(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.ListYears: %w", err)
	}

	analytics.SortYears(years)
	return years, nil
}

func (s *Service) loadRows(ctx context.Context, filter domain.ValueFilter) ([]*domain.IndicatorValue, error) {
	rows, err := s.store.ListValues(ctx, store.ListValuesOpts{
		IndicatorID: filter.IndicatorID,
		Year:        filter.Year,
	})
	if err != nil {
		return nil, fmt.Errorf("store.ListValues: %w", err)
	}

	return rows, nil
}

// ListValues returns the rows matching filter with their indicator titles.
func (s *Service) ListValues(ctx context.Context, filter domain.ValueFilter) ([]*domain.ValueRow, error) {
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.loadRows(ctx, filter)
	if err != nil {
		return nil, err
	}

	return analytics.Enrich(rows, catalog), nil
}

func (s *Service) GetValue(ctx context.Context, id int64) (*domain.ValueRow, error) {
	value, err := s.store.GetValue(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("store.GetValue: %w", err)
	}

	return s.enrichOne(ctx, value)
}

func (s *Service) enrichOne(ctx context.Context, value *domain.IndicatorValue) (*domain.ValueRow, error) {
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	return analytics.Enrich([]*domain.IndicatorValue{value}, catalog)[0], nil
}

func (s *Service) AddValue(ctx context.Context, req *dto.IndicatorValueDto) (*domain.ValueRow, error) {
	if err := s.validate.StructCtx(ctx, req); err != nil {
		return nil, fmt.Errorf("%w: %s", constants.ErrValidation, err.Error())
	}

	year, err := ParseYear(req.Year)
	if err != nil {
		return nil, err
	}

	value, err := ParseValue(req.Value)
	if err != nil {
		return nil, err
	}

	inserted, err := s.store.InsertValue(ctx, &domain.IndicatorValue{
		IndicatorID: req.IndicatorID,
		Year:        year,
		Value:       value,
	})
	if err != nil {
		return nil, fmt.Errorf("store.InsertValue: %w", err)
	}

	logger.Info(ctx, "indicator value added",
		zap.Int64("values_id", inserted.ID),
		zap.Int64("indicators_id", inserted.IndicatorID),
		zap.String("year", inserted.Year),
	)

	return s.enrichOne(ctx, inserted)
}

func (s *Service) EditValue(ctx context.Context, id int64, req *dto.UpdateIndicatorValueDto) (*domain.ValueRow, error) {
	if err := s.validate.StructCtx(ctx, req); err != nil {
		return nil, fmt.Errorf("%w: %s", constants.ErrValidation, err.Error())
	}

	year, err := ParseYear(req.Year)
	if err != nil {
		return nil, err
	}

	value, err := ParseValue(req.Value)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateValue(ctx, id, year, value)
	if err != nil {
		return nil, fmt.Errorf("store.UpdateValue: %w", err)
	}

	logger.Info(ctx, "indicator value updated", zap.Int64("values_id", id))

	return s.enrichOne(ctx, updated)
}

func (s *Service) RemoveValue(ctx context.Context, id int64) error {
	if err := s.store.DeleteValue(ctx, id); err != nil {
		return fmt.Errorf("store.DeleteValue: %w", err)
	}

	logger.Info(ctx, "indicator value removed", zap.Int64("values_id", id))
	return nil
}

func (s *Service) statistics(rows []*domain.IndicatorValue, filter domain.ValueFilter) (*domain.Statistics, error) {
	year := analytics.StatisticsYear(filter.Year, rows, s.opts.AllYearsPolicy, s.opts.FallbackYear)
	return analytics.ComputeStatistics(rows, year, s.opts.Company)
}

// Statistics computes the profitability ratios over the rows matching filter.
func (s *Service) Statistics(ctx context.Context, filter domain.ValueFilter) (*domain.Statistics, error) {
	rows, err := s.loadRows(ctx, filter)
	if err != nil {
		return nil, err
	}

	stats, err := s.statistics(rows, filter)
	if err != nil {
		return nil, fmt.Errorf("statistics: %w", err)
	}

	return stats, nil
}

func (s *Service) Chart(ctx context.Context, filter domain.ValueFilter) (domain.ChartData, error) {
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return domain.ChartData{}, err
	}

	rows, err := s.loadRows(ctx, filter)
	if err != nil {
		return domain.ChartData{}, err
	}

	return analytics.BuildChart(rows, catalog), nil
}

// Refresh reads the value snapshot once and narrows it to filter, then builds
// the list, statistics and chart from that one row set. A statistics failure
// does not fail the refresh; its message is returned in the view instead.
func (s *Service) Refresh(ctx context.Context, filter domain.ValueFilter) (*domain.View, error) {
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.loadRows(ctx, domain.ValueFilter{})
	if err != nil {
		return nil, err
	}
	rows := analytics.FilterValues(snapshot, filter)

	view := &domain.View{
		Rows:  analytics.Enrich(rows, catalog),
		Chart: analytics.BuildChart(rows, catalog),
	}

	view.Statistics, err = s.statistics(rows, filter)
	if err != nil {
		logger.Warnf(ctx, "statistics unavailable: %s", err.Error())
		view.StatisticsError = err.Error()
	}

	return view, nil
}

// ParseYear accepts an integer year in the supported range and returns its canonical text.
func ParseYear(raw string) (domain.Year, error) {
	year, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w: year %q is not an integer", constants.ErrValidation, raw)
	}

	if year < constants.MinYear || year > constants.MaxYear {
		return "", fmt.Errorf("%w: year %d is out of range %d-%d", constants.ErrValidation, year, constants.MinYear, constants.MaxYear)
	}

	return strconv.Itoa(year), nil
}

// ParseValue accepts a decimal number with at most constants.MaxValueDigits
// significant digits, the precision a SQLite NUMERIC column keeps.
func ParseValue(raw string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: value %q is not a number", constants.ErrValidation, raw)
	}

	if significantDigits(value) > constants.MaxValueDigits {
		return decimal.Decimal{}, fmt.Errorf("%w: value %q has more than %d significant digits",
			constants.ErrValidation, raw, constants.MaxValueDigits)
	}

	return value, nil
}

func significantDigits(value decimal.Decimal) int {
	digits := strings.TrimRight(new(big.Int).Abs(value.Coefficient()).String(), "0")
	return len(digits)
}
