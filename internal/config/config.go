// Package config loads runtime configuration from a YAML file, the process
// environment (PROFITABILITY_ prefix) and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/ougirez/profitability/internal/domain"
	"github.com/ougirez/profitability/internal/pkg/constants"
	"github.com/ougirez/profitability/internal/pkg/logger"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Logging    logger.Config    `mapstructure:"logging"`
	Statistics StatisticsConfig `mapstructure:"statistics"`
	Indicators []IndicatorSeed  `mapstructure:"indicators"`
}

type ServerConfig struct {
	Address      string   `mapstructure:"address"`
	AllowOrigins []string `mapstructure:"allow_origins"`
}

type DatabaseConfig struct {
	Driver         string `mapstructure:"driver"` // sqlite, postgres
	DSN            string `mapstructure:"dsn"`
	ConnectRetries uint64 `mapstructure:"connect_retries"`
}

type StatisticsConfig struct {
	Company string `mapstructure:"company"`
	// AllYearsPolicy decides which year statistics use when no year is selected: fixed or latest.
	AllYearsPolicy string `mapstructure:"all_years_policy"`
	FallbackYear   string `mapstructure:"fallback_year"`
}

type IndicatorSeed struct {
	ID    int64  `mapstructure:"id"`
	Title string `mapstructure:"title"`
}

// DefaultIndicators is the catalog seeded when the configuration lists none.
// Indicator 1 is the numerator of every profitability ratio.
var DefaultIndicators = []IndicatorSeed{
	{ID: 1, Title: "Net profit"},
	{ID: 2, Title: "Total assets"},
	{ID: 3, Title: "Sales revenue"},
	{ID: 4, Title: "Basic production assets"},
	{ID: 5, Title: "Current assets"},
	{ID: 6, Title: "Equity capital"},
	{ID: 7, Title: "Investments"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(constants.ViperServerAddressKey, constants.DefaultServerAddress)
	v.SetDefault(constants.ViperServerAllowOriginsKey, []string{"http://localhost:3000"})

	v.SetDefault(constants.ViperDatabaseDriverKey, constants.DefaultDatabaseDriver)
	v.SetDefault(constants.ViperDatabaseDSNKey, constants.DefaultDatabaseDSN)
	v.SetDefault(constants.ViperDatabaseConnectRetriesKey, constants.DefaultConnectRetries)

	v.SetDefault(constants.ViperLoggingLevelKey, "info")
	v.SetDefault(constants.ViperLoggingFormatKey, "json")
	v.SetDefault(constants.ViperLoggingOutputFileKey, "")

	v.SetDefault(constants.ViperStatisticsCompanyKey, constants.DefaultCompany)
	v.SetDefault(constants.ViperStatisticsAllYearsPolicyKey, constants.AllYearsPolicyFixed)
	v.SetDefault(constants.ViperStatisticsFallbackYearKey, constants.DefaultFallbackYear)

	v.SetDefault(constants.ViperIndicatorsKey, DefaultIndicators)
}

// Load reads the configuration at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("error reading config file, %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	// an explicit empty list still gets the default catalog
	if len(cfg.Indicators) == 0 {
		cfg.Indicators = DefaultIndicators
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case constants.DriverSQLite, constants.DriverPostgres:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	if c.Database.DSN == "" {
		return errors.New("database dsn is empty")
	}

	switch c.Statistics.AllYearsPolicy {
	case constants.AllYearsPolicyFixed, constants.AllYearsPolicyLatest:
	default:
		return fmt.Errorf("unsupported statistics all_years_policy %q", c.Statistics.AllYearsPolicy)
	}

	seen := make(map[int64]struct{}, len(c.Indicators))
	for _, i := range c.Indicators {
		if i.ID <= 0 || strings.TrimSpace(i.Title) == "" {
			return fmt.Errorf("invalid indicator seed %+v", i)
		}
		if _, ok := seen[i.ID]; ok {
			return fmt.Errorf("duplicate indicator id %d", i.ID)
		}
		seen[i.ID] = struct{}{}
	}

	return nil
}

// Catalog converts the seed list to domain indicators.
func (c *Config) Catalog() []*domain.Indicator {
	res := make([]*domain.Indicator, 0, len(c.Indicators))
	for _, i := range c.Indicators {
		res = append(res, &domain.Indicator{ID: i.ID, Title: i.Title})
	}
	return res
}

// ConfigPath returns the config file named by PROFITABILITY_CONFIG or the default.
func ConfigPath() string {
	if p := os.Getenv(constants.EnvPrefix + "_CONFIG"); p != "" {
		return p
	}
	return constants.DefaultConfigFile
}
