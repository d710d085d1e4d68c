package constants

const (
	ViperServerAddressKey      = "server.address"
	ViperServerAllowOriginsKey = "server.allow_origins"

	ViperDatabaseDriverKey         = "database.driver"
	ViperDatabaseDSNKey            = "database.dsn"
	ViperDatabaseConnectRetriesKey = "database.connect_retries"

	ViperLoggingLevelKey      = "logging.level"
	ViperLoggingFormatKey     = "logging.format"
	ViperLoggingOutputFileKey = "logging.output_file"

	ViperStatisticsCompanyKey        = "statistics.company"
	ViperStatisticsAllYearsPolicyKey = "statistics.all_years_policy"
	ViperStatisticsFallbackYearKey   = "statistics.fallback_year"

	ViperIndicatorsKey = "indicators"
)

const (
	EnvPrefix         = "PROFITABILITY"
	DefaultConfigFile = "config.yaml"

	DefaultServerAddress  = ":8080"
	DefaultDatabaseDriver = DriverSQLite
	DefaultDatabaseDSN    = "Database.db"
	DefaultConnectRetries = 5

	DefaultCompany = `PJSC "Lukoil"`
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Filter sentinels accepted from clients.
const (
	AllYears      = "All years"
	AllIndicators = 0
)

const (
	AllYearsPolicyFixed  = "fixed"
	AllYearsPolicyLatest = "latest"

	// DefaultFallbackYear is the year statistics are shown for when no year is selected.
	DefaultFallbackYear = "2021"
)

const (
	MinYear = 1900
	MaxYear = 2100

	// MaxValueDigits is how many significant digits a stored value round-trips with.
	MaxValueDigits = 15
)

const (
	CtxKeyRequestID = "request_id"
	HeaderRequestID = "X-Request-ID"
)
