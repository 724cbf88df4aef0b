// Package constants provides shared constants for the loan-calculator application.
package constants

// DateLayout is the format expected for loan start dates and is also the output
// date format.
const DateLayout = "2006-01-02"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPlaces is the number of fraction digits kept for currency amounts
	DecimalPlaces = 2

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// DefaultMinimumPrincipal is the smallest loan amount accepted by the form validator
	DefaultMinimumPrincipal = "500"

	// DefaultMaximumTermMonths is the longest term accepted by the form validator (100 years)
	DefaultMaximumTermMonths = 100 * MonthsPerYear

	// DefaultCurrency is the ISO 4217 code used when none is configured
	DefaultCurrency = "USD"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"

	// DefaultPreviewRows is the number of schedule rows shown when not showing all
	DefaultPreviewRows = 12
)

// Term policy constants
const (
	// TermPolicyExclusive requires exactly one of years or months to be set
	TermPolicyExclusive = "exclusive"

	// TermPolicyAdditive sums years and months when both are set
	TermPolicyAdditive = "additive"
)

// Store constants
const (
	// StoreBackendMemory keeps the last result in process memory
	StoreBackendMemory = "memory"

	// StoreBackendRedis keeps the last result in redis
	StoreBackendRedis = "redis"

	// DefaultStoreKey is the key under which the last calculation is saved
	DefaultStoreKey = "loan-calculator:last"

	// DefaultRedisAddress is the default redis endpoint
	DefaultRedisAddress = "localhost:6379"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix prefixes environment overrides, e.g. LOANCALC_CURRENCY
	EnvPrefix = "LOANCALC"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024
)
