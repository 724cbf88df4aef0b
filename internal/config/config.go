// Package config defines the data structures related to configuration and
// includes functions for loading, defaulting and validating the config.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/GiftinTech/Loan-Calculator/pkg/amortization"
	"github.com/GiftinTech/Loan-Calculator/pkg/constants"
	"github.com/GiftinTech/Loan-Calculator/pkg/format"
	"github.com/GiftinTech/Loan-Calculator/pkg/validation"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

// DateTimeLayout is the format expected in config files and is also the output
// date format.
const DateTimeLayout = constants.DateLayout

// Configuration holds all configuration for loan-calculator.
type Configuration struct {
	Loan       LoanConfig       `yaml:"loan"`
	Currency   string           `yaml:"currency,omitempty"`
	Validation ValidationConfig `yaml:"validation,omitempty"`
	Logging    LoggingConfig    `yaml:"logging,omitempty"`
	Output     OutputConfig     `yaml:"output,omitempty"`
	Store      StoreConfig      `yaml:"store,omitempty"`
}

// LoanConfig holds the loan parameters as entered by the user. Amounts are
// kept as strings so that "100,000" style input survives until parsing.
type LoanConfig struct {
	Principal    string `yaml:"principal"`
	InterestRate string `yaml:"interestRate"`
	Years        int    `yaml:"years,omitempty"`
	Months       int    `yaml:"months,omitempty"`
	StartDate    string `yaml:"startDate,omitempty"`
}

// ValidationConfig holds the form validation rules.
type ValidationConfig struct {
	MinimumPrincipal  string `yaml:"minimumPrincipal,omitempty"`
	TermPolicy        string `yaml:"termPolicy,omitempty"` // exclusive, additive
	MaximumTermMonths int    `yaml:"maximumTermMonths,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format      string `yaml:"format,omitempty"` // pretty, csv, json
	ShowAll     bool   `yaml:"showAll,omitempty"`
	PreviewRows int    `yaml:"previewRows,omitempty"`
}

// StoreConfig selects where the last calculation is kept.
type StoreConfig struct {
	Backend  string `yaml:"backend,omitempty"` // memory, redis
	Address  string `yaml:"address,omitempty"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db,omitempty"`
	Key      string `yaml:"key,omitempty"`
	TTL      string `yaml:"ttl,omitempty"` // Go duration, empty keeps forever
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Environment variables prefixed with LOANCALC_ override
// file values, e.g. LOANCALC_LOAN_PRINCIPAL or LOANCALC_OUTPUT_FORMAT.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %s", err)
	}

	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Every key needs a default for AutomaticEnv to reach it during Unmarshal.
	v.SetDefault("loan.principal", "")
	v.SetDefault("loan.interestRate", "")
	v.SetDefault("loan.years", 0)
	v.SetDefault("loan.months", 0)
	v.SetDefault("loan.startDate", "")
	v.SetDefault("currency", constants.DefaultCurrency)
	v.SetDefault("validation.minimumPrincipal", constants.DefaultMinimumPrincipal)
	v.SetDefault("validation.termPolicy", constants.TermPolicyExclusive)
	v.SetDefault("validation.maximumTermMonths", constants.DefaultMaximumTermMonths)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("output.showAll", false)
	v.SetDefault("output.previewRows", constants.DefaultPreviewRows)
	v.SetDefault("store.backend", constants.StoreBackendMemory)
	v.SetDefault("store.address", constants.DefaultRedisAddress)
	v.SetDefault("store.password", "")
	v.SetDefault("store.db", 0)
	v.SetDefault("store.key", constants.DefaultStoreKey)
	v.SetDefault("store.ttl", "")
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.ApplyDefaults()
	return &configuration, nil
}

// ApplyDefaults fills every unset optional field with its default value.
func (c *Configuration) ApplyDefaults() {
	if strings.TrimSpace(c.Currency) == "" {
		c.Currency = constants.DefaultCurrency
	}
	c.Currency = strings.ToUpper(strings.TrimSpace(c.Currency))

	if c.Validation.MinimumPrincipal == "" {
		c.Validation.MinimumPrincipal = constants.DefaultMinimumPrincipal
	}
	if c.Validation.TermPolicy == "" {
		c.Validation.TermPolicy = constants.TermPolicyExclusive
	}
	if c.Validation.MaximumTermMonths == 0 {
		c.Validation.MaximumTermMonths = constants.DefaultMaximumTermMonths
	}

	if c.Output.Format == "" {
		c.Output.Format = constants.OutputFormatPretty
	}
	if c.Output.PreviewRows <= 0 {
		c.Output.PreviewRows = constants.DefaultPreviewRows
	}

	if c.Store.Backend == "" {
		c.Store.Backend = constants.StoreBackendMemory
	}
	if c.Store.Key == "" {
		c.Store.Key = constants.DefaultStoreKey
	}
	if c.Store.Backend == constants.StoreBackendRedis && c.Store.Address == "" {
		c.Store.Address = constants.DefaultRedisAddress
	}
}

// Validate checks the settings that do not depend on the loan itself and
// returns every problem found.
func (c *Configuration) Validate() error {
	var err error

	err = multierr.Append(err, validation.ValidateCurrency(c.Currency))
	err = multierr.Append(err, validation.ValidateOutputFormat(c.Output.Format))

	if _, policyErr := validation.ParseTermPolicy(c.Validation.TermPolicy); policyErr != nil {
		err = multierr.Append(err, policyErr)
	}
	if c.Validation.MaximumTermMonths < 0 {
		err = multierr.Append(err, fmt.Errorf("validation.maximumTermMonths %d must not be negative", c.Validation.MaximumTermMonths))
	}

	switch c.Store.Backend {
	case constants.StoreBackendMemory, constants.StoreBackendRedis:
	default:
		err = multierr.Append(err, fmt.Errorf("expected store backend of %s or %s, got %s",
			constants.StoreBackendMemory, constants.StoreBackendRedis, c.Store.Backend))
	}

	return err
}

// Validator builds the request validator described by the validation section.
// An unset maximumTermMonths keeps the default cap.
func (c Configuration) Validator() (*validation.RequestValidator, error) {
	validator := validation.NewRequestValidator()

	if c.Validation.MinimumPrincipal != "" {
		minimum, err := format.ParseAmount(c.Validation.MinimumPrincipal)
		if err != nil {
			return nil, fmt.Errorf("invalid validation.minimumPrincipal: %w", err)
		}
		if minimum.IsNegative() {
			return nil, fmt.Errorf("validation.minimumPrincipal %s must not be negative", minimum)
		}
		validator.MinimumPrincipal = minimum
	}

	policy, err := validation.ParseTermPolicy(c.Validation.TermPolicy)
	if err != nil {
		return nil, err
	}
	validator.TermPolicy = policy

	switch {
	case c.Validation.MaximumTermMonths < 0:
		return nil, fmt.Errorf("validation.maximumTermMonths %d must not be negative", c.Validation.MaximumTermMonths)
	case c.Validation.MaximumTermMonths > 0:
		validator.MaximumTermMonths = c.Validation.MaximumTermMonths
	}

	return validator, nil
}

// Request converts the loan section into an engine request.
func (l LoanConfig) Request() (amortization.LoanRequest, error) {
	if strings.TrimSpace(l.Principal) == "" {
		return amortization.LoanRequest{}, fmt.Errorf("%w: loan.principal is required", amortization.ErrInvalidAmount)
	}
	principal, err := format.ParseAmount(l.Principal)
	if err != nil {
		return amortization.LoanRequest{}, fmt.Errorf("%w: loan.principal: %v", amortization.ErrInvalidAmount, err)
	}

	rate := decimal.Zero
	if strings.TrimSpace(l.InterestRate) != "" {
		rate, err = format.ParseAmount(strings.TrimSuffix(strings.TrimSpace(l.InterestRate), "%"))
		if err != nil {
			return amortization.LoanRequest{}, fmt.Errorf("%w: loan.interestRate: %v", amortization.ErrInvalidRate, err)
		}
	}

	return amortization.LoanRequest{
		Principal:         principal,
		AnnualRatePercent: rate,
		TermYears:         l.Years,
		TermMonths:        l.Months,
		StartDate:         strings.TrimSpace(l.StartDate),
	}, nil
}
