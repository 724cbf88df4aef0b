package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/GiftinTech/Loan-Calculator/internal/calculator"
	"github.com/GiftinTech/Loan-Calculator/internal/config"
	"github.com/GiftinTech/Loan-Calculator/internal/logging"
	"github.com/GiftinTech/Loan-Calculator/internal/store"
	"github.com/GiftinTech/Loan-Calculator/pkg/constants"
	"github.com/GiftinTech/Loan-Calculator/pkg/output"
	"github.com/GiftinTech/Loan-Calculator/pkg/validation"
	"go.uber.org/zap"
)

// loadConfiguration reads the config file. A missing file is only an error
// when its path was given explicitly.
func loadConfiguration(path string, explicit bool) (*config.Configuration, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) && !explicit {
		return config.LoadConfigurationFromReader(strings.NewReader(""))
	}
	return config.LoadConfiguration(path)
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	principal := flag.String("principal", "", "loan amount, e.g. 100000 or 100,000")
	rate := flag.String("rate", "", "annual interest rate in percent, e.g. 6.5")
	years := flag.Int("years", 0, "loan term in years")
	months := flag.Int("months", 0, "loan term in months")
	startDate := flag.String("start", "", "first payment date (YYYY-MM-DD), defaults to today")
	currencyCode := flag.String("currency", "", "ISO 4217 currency code override, e.g. USD or EUR")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	showAll := flag.Bool("show-all", false, "print every schedule row in pretty output")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	conf, err := loadConfiguration(*configLocation, set["config"])
	if err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	// Initialize logging based on config and CLI override
	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI flags take precedence over config values
	if set["principal"] {
		conf.Loan.Principal = *principal
	}
	if set["rate"] {
		conf.Loan.InterestRate = *rate
	}
	if set["years"] {
		conf.Loan.Years = *years
		if !set["months"] {
			conf.Loan.Months = 0
		}
	}
	if set["months"] {
		conf.Loan.Months = *months
		if !set["years"] {
			conf.Loan.Years = 0
		}
	}
	if set["start"] {
		conf.Loan.StartDate = *startDate
	}
	if conf.Loan.StartDate == "" {
		conf.Loan.StartDate = time.Now().Format(config.DateTimeLayout)
	}
	if set["currency"] {
		conf.Currency = strings.ToUpper(strings.TrimSpace(*currencyCode))
	}
	if set["output-format"] {
		conf.Output.Format = *outputFormatFlag
	}
	if set["show-all"] {
		conf.Output.ShowAll = *showAll
	}

	if err := validation.ValidateOutputFormat(conf.Output.Format); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}
	if err := conf.Validate(); err != nil {
		logger.Fatal("invalid configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	validator, err := conf.Validator()
	if err != nil {
		logger.Fatal("invalid validation settings",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	req, err := conf.Loan.Request()
	if err != nil {
		logger.Fatal("invalid loan parameters",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	st, err := store.Open(conf.Store)
	if err != nil {
		logger.Fatal("failed to open store",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	defer func() {
		_ = st.Close()
	}()

	svc := calculator.New(logger, validator, st, calculator.WithStoreKey(conf.Store.Key))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	calculation, err := svc.Calculate(ctx, req, conf.Currency)
	if err != nil {
		logger.Fatal("failed to calculate loan",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Handle output.
	switch conf.Output.Format {
	case constants.OutputFormatPretty:
		output.PrettyFormat(os.Stdout, calculation.Result, output.Options{
			Symbol:      calculation.Symbol,
			ShowAll:     conf.Output.ShowAll,
			PreviewRows: conf.Output.PreviewRows,
		})
	case constants.OutputFormatCSV:
		err = output.CsvFormat(os.Stdout, calculation.Result.Schedule)
	case constants.OutputFormatJSON:
		err = output.JSONFormat(os.Stdout, calculation.Result)
	}
	if err != nil {
		logger.Fatal("failed to write output",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
