// Package calculator ties request validation, the amortization engine and
// last-result persistence together for the CLI and the HTTP server.
package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/GiftinTech/Loan-Calculator/internal/store"
	"github.com/GiftinTech/Loan-Calculator/pkg/amortization"
	"github.com/GiftinTech/Loan-Calculator/pkg/constants"
	"github.com/GiftinTech/Loan-Calculator/pkg/format"
	"github.com/GiftinTech/Loan-Calculator/pkg/validation"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Calculation is one completed calculation as it is stored and served.
type Calculation struct {
	ID           string                   `json:"id"`
	Currency     string                   `json:"currency"`
	Symbol       string                   `json:"symbol"`
	Request      amortization.LoanRequest `json:"request"`
	Result       amortization.Result      `json:"result"`
	Warnings     []string                 `json:"warnings,omitempty"`
	CalculatedAt time.Time                `json:"calculatedAt"`
}

// Service validates and runs calculations and remembers the latest one.
type Service struct {
	logger    *zap.Logger
	validator *validation.RequestValidator
	store     store.Store
	key       string
	now       func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithStoreKey sets the key under which the last calculation is saved.
func WithStoreKey(key string) Option {
	return func(s *Service) {
		if key != "" {
			s.key = key
		}
	}
}

// WithClock replaces time.Now for CalculatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New creates a Service. A nil logger, validator or store is replaced by a
// no-op logger, the default validator and an in-memory store.
func New(logger *zap.Logger, validator *validation.RequestValidator, st store.Store, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validator == nil {
		validator = validation.NewRequestValidator()
	}
	if st == nil {
		st = store.NewMemoryStore()
	}

	s := &Service{
		logger:    logger,
		validator: validator,
		store:     st,
		key:       constants.DefaultStoreKey,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Calculate validates req, runs the engine and saves the outcome as the last
// calculation, replacing any previous one. Validation failures wrap the
// amortization sentinel errors. A failed save is logged and does not fail the
// calculation.
func (s *Service) Calculate(ctx context.Context, req amortization.LoanRequest, currencyCode string) (*Calculation, error) {
	if currencyCode == "" {
		currencyCode = constants.DefaultCurrency
	}
	symbol, err := format.Symbol(currencyCode)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(req); err != nil {
		s.logger.Debug("rejected loan request",
			zap.String("op", "calculator.Calculate"),
			zap.Error(err),
		)
		return nil, err
	}

	warnings := s.validator.Warnings(req)
	for _, warning := range warnings {
		s.logger.Warn("Loan request warning: "+warning,
			zap.String("op", "calculator.Calculate"),
		)
	}

	result, err := amortization.Calculate(req)
	if err != nil {
		return nil, err
	}

	calculation := &Calculation{
		ID:           uuid.NewString(),
		Currency:     currencyCode,
		Symbol:       symbol,
		Request:      req,
		Result:       result,
		Warnings:     warnings,
		CalculatedAt: s.now().UTC(),
	}

	if err := s.save(ctx, calculation); err != nil {
		s.logger.Warn("failed to save last calculation",
			zap.String("op", "calculator.Calculate"),
			zap.String("id", calculation.ID),
			zap.Error(err),
		)
	}

	s.logger.Info("calculated loan",
		zap.String("op", "calculator.Calculate"),
		zap.String("id", calculation.ID),
		zap.Int("months", result.Term.TotalMonths),
		zap.String("monthlyPayment", result.Summary.MonthlyPayment.StringFixed(constants.DecimalPlaces)),
	)

	return calculation, nil
}

// Last returns the most recent calculation, or store.ErrNotFound.
func (s *Service) Last(ctx context.Context) (*Calculation, error) {
	data, err := s.store.Load(ctx, s.key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Error("failed to load last calculation",
				zap.String("op", "calculator.Last"),
				zap.Error(err),
			)
		}
		return nil, err
	}

	var calculation Calculation
	if err := json.Unmarshal(data, &calculation); err != nil {
		return nil, fmt.Errorf("failed to decode last calculation: %w", err)
	}
	return &calculation, nil
}

func (s *Service) save(ctx context.Context, calculation *Calculation) error {
	data, err := json.Marshal(calculation)
	if err != nil {
		return fmt.Errorf("failed to encode calculation: %w", err)
	}
	return s.store.Save(ctx, s.key, data)
}
