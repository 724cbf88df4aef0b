package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/GiftinTech/Loan-Calculator/internal/calculator"
	"github.com/GiftinTech/Loan-Calculator/internal/store"
	"github.com/GiftinTech/Loan-Calculator/pkg/amortization"
	"github.com/GiftinTech/Loan-Calculator/pkg/chart"
	"github.com/GiftinTech/Loan-Calculator/pkg/constants"
	"github.com/GiftinTech/Loan-Calculator/pkg/format"
	"github.com/GiftinTech/Loan-Calculator/pkg/output"
	"go.uber.org/zap"
)

//go:embed static/*
var staticFiles embed.FS

// CSVFilename is the download name of the schedule export.
const CSVFilename = "amortization-schedule.csv"

type handler struct {
	logger      *zap.Logger
	calculator  *calculator.Service
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler that serves the web UI and calculator API.
func NewHandler(logger *zap.Logger, svc *calculator.Service, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if svc == nil {
		svc = calculator.New(logger, nil, nil)
	}

	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, calculator: svc, maxBodySize: maxBodySize, version: trimmedVersion}

	mux := http.NewServeMux()

	// Calculation API endpoint for the form
	mux.HandleFunc("/api/calculate", h.handleCalculate)

	// Most recent calculation and its exports
	mux.HandleFunc("/api/last", h.handleLast)
	mux.HandleFunc("/api/export.csv", h.handleExportCSV)
	mux.HandleFunc("/api/chart", h.handleChart)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	fileServer := http.FileServer(http.FS(sub))
	mux.Handle("/", fileServer)

	return mux
}

// amount accepts either a JSON number or a string such as "100,000".
type amount string

func (a *amount) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*a = ""
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*a = amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("expected a number or a string, got %s", trimmed)
	}
	*a = amount(n.String())
	return nil
}

type calculateRequest struct {
	Principal  amount `json:"principal"`
	AnnualRate amount `json:"annualRate"`
	Years      int    `json:"years"`
	Months     int    `json:"months"`
	StartDate  string `json:"startDate"`
	Currency   string `json:"currency"`
}

type calculationResponse struct {
	ID           string               `json:"id"`
	Currency     string               `json:"currency"`
	Symbol       string               `json:"symbol"`
	Term         output.TermRecord    `json:"term"`
	Summary      output.SummaryRecord `json:"summary"`
	Schedule     []output.EntryRecord `json:"schedule"`
	CSV          string               `json:"csv"`
	Warnings     []string             `json:"warnings,omitempty"`
	CalculatedAt string               `json:"calculatedAt"`
	Duration     string               `json:"duration,omitempty"`
}

func newCalculationResponse(calculation *calculator.Calculation) calculationResponse {
	record := output.NewRecord(calculation.Result)
	return calculationResponse{
		ID:           calculation.ID,
		Currency:     calculation.Currency,
		Symbol:       calculation.Symbol,
		Term:         record.Term,
		Summary:      record.Summary,
		Schedule:     record.Schedule,
		CSV:          output.CsvString(calculation.Result.Schedule),
		Warnings:     calculation.Warnings,
		CalculatedAt: calculation.CalculatedAt.Format(time.RFC3339),
	}
}

func (r calculateRequest) loanRequest() (amortization.LoanRequest, error) {
	if strings.TrimSpace(string(r.Principal)) == "" {
		return amortization.LoanRequest{}, fmt.Errorf("%w: principal is required", amortization.ErrInvalidAmount)
	}
	principal, err := format.ParseAmount(string(r.Principal))
	if err != nil {
		return amortization.LoanRequest{}, fmt.Errorf("%w: principal: %v", amortization.ErrInvalidAmount, err)
	}

	if strings.TrimSpace(string(r.AnnualRate)) == "" {
		return amortization.LoanRequest{}, fmt.Errorf("%w: annual rate is required", amortization.ErrInvalidRate)
	}
	rate, err := format.ParseAmount(strings.TrimSuffix(strings.TrimSpace(string(r.AnnualRate)), "%"))
	if err != nil {
		return amortization.LoanRequest{}, fmt.Errorf("%w: annual rate: %v", amortization.ErrInvalidRate, err)
	}

	return amortization.LoanRequest{
		Principal:         principal,
		AnnualRatePercent: rate,
		TermYears:         r.Years,
		TermMonths:        r.Months,
		StartDate:         strings.TrimSpace(r.StartDate),
	}, nil
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	const op = "server.handleCalculate"
	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var payload calculateRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&payload); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return
	}

	req, err := payload.loanRequest()
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	calculation, err := h.calculator.Calculate(r.Context(), req, payload.Currency)
	if err != nil {
		h.respondErrorWithOp(w, statusFor(err), err.Error(), op)
		return
	}

	response := newCalculationResponse(calculation)
	response.Duration = time.Since(start).String()
	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleLast(w http.ResponseWriter, r *http.Request) {
	calculation, ok := h.lastCalculation(w, r, "server.handleLast")
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, newCalculationResponse(calculation))
}

func (h *handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExportCSV"
	calculation, ok := h.lastCalculation(w, r, op)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := output.CsvFormat(&buf, calculation.Result.Schedule); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", CSVFilename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Warn("failed to write CSV export",
			zap.String("op", op),
			zap.Error(err),
		)
	}
}

func (h *handler) handleChart(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleChart"
	calculation, ok := h.lastCalculation(w, r, op)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := chart.RenderBreakdown(&buf, calculation.Result.Summary, calculation.Symbol); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Warn("failed to write chart",
			zap.String("op", op),
			zap.Error(err),
		)
	}
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// lastCalculation loads the stored calculation for a GET endpoint and writes
// the error response itself when there is none.
func (h *handler) lastCalculation(w http.ResponseWriter, r *http.Request, op string) (*calculator.Calculation, bool) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return nil, false
	}

	calculation, err := h.calculator.Last(r.Context())
	if errors.Is(err, store.ErrNotFound) {
		h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "no calculation yet"})
		return nil, false
	}
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to load last calculation: %v", err), op)
		return nil, false
	}
	return calculation, true
}

// statusFor maps calculation errors onto HTTP status codes.
func statusFor(err error) int {
	for _, sentinel := range []error{
		amortization.ErrInvalidAmount,
		amortization.ErrInvalidRate,
		amortization.ErrInvalidTerm,
		amortization.ErrInvalidDate,
	} {
		if errors.Is(err, sentinel) {
			return http.StatusBadRequest
		}
	}
	if errors.Is(err, format.ErrUnsupportedCurrency) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	log := h.logger.Error
	if status < http.StatusInternalServerError {
		log = h.logger.Info
	}
	log("calculation request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
