package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/finhealth/internal/config"
	"github.com/iwvelando/finhealth/pkg/constants"
	"github.com/iwvelando/finhealth/pkg/output"
	"github.com/iwvelando/finhealth/pkg/scoring"
	"github.com/iwvelando/finhealth/pkg/validation"
	"go.uber.org/zap"
)

type handler struct {
	logger      *zap.Logger
	maxBodySize int64
	options     scoring.Options
	version     string
}

type contextKey string

const requestIDKey contextKey = "requestID"

// NewHandler constructs the HTTP handler that serves the scoring and export
// API. A nil limiter disables rate limiting; the caller owns its lifetime.
func NewHandler(logger *zap.Logger, cfg *Config, limiter *RateLimiter, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	maxBodySize := constants.DefaultMaxBodySizeBytes
	options := scoring.DefaultOptions()
	if cfg != nil {
		if cfg.BodySizeBytes() > 0 {
			maxBodySize = cfg.BodySizeBytes()
		}
		if cfg.Options().Scale.Name != "" {
			options = cfg.Options()
		}
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxBodySize: maxBodySize, options: options, version: trimmedVersion}

	api := http.NewServeMux()

	// Scoring API endpoint for JSON assessments
	api.HandleFunc("/api/score", h.handleScore)

	// Scoring API endpoint for assessment file uploads
	api.HandleFunc("/api/upload", h.handleUpload)

	// Report downloads
	api.HandleFunc("/api/export/{format}", h.handleExport)

	// Version endpoint for client metadata
	api.HandleFunc("/api/version", h.handleVersion)

	var limited http.Handler = api
	if limiter != nil {
		limited = limiter.Middleware(api, h.respondErrorWithOp)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", h.handleHealth)
	mux.Handle("/", limited)

	return h.withRequestID(mux)
}

type scoreRequest struct {
	Profile     scoring.Profile    `json:"profile"`
	Checklist   *scoring.Checklist `json:"checklist"`
	Investments []string           `json:"investments"`
	Options     *requestOptions    `json:"options"`
}

type requestOptions struct {
	Scale            string `json:"scale"`
	InvestmentMethod string `json:"investmentMethod"`
}

type scoreResponse struct {
	RequestID  string             `json:"requestId"`
	Assessment scoring.Assessment `json:"assessment"`
	CSV        string             `json:"csv"`
	Warnings   []string           `json:"warnings,omitempty"`
	Duration   string             `json:"duration"`
}

func (h *handler) handleScore(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleScore"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	assessment, warnings, status, err := h.assessJSON(w, r)
	if err != nil {
		h.respondErrorWithOp(w, status, err.Error(), op)
		return
	}
	h.respondAssessment(w, r, assessment, warnings, start, op)
}

func (h *handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleUpload"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	if err := r.ParseMultipartForm(h.maxBodySize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxBodySize), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing assessment file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to read assessment: %v", err), op)
		return
	}

	cfg, err := config.LoadConfigurationFromReader(&buf)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	assessment, warnings, err := cfg.Assess()
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	h.respondAssessment(w, r, assessment, warnings, start, op)
}

var exportContentTypes = map[string]string{
	constants.OutputFormatCSV:  "text/csv; charset=utf-8",
	constants.OutputFormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	constants.OutputFormatPDF:  "application/pdf",
}

func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExport"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	exportFormat := r.PathValue("format")
	contentType, ok := exportContentTypes[exportFormat]
	if !ok {
		h.respondErrorWithOp(w, http.StatusNotFound, fmt.Sprintf("unsupported export format %q", exportFormat), op)
		return
	}

	assessment, _, status, err := h.assessJSON(w, r)
	if err != nil {
		h.respondErrorWithOp(w, status, err.Error(), op)
		return
	}

	var buf bytes.Buffer
	if err := output.Write(&buf, exportFormat, assessment); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to render %s: %v", exportFormat, err), op)
		return
	}

	h.logger.Info("report exported",
		zap.String("op", op),
		zap.String("requestId", requestID(r.Context())),
		zap.String("format", exportFormat),
		zap.Int("bytes", buf.Len()),
	)

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=financial-health-report.%s", exportFormat))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("failed to write export", zap.String("op", op), zap.Error(err))
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

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// assessJSON decodes a scoring request and runs the engine. On failure it
// returns the HTTP status to answer with.
func (h *handler) assessJSON(w http.ResponseWriter, r *http.Request) (scoring.Assessment, []string, int, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return scoring.Assessment{}, nil, http.StatusRequestEntityTooLarge,
				fmt.Errorf("request exceeds limit of %d bytes", h.maxBodySize)
		}
		return scoring.Assessment{}, nil, http.StatusBadRequest, fmt.Errorf("failed to decode assessment: %w", err)
	}

	opts := h.options
	if req.Options != nil {
		if req.Options.Scale != "" {
			scale, err := scoring.ParseScalePolicy(req.Options.Scale)
			if err != nil {
				return scoring.Assessment{}, nil, http.StatusBadRequest, err
			}
			opts.Scale = scale
		}
		if req.Options.InvestmentMethod != "" {
			method, err := scoring.ParseInvestmentMethod(req.Options.InvestmentMethod)
			if err != nil {
				return scoring.Assessment{}, nil, http.StatusBadRequest, err
			}
			opts.Investment = method
		}
	}

	req.Profile = config.CompleteProfile(req.Profile, time.Now())
	warnings := validation.ValidateProfile(req.Profile)

	checklist := scoring.NewChecklist()
	if req.Checklist != nil {
		checklist = *req.Checklist
	}

	investments := scoring.NewInvestmentOptions()
	for _, key := range req.Investments {
		option, err := scoring.ParseInvestmentOption(key)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("investments: %v", err))
			continue
		}
		investments[option] = true
	}

	return scoring.Recompute(req.Profile, checklist, investments, opts), warnings, http.StatusOK, nil
}

func (h *handler) respondAssessment(w http.ResponseWriter, r *http.Request, a scoring.Assessment, warnings []string, start time.Time, op string) {
	csv, err := output.CsvString(a)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to render csv: %v", err), op)
		return
	}

	elapsed := time.Since(start)
	response := scoreResponse{
		RequestID:  requestID(r.Context()),
		Assessment: a,
		CSV:        csv,
		Warnings:   warnings,
		Duration:   elapsed.String(),
	}

	h.logger.Info("assessment scored",
		zap.String("op", op),
		zap.String("requestId", response.RequestID),
		zap.Int("overallPercentage", a.Report.OverallPercentage),
		zap.String("grade", a.Report.Grade.Letter),
		zap.Int("warnings", len(warnings)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get("X-Request-ID"))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
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
