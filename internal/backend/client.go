// Package backend talks to the Financial Kundli report service that stores
// submitted assessments and renders the hosted report.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/finhealth/pkg/constants"
	"github.com/iwvelando/finhealth/pkg/scoring"
	"go.uber.org/zap"
)

const apiPrefix = "/api/financial-kundli"

var (
	// ErrUnauthorized is returned when the backend rejects the bearer token.
	ErrUnauthorized = errors.New("backend: unauthorized")
	// ErrNotFound is returned for an unknown report ID.
	ErrNotFound = errors.New("backend: report not found")
	// ErrEmptyReport is returned when the backend answers without report data.
	ErrEmptyReport = errors.New("backend: empty report")
)

// StatusError carries any other non-2xx response.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend: %s %s returned %d: %s", e.Method, e.Path, e.Code, e.Body)
}

// Client calls the report backend on behalf of a signed-in user.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient builds a client for baseURL. The token is sent as a bearer
// credential; a zero timeout uses the default.
func NewClient(logger *zap.Logger, baseURL, token string, timeout time.Duration) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errors.New("backend base URL is empty")
	}
	if _, err := url.ParseRequestURI(trimmed); err != nil {
		return nil, fmt.Errorf("invalid backend base URL %q: %w", baseURL, err)
	}
	if timeout <= 0 {
		timeout = time.Duration(constants.DefaultBackendTimeoutSeconds) * time.Second
	}
	return &Client{
		baseURL: trimmed,
		token:   strings.TrimSpace(token),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}, nil
}

// Receipt acknowledges a submitted assessment.
type Receipt struct {
	ReportID       string `json:"reportId"`
	IdempotencyKey string `json:"-"`
}

// ReportSummary is one row of the submission history.
type ReportSummary struct {
	ID                 string  `json:"id"`
	ClientName         string  `json:"client_name"`
	PhoneNumber        string  `json:"phone_number"`
	City               string  `json:"city"`
	OverallHealthScore float64 `json:"overall_health_score"`
	PrimaryRiskKey     string  `json:"primary_risk_key"`
	CreatedAt          string  `json:"created_at"`
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Submit uploads a scored assessment and returns the new report ID.
func (c *Client) Submit(ctx context.Context, a scoring.Assessment) (Receipt, error) {
	const op = "backend.Submit"

	body, err := json.Marshal(a)
	if err != nil {
		return Receipt{}, fmt.Errorf("failed to encode assessment: %w", err)
	}

	key := uuid.NewString()
	resp, err := c.do(ctx, http.MethodPost, apiPrefix+"/submit", bytes.NewReader(body), func(req *http.Request) {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Idempotency-Key", key)
	})
	if err != nil {
		return Receipt{}, err
	}

	var receipt Receipt
	if err := json.Unmarshal(resp, &receipt); err != nil {
		return Receipt{}, fmt.Errorf("failed to decode submit response: %w", err)
	}
	if receipt.ReportID == "" {
		return Receipt{}, ErrEmptyReport
	}
	receipt.IdempotencyKey = key

	c.logger.Info("assessment submitted",
		zap.String("op", op),
		zap.String("reportId", receipt.ReportID),
		zap.String("idempotencyKey", key),
	)
	return receipt, nil
}

// FetchReport returns the stored report document. Its layout is owned by the
// backend, so it is returned undecoded.
func (c *Client) FetchReport(ctx context.Context, id string) (json.RawMessage, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: empty report ID", ErrNotFound)
	}
	data, err := c.getEnvelope(ctx, apiPrefix+"/report/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	return data, nil
}

// DownloadReport fetches the rendered PDF for a report.
func (c *Client) DownloadReport(ctx context.Context, id string) ([]byte, error) {
	const op = "backend.DownloadReport"
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: empty report ID", ErrNotFound)
	}

	data, err := c.do(ctx, http.MethodGet, apiPrefix+"/report/"+url.PathEscape(id)+"/download", nil, nil)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyReport
	}

	c.logger.Debug("report downloaded",
		zap.String("op", op),
		zap.String("reportId", id),
		zap.Int("bytes", len(data)),
	)
	return data, nil
}

// History lists the reports submitted by the current user.
func (c *Client) History(ctx context.Context) ([]ReportSummary, error) {
	data, err := c.getEnvelope(ctx, apiPrefix+"/history")
	if err != nil {
		return nil, err
	}
	var rows []ReportSummary
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}
	return rows, nil
}

func (c *Client) getEnvelope(ctx context.Context, path string) (json.RawMessage, error) {
	body, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	if !env.Success || len(env.Data) == 0 || string(env.Data) == "null" {
		if env.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrEmptyReport, env.Message)
		}
		return nil, ErrEmptyReport
	}
	return env.Data, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, prepare func(*http.Request)) ([]byte, error) {
	const op = "backend.Client.do"

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if prepare != nil {
		prepare(req)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("failed to close response body", zap.String("op", op), zap.Error(closeErr))
		}
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", path, err)
	}

	c.logger.Debug("backend call",
		zap.String("op", op),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, &StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}
	return data, nil
}
