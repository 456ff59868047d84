package itinerary

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

	"itinctl/pkg/apperror"

	"go.uber.org/zap"
)

const (
	healthPath    = "/health"
	itineraryPath = "/api/itineraire"
	userAgent     = "itinctl/1.0"
)

// Client talks to the itinerary backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a backend client. A zero timeout leaves requests unbounded
// apart from the caller's context.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// BaseURL returns the backend root the client was built with
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchHealth queries the liveness endpoint and returns the reported status string.
func (c *Client) FetchHealth(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch health: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var health HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return "", fmt.Errorf("failed to decode health JSON: %w", err)
	}

	return health.Status, nil
}

// Plan POSTs one itinerary request. Every failure is returned as an *apperror.AppError:
// Transport for network, timeout and decode problems, Application for backend failures.
func (c *Client) Plan(ctx context.Context, r Request) (*Result, error) {
	payload, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to encode itinerary request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+itineraryPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build itinerary request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, apperror.Wrap(apperror.Transport, apperror.CodeTimeout, apperror.MsgConnectionError, err)
		}
		return nil, apperror.Wrap(apperror.Transport, apperror.CodeNetwork, apperror.MsgConnectionError, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperror.Wrap(apperror.Transport, apperror.CodeNetwork, apperror.MsgConnectionError, err)
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode <= 299

	var result Result
	if err := json.Unmarshal(body, &result); err != nil {
		if !ok {
			// Error pages without a JSON body still carry a usable status
			return nil, apperror.Wrap(apperror.Application, apperror.CodeBadStatus, apperror.MsgRouteFailed,
				fmt.Errorf("unexpected status code: %d", resp.StatusCode))
		}
		return nil, apperror.Wrap(apperror.Transport, apperror.CodeMalformedBody, apperror.MsgConnectionError,
			fmt.Errorf("failed to decode itinerary JSON: %w", err))
	}

	if !ok || !result.Success {
		msg := result.Error
		if msg == "" {
			msg = apperror.MsgRouteFailed
		}
		code := apperror.CodeBackendFailure
		if !ok {
			code = apperror.CodeBadStatus
		}
		return nil, apperror.Wrap(apperror.Application, code, msg, fmt.Errorf("status %d, success=%t", resp.StatusCode, result.Success))
	}

	c.logger.Debug("itinerary received",
		zap.Float64("distance_km", result.DistanceKm),
		zap.Int("coords", len(result.RouteCoords)),
		zap.Int("buses", len(result.Buses)))

	return &result, nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
