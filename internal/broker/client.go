package broker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/parcelgate/courier/internal/domain"
	"github.com/parcelgate/courier/internal/telemetry"
)

const defaultTimeout = 30 * time.Second

// Config contains configuration for the HTTP broker client.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration       // Optional: defaults to 30s
	Logger  *slog.Logger        // Optional: defaults to slog.Default()
	Metrics *telemetry.Metrics  // Optional
}

// HTTPClient implements Client against the real broker endpoint.
// A circuit breaker guards the round-trip: transport failures and 5xx
// responses trip it, business-rule rejections (4xx envelopes) do not.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *slog.Logger
	metrics *telemetry.Metrics
	breaker *gobreaker.CircuitBreaker[roundTrip]
}

// roundTrip is one completed HTTP exchange with the broker.
type roundTrip struct {
	status int
	body   []byte
}

// NewHTTPClient creates a broker client.
func NewHTTPClient(cfg Config) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &HTTPClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
		metrics: cfg.Metrics,
	}

	c.breaker = gobreaker.NewCircuitBreaker[roundTrip](gobreaker.Settings{
		Name:    "broker",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("broker circuit breaker state changed",
				"breaker", name, "from", from.String(), "to", to.String())
		},
	})

	return c, nil
}

// GetServices returns the service names the account may ship with.
func (c *HTTPClient) GetServices(ctx context.Context) (*ServicesResponse, error) {
	body, err := c.runCommand(ctx, CommandGetServices, nil)
	if err != nil {
		return nil, err
	}
	var resp ServicesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, domain.WrapError(err, domain.EINTERNAL, "broker.GetServices", "failed to decode response")
	}
	return &resp, nil
}

// GetServiceInfo returns the per-service limits for one service.
func (c *HTTPClient) GetServiceInfo(ctx context.Context, service string) (*ServiceInfoResponse, error) {
	body, err := c.runCommand(ctx, CommandGetServiceInfo, map[string]any{"Service": service})
	if err != nil {
		return nil, err
	}
	var resp ServiceInfoResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, domain.WrapError(err, domain.EINTERNAL, "broker.GetServiceInfo", "failed to decode response")
	}
	return &resp, nil
}

// OrderShipment submits a validated shipment payload.
func (c *HTTPClient) OrderShipment(ctx context.Context, shipment any) (*ShipmentResponse, error) {
	body, err := c.runCommand(ctx, CommandOrderShipment, map[string]any{"Shipment": shipment})
	if err != nil {
		return nil, err
	}
	var resp ShipmentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, domain.WrapError(err, domain.EINTERNAL, "broker.OrderShipment", "failed to decode response")
	}
	return &resp, nil
}

// GetShipmentLabel fetches the label for a created shipment.
func (c *HTTPClient) GetShipmentLabel(ctx context.Context, trackingNumber, labelFormat string) (*LabelResponse, error) {
	body, err := c.runCommand(ctx, CommandGetShipmentLabel, map[string]any{
		"Shipment": map[string]any{
			"TrackingNumber": trackingNumber,
			"LabelFormat":    labelFormat,
		},
	})
	if err != nil {
		return nil, err
	}
	var resp LabelResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, domain.WrapError(err, domain.EINTERNAL, "broker.GetShipmentLabel", "failed to decode response")
	}
	return &resp, nil
}

// runCommand posts one command envelope and returns the raw response body
// after error-envelope screening.
func (c *HTTPClient) runCommand(ctx context.Context, command string, extra map[string]any) ([]byte, error) {
	payload := map[string]any{
		"Apikey":  c.apiKey,
		"Command": command,
	}
	for k, v := range extra {
		payload[k] = v
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, domain.WrapError(err, domain.EINTERNAL, "broker."+command, "failed to encode request")
	}

	requestID := uuid.NewString()
	logger := c.logger.With("command", command, "request_id", requestID)

	start := time.Now()
	result, err := c.breaker.Execute(func() (roundTrip, error) {
		return c.do(ctx, requestID, body)
	})
	c.metrics.RecordBrokerRequest(command, time.Since(start), err)

	if err != nil {
		logger.Error("broker request failed", "error", err)
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, domain.WrapError(err, domain.EUNAVAILABLE, "broker."+command, "broker temporarily unavailable")
		}
		return nil, domain.WrapError(err, domain.EUNAVAILABLE, "broker."+command, "broker request failed")
	}

	logger.Debug("broker request completed", "status", result.status, "duration", time.Since(start))

	// The broker reports business errors through the envelope, sometimes
	// with a 200 status, so screen every response.
	var env errorEnvelope
	if jsonErr := json.Unmarshal(result.body, &env); jsonErr == nil && env.ErrorLevel != nil && env.Error != "" {
		logger.Warn("broker rejected command", "status", result.status, "broker_error", env.Error)
		return nil, domain.Errorf(domain.EINVALID, "broker."+command, "%s", env.Error)
	}
	if result.status != http.StatusOK {
		logger.Warn("broker returned unexpected status", "status", result.status)
		return nil, domain.Errorf(domain.EINVALID, "broker."+command, "Unknown error occurred.")
	}

	return result.body, nil
}

// do performs the HTTP exchange. It returns an error only for transport
// failures and 5xx statuses so the circuit breaker counts real outages, not
// rejected input.
func (c *HTTPClient) do(ctx context.Context, requestID string, body []byte) (roundTrip, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return roundTrip{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)

	resp, err := c.client.Do(req)
	if err != nil {
		return roundTrip{}, fmt.Errorf("broker request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return roundTrip{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return roundTrip{}, fmt.Errorf("broker returned status %d", resp.StatusCode)
	}

	return roundTrip{status: resp.StatusCode, body: respBody}, nil
}
