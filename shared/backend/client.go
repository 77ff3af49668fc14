package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"land-regen/internal/models"
	"land-regen/shared/config"
	"land-regen/shared/monitoring"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
)

const (
	ndviPath        = "/gis/nasa-earthdata"
	degradationPath = "/ai/soil-degradation"
)

// Client talks to the Land ReGen backend: the NASA Earthdata NDVI
// endpoint and the AI soil degradation endpoint.
type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
	breaker   *gobreaker.CircuitBreaker
	monitor   *monitoring.Monitor
}

func NewClient(cfg *config.BackendConfig, monitor *monitoring.Monitor) *Client {
	c := &Client{
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		client: &http.Client{
			// Zero means no timeout: a request that never resolves stays pending
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		monitor: monitor,
	}

	if cfg.BreakerFailures > 0 {
		fails := uint32(cfg.BreakerFailures)
		c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "land-regen-backend",
			Timeout: time.Duration(cfg.BreakerOpenSeconds) * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= fails
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Printf("Circuit breaker %s: %s -> %s", name, from, to)
			},
		})
	}

	return c
}

// BaseURL returns the resolved backend address
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchNDVI requests the vegetation index series for the given coordinates.
// lat and lon are passed through as typed, without any numeric parsing.
func (c *Client) FetchNDVI(ctx context.Context, lat, lon string) (*models.NDVIResult, error) {
	endpoint := fmt.Sprintf("%s%s?lat=%s&lon=%s", c.baseURL, ndviPath, url.QueryEscape(lat), url.QueryEscape(lon))

	var result *models.NDVIResult
	err := c.call(monitoring.OpFetchNDVI, func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	}, func(body []byte) error {
		parsed, err := models.ParseNDVIResult(body)
		if err != nil {
			return fmt.Errorf("failed to decode NDVI response: %w", err)
		}
		result = parsed
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.HasSeries && !result.Aligned() {
		log.Printf("Warning: NDVI series has %d values but %d dates", len(result.NDVI), len(result.Dates))
	}
	return result, nil
}

// DetectDegradation submits coordinates and NDVI values for a risk assessment
func (c *Client) DetectDegradation(ctx context.Context, req models.DegradationRequest) (*models.DegradationResult, error) {
	if req.NDVI == nil {
		req.NDVI = []float64{}
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal degradation request: %w", err)
	}

	var result models.DegradationResult
	err = c.call(monitoring.OpDetect, func() (*http.Request, error) {
		r, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+degradationPath, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		r.Header.Set("Content-Type", "application/json")
		return r, nil
	}, func(body []byte) error {
		if err := json.Unmarshal(body, &result); err != nil {
			return fmt.Errorf("failed to decode degradation response: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// Ping checks that the backend answers on its root path
func (c *Client) Ping(ctx context.Context) error {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("failed to create probe request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err == nil {
		resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			err = fmt.Errorf("backend returned status %d", resp.StatusCode)
		}
	} else {
		err = fmt.Errorf("backend unreachable: %w", err)
	}

	if c.monitor != nil {
		c.monitor.RecordProbe(err, time.Since(start))
	}
	return err
}

// call runs one request through the breaker (when configured) and records
// the outcome. Transport errors, non-2xx statuses and decode failures all
// count as failures.
func (c *Client) call(op string, build func() (*http.Request, error), decode func([]byte) error) error {
	start := time.Now()
	requestID := uuid.NewString()

	run := func() (interface{}, error) {
		req, err := build()
		if err != nil {
			return nil, fmt.Errorf("failed to create %s request: %w", op, err)
		}
		req.Header.Set("X-Request-ID", requestID)
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		log.Printf("[%s] %s %s", requestID, req.Method, req.URL.Redacted())

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%s request failed: %w", op, err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s response: %w", op, err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("%s returned status %d: %s", op, resp.StatusCode, snippet(body))
		}

		return nil, decode(body)
	}

	var err error
	if c.breaker != nil {
		_, err = c.breaker.Execute(run)
	} else {
		_, err = run()
	}

	duration := time.Since(start)
	if c.monitor != nil {
		if err != nil {
			c.monitor.RecordFailure(op, fmt.Errorf("[%s] %w", requestID, err), duration)
		} else {
			c.monitor.RecordSuccess(op, duration)
		}
	}
	return err
}

func snippet(body []byte) string {
	const limit = 256
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}
