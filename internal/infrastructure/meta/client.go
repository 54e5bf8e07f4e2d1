// Package meta sends server-side events to the Meta Conversion API.
package meta

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hmehmood121/ZuhaSurgical/internal/application/tracking"
	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/config"
	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/resilience"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const (
	defaultGraphURL   = "https://graph.facebook.com"
	defaultAPIVersion = "v18.0"
)

// Client posts events to {graph}/{version}/{pixel}/events
type Client struct {
	pixelID       string
	accessToken   string
	endpoint      string
	testEventCode string
	client        *http.Client
	breaker       *gobreaker.CircuitBreaker
	logger        *zap.Logger
}

// NewClient creates a Conversion API client. Without a pixel id or access
// token every Send returns tracking.ErrNotConfigured.
func NewClient(cfg config.MetaConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	graph := strings.TrimRight(cfg.GraphURL, "/")
	if graph == "" {
		graph = defaultGraphURL
	}
	version := cfg.APIVersion
	if version == "" {
		version = defaultAPIVersion
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Client{
		pixelID:       cfg.PixelID,
		accessToken:   cfg.AccessToken,
		endpoint:      graph + "/" + version + "/" + cfg.PixelID + "/events",
		testEventCode: cfg.TestEventCode,
		client:        &http.Client{Timeout: timeout},
		breaker:       resilience.NewBreaker("meta-capi", resilience.BreakerSettings{}, logger),
		logger:        logger,
	}
}

type eventsRequest struct {
	Data          []tracking.Event `json:"data"`
	AccessToken   string           `json:"access_token"`
	TestEventCode string           `json:"test_event_code,omitempty"`
}

type eventsResponse struct {
	EventsReceived int    `json:"events_received"`
	FBTraceID      string `json:"fbtrace_id"`
}

type graphError struct {
	Error struct {
		Message   string `json:"message"`
		Type      string `json:"type"`
		Code      int    `json:"code"`
		FBTraceID string `json:"fbtrace_id"`
	} `json:"error"`
}

// Send delivers one event
func (c *Client) Send(ctx context.Context, event tracking.Event) error {
	if c.pixelID == "" || c.accessToken == "" {
		return tracking.ErrNotConfigured
	}

	body, err := json.Marshal(eventsRequest{
		Data:          []tracking.Event{event},
		AccessToken:   c.accessToken,
		TestEventCode: c.testEventCode,
	})
	if err != nil {
		return fmt.Errorf("meta: encode event: %w", err)
	}

	return resilience.Do(c.breaker, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("meta: build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("meta: send: %w", err)
		}
		defer resp.Body.Close()

		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			var ge graphError
			if json.Unmarshal(raw, &ge) == nil && ge.Error.Message != "" {
				return fmt.Errorf("meta: status %d: %s (code %d, trace %s)",
					resp.StatusCode, ge.Error.Message, ge.Error.Code, ge.Error.FBTraceID)
			}
			return fmt.Errorf("meta: status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
		}

		var ok eventsResponse
		_ = json.Unmarshal(raw, &ok)
		c.logger.Debug("Conversion API event accepted",
			zap.String("event", event.EventName),
			zap.String("event_id", event.EventID),
			zap.Int("events_received", ok.EventsReceived),
			zap.String("fbtrace_id", ok.FBTraceID))
		return nil
	})
}

var _ tracking.Sender = (*Client)(nil)
