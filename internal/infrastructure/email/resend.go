package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/resilience"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const defaultResendBaseURL = "https://api.resend.com"

// ResendConfig configures the Resend HTTP API client
type ResendConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// ResendSender posts messages to the Resend emails endpoint
type ResendSender struct {
	apiKey  string
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

// NewResendSender creates a ResendSender
func NewResendSender(cfg ResendConfig, logger *zap.Logger) *ResendSender {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultResendBaseURL
	}
	return &ResendSender{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeoutOr(cfg.Timeout, 10*time.Second)},
		breaker: resilience.NewBreaker("resend", resilience.BreakerSettings{}, logger),
	}
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// Send delivers msg. Any non-2xx status is an error.
func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(resendRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
	})
	if err != nil {
		return fmt.Errorf("resend: encode: %w", err)
	}

	return resilience.Do(s.breaker, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/emails", bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("resend: build request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.client.Do(req)
		if err != nil {
			return fmt.Errorf("resend: send: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return fmt.Errorf("resend: status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	})
}
