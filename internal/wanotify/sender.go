package wanotify

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/lordbyaku/lbpos/internal/config"
	ierr "github.com/lordbyaku/lbpos/internal/errors"
	"github.com/lordbyaku/lbpos/internal/logger"
)

// Sender delivers a rendered message to a phone number. Implementations are
// failure-tolerant collaborators: callers log errors and move on, they never
// let a delivery failure fail the primary operation.
type Sender interface {
	Send(ctx context.Context, phone, message string) error
}

// gatewaySender posts messages to the WhatsApp HTTP gateway.
type gatewaySender struct {
	client     *retryablehttp.Client
	gatewayURL string
	apiKey     string
	ownerEmail string
	log        *logger.Logger
}

// NewSender builds the gateway-backed sender. When notifications are
// disabled in config a no-op sender is returned so callers need no special
// casing.
func NewSender(cfg *config.Configuration, log *logger.Logger) Sender {
	if !cfg.Notification.Enabled || cfg.Notification.GatewayURL == "" {
		log.Infow("wa notifications disabled, using noop sender")
		return &noopSender{}
	}

	client := retryablehttp.NewClient()
	client.RetryMax = cfg.Notification.MaxRetries
	client.HTTPClient.Timeout = time.Duration(cfg.Notification.TimeoutSeconds) * time.Second
	client.Logger = log.GetRetryableHTTPLogger()

	return &gatewaySender{
		client:     client,
		gatewayURL: cfg.Notification.GatewayURL,
		apiKey:     cfg.Notification.APIKey,
		ownerEmail: cfg.Notification.OwnerEmail,
		log:        log,
	}
}

type gatewayRequest struct {
	Phone      string `json:"phone"`
	Message    string `json:"message"`
	OwnerEmail string `json:"owner_email"`
}

func (s *gatewaySender) Send(ctx context.Context, phone, message string) error {
	if phone == "" {
		return ierr.NewError("customer phone number is empty").
			WithHint("Customer has no phone number on file").
			Mark(ierr.ErrValidation)
	}

	body, err := json.Marshal(gatewayRequest{
		Phone:      NormalizePhone(phone),
		Message:    message,
		OwnerEmail: s.ownerEmail,
	})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to encode notification request").
			Mark(ierr.ErrInternal)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, s.gatewayURL, bytes.NewReader(body))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to build notification request").
			Mark(ierr.ErrHTTPClient)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return ierr.WithError(err).
			WithHint("WhatsApp gateway unreachable").
			Mark(ierr.ErrHTTPClient)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return ierr.NewError("wa gateway rejected the message").
			WithHint("WhatsApp gateway returned an error").
			WithReportableDetails(map[string]interface{}{
				"status_code": resp.StatusCode,
				"body":        string(respBody),
			}).
			Mark(ierr.ErrHTTPClient)
	}

	return nil
}

// noopSender drops every message. Used when notifications are disabled.
type noopSender struct{}

func (n *noopSender) Send(ctx context.Context, phone, message string) error {
	return nil
}
