package mail

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/subbuk987/Fundoo/internal/config"
	"github.com/subbuk987/Fundoo/internal/logger"
)

// ErrGatewayRejected is returned when the mail gateway answers with a
// non-2xx status. Delivery is fire-and-forget, so callers only log it.
var ErrGatewayRejected = errors.New("mail gateway rejected message")

// Sender delivers a single message. Implementations must be safe for
// concurrent use: the worker pool calls Send from multiple goroutines.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// message is the JSON payload the gateway accepts.
type message struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// gatewaySender posts messages to an HTTP mail gateway.
type gatewaySender struct {
	client *resty.Client
	from   string
	logger *logger.Logger
}

// NewGatewaySender constructs a [Sender] from the mail configuration.
func NewGatewaySender(cfg config.Mail, log *logger.Logger) Sender {
	log.Debug().Str("gateway", cfg.GatewayURL).Msg("creating mail gateway sender")

	cli := resty.New().
		SetBaseURL(cfg.GatewayURL).
		SetTimeout(15 * time.Second).
		SetHeader("Authorization", "Bearer "+cfg.APIKey)

	return &gatewaySender{client: cli, from: cfg.From, logger: log}
}

// Send posts one message to the gateway.
func (g *gatewaySender) Send(ctx context.Context, to, subject, htmlBody string) error {
	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(message{From: g.from, To: to, Subject: subject, HTML: htmlBody}).
		Post("")
	if err != nil {
		return fmt.Errorf("mail gateway request: %w", err)
	}

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: status %d", ErrGatewayRejected, resp.StatusCode())
	}

	return nil
}
