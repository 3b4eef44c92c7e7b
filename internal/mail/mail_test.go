package mail

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/subbuk987/Fundoo/internal/config"
	"github.com/subbuk987/Fundoo/internal/logger"
)

// TestSend_PostsMessageToGateway verifies the payload, the Authorization
// header and the From stamp on a successful delivery.
func TestSend_PostsMessageToGateway(t *testing.T) {
	var (
		gotAuth string
		gotBody []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	sender := NewGatewaySender(config.Mail{
		GatewayURL: srv.URL,
		APIKey:     "gateway-key",
		From:       "noreply@fundoo.test",
	}, logger.Nop())

	err := sender.Send(context.Background(), "alice@example.com", "hello", "<p>hi</p>")
	require.NoError(t, err)

	assert.Equal(t, "Bearer gateway-key", gotAuth)

	var msg message
	require.NoError(t, json.Unmarshal(gotBody, &msg))
	assert.Equal(t, "noreply@fundoo.test", msg.From)
	assert.Equal(t, "alice@example.com", msg.To)
	assert.Equal(t, "hello", msg.Subject)
	assert.Equal(t, "<p>hi</p>", msg.HTML)
}

// TestSend_GatewayRejection verifies that a non-2xx answer maps to
// ErrGatewayRejected.
func TestSend_GatewayRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	sender := NewGatewaySender(config.Mail{GatewayURL: srv.URL}, logger.Nop())

	err := sender.Send(context.Background(), "alice@example.com", "hello", "<p>hi</p>")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGatewayRejected)
}

// TestSend_GatewayUnreachable verifies that a transport error surfaces as a
// wrapped request error, not a rejection.
func TestSend_GatewayUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	sender := NewGatewaySender(config.Mail{GatewayURL: srv.URL}, logger.Nop())

	err := sender.Send(context.Background(), "alice@example.com", "hello", "<p>hi</p>")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrGatewayRejected)
	assert.Contains(t, err.Error(), "mail gateway request")
}

// TestVerificationBody_LinkShape verifies the verify link embeds the domain
// and the token at the public endpoint path.
func TestVerificationBody_LinkShape(t *testing.T) {
	body := VerificationBody("alice", "fundoo.example.com", "tok123")

	assert.Contains(t, body, "https://fundoo.example.com/api/v1/auth/verify/tok123")
	assert.Contains(t, body, "alice")
	assert.True(t, strings.HasPrefix(body, "<p>"))
}

// TestReminderBody_MentionsNote verifies the reminder names the note and
// its expiry.
func TestReminderBody_MentionsNote(t *testing.T) {
	body := ReminderBody("bob", "groceries", "Mon, 01 Sep 2026 10:00:00 UTC")

	assert.Contains(t, body, "bob")
	assert.Contains(t, body, "groceries")
	assert.Contains(t, body, "Mon, 01 Sep 2026 10:00:00 UTC")
}
