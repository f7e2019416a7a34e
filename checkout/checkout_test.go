package checkout

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"venuehub/globals"
	"venuehub/models"

	"github.com/stripe/stripe-go/v82"
	"github.com/stretchr/testify/assert"
)

const testWebhookSecret = "whsec_test_secret"

type stubMailer struct {
	calls []string
}

func (m *stubMailer) SendBookingConfirmation(toEmail, bookingRef string, amount float64, currency string) error {
	m.calls = append(m.calls, toEmail+"|"+bookingRef)
	return nil
}

func testBridge() (*Bridge, *stubMailer, *[]*models.Transaction, *int) {
	mail := &stubMailer{}
	var txns []*models.Transaction
	sessionCalls := 0

	b := &Bridge{
		webhookSecret: testWebhookSecret,
		successURL:    "http://localhost/success",
		cancelURL:     "http://localhost/cancel",
		currency:      "usd",
		createSession: func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
			sessionCalls++
			return &stripe.CheckoutSession{ID: "cs_test_123", URL: "https://pay.example/cs_test_123"}, nil
		},
		recordTxn: func(ctx context.Context, txn *models.Transaction) error {
			txns = append(txns, txn)
			return nil
		},
		mailer:    mail,
		resolvers: make(map[string]PriceResolver),
	}
	b.RegisterResolver("venue", func(ctx context.Context, itemID string) (string, float64, error) {
		return "Grand Hall", 500, nil
	})
	return b, mail, &txns, &sessionCalls
}

func authedRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	ctx := context.WithValue(req.Context(), globals.UserIDKey, "usr_1")
	return req.WithContext(ctx)
}

func TestCreateSessionEmptyCart(t *testing.T) {
	b, _, txns, sessionCalls := testBridge()

	req := authedRequest(http.MethodPost, "/api/v1/payments/session", `{"items":[]}`)
	rr := httptest.NewRecorder()
	b.CreateSession(rr, req, nil)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Zero(t, *sessionCalls)
	assert.Empty(t, *txns)
}

func TestCreateSessionRecordsInitiatedTxn(t *testing.T) {
	b, _, txns, sessionCalls := testBridge()

	body := `{"items":[{"id":"v1","type":"venue","quantity":3}],"bookingIds":["bk_1"]}`
	req := authedRequest(http.MethodPost, "/api/v1/payments/session", body)
	rr := httptest.NewRecorder()
	b.CreateSession(rr, req, nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, *sessionCalls)
	assert.Contains(t, rr.Body.String(), "cs_test_123")

	if assert.Len(t, *txns, 1) {
		txn := (*txns)[0]
		assert.Equal(t, "initiated", txn.Status)
		assert.Equal(t, 1500.0, txn.Amount)
		assert.Equal(t, "cs_test_123", txn.ProviderSessID)
		assert.Equal(t, "usr_1", txn.UserID)
	}
}

func TestCreateSessionRoundsFractionalPrices(t *testing.T) {
	b, _, _, _ := testBridge()

	var captured *stripe.CheckoutSessionParams
	b.createSession = func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
		captured = params
		return &stripe.CheckoutSession{ID: "cs_test_123", URL: "https://pay.example/cs_test_123"}, nil
	}
	b.RegisterResolver("service", func(ctx context.Context, itemID string) (string, float64, error) {
		return "Evening Catering", 19.99, nil
	})

	body := `{"items":[{"id":"s1","type":"service","quantity":1}]}`
	req := authedRequest(http.MethodPost, "/api/v1/payments/session", body)
	rr := httptest.NewRecorder()
	b.CreateSession(rr, req, nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	if assert.NotNil(t, captured) && assert.Len(t, captured.LineItems, 1) {
		assert.Equal(t, int64(1999), *captured.LineItems[0].PriceData.UnitAmount)
	}
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(1999), minorUnits(19.99))
	assert.Equal(t, int64(50000), minorUnits(500))
	assert.Equal(t, int64(10), minorUnits(0.1))
	assert.Equal(t, int64(12999), minorUnits(129.99))
}

func TestCreateSessionUnknownItemType(t *testing.T) {
	b, _, _, sessionCalls := testBridge()

	body := `{"items":[{"id":"x1","type":"yacht","quantity":1}]}`
	req := authedRequest(http.MethodPost, "/api/v1/payments/session", body)
	rr := httptest.NewRecorder()
	b.CreateSession(rr, req, nil)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Zero(t, *sessionCalls)
}

func signPayload(payload string, at time.Time) string {
	ts := fmt.Sprintf("%d", at.Unix())
	mac := hmac.New(sha256.New, []byte(testWebhookSecret))
	mac.Write([]byte(ts + "." + payload))
	return fmt.Sprintf("t=%s,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func completedSessionPayload() string {
	return `{
		"id": "evt_1",
		"object": "event",
		"api_version": "2025-01-01",
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": "cs_live_9",
				"object": "checkout.session",
				"amount_total": 150000,
				"currency": "usd",
				"metadata": {"userId": "usr_1", "bookingIds": "bk_1,bk_2", "email": "guest@example.com"}
			}
		}
	}`
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	b, mail, txns, _ := testBridge()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/webhook", strings.NewReader(completedSessionPayload()))
	req.Header.Set("Stripe-Signature", "t=123,v1=deadbeef")
	rr := httptest.NewRecorder()
	b.HandleWebhook(rr, req, nil)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, mail.calls)
	assert.Empty(t, *txns)
}

func TestWebhookSessionCompleted(t *testing.T) {
	b, mail, txns, _ := testBridge()

	payload := completedSessionPayload()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/webhook", strings.NewReader(payload))
	req.Header.Set("Stripe-Signature", signPayload(payload, time.Now()))
	rr := httptest.NewRecorder()
	b.HandleWebhook(rr, req, nil)

	assert.Equal(t, http.StatusOK, rr.Code)

	if assert.Len(t, *txns, 1) {
		txn := (*txns)[0]
		assert.Equal(t, "success", txn.Status)
		assert.Equal(t, 1500.0, txn.Amount)
		assert.Equal(t, "cs_live_9", txn.ProviderSessID)
	}
	if assert.Len(t, mail.calls, 1) {
		assert.True(t, strings.HasPrefix(mail.calls[0], "guest@example.com|"))
	}
}

func TestSplitIDs(t *testing.T) {
	assert.Nil(t, splitIDs(""))
	assert.Equal(t, []string{"a", "b"}, splitIDs("a, b"))
	assert.Equal(t, []string{"a"}, splitIDs("a,"))
}
