package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nebenscan/internal/config"
	"nebenscan/internal/domain"
)

const testWebhookSecret = "whsec_test_secret"

func testClient() *stripeClient {
	return NewClient(&config.PaymentConfig{
		SecretKey:     "sk_test_123",
		WebhookSecret: testWebhookSecret,
		PriceCents:    1499,
		Currency:      "eur",
		ProductName:   "NebenScan Full Report",
	}).(*stripeClient)
}

func signPayload(t *testing.T, payload []byte, secret string, ts time.Time) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(secret))
	_, err := fmt.Fprintf(mac, "%d.%s", ts.Unix(), payload)
	require.NoError(t, err)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func TestVerifyWebhook_CheckoutCompleted(t *testing.T) {
	payload := []byte(`{
		"id": "evt_1",
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": "cs_test_abc",
				"metadata": {"bill_id": "8a7b2f1e-0000-0000-0000-000000000001"}
			}
		}
	}`)
	header := signPayload(t, payload, testWebhookSecret, time.Now())

	event, err := testClient().VerifyWebhook(payload, header)
	require.NoError(t, err)

	assert.Equal(t, "checkout.session.completed", event.Type)
	assert.Equal(t, "cs_test_abc", event.SessionID)
	assert.Equal(t, "8a7b2f1e-0000-0000-0000-000000000001", event.BillID)
}

func TestVerifyWebhook_OtherEventType(t *testing.T) {
	payload := []byte(`{"id": "evt_2", "type": "payment_intent.created", "data": {"object": {}}}`)
	header := signPayload(t, payload, testWebhookSecret, time.Now())

	event, err := testClient().VerifyWebhook(payload, header)
	require.NoError(t, err)

	assert.Equal(t, "payment_intent.created", event.Type)
	assert.Empty(t, event.BillID)
	assert.Empty(t, event.SessionID)
}

func TestVerifyWebhook_BadSignature(t *testing.T) {
	payload := []byte(`{"id": "evt_3", "type": "checkout.session.completed", "data": {"object": {}}}`)
	header := signPayload(t, payload, "whsec_wrong_secret", time.Now())

	_, err := testClient().VerifyWebhook(payload, header)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidSignature))
}

func TestVerifyWebhook_StaleTimestamp(t *testing.T) {
	payload := []byte(`{"id": "evt_4", "type": "checkout.session.completed", "data": {"object": {}}}`)
	header := signPayload(t, payload, testWebhookSecret, time.Now().Add(-time.Hour))

	_, err := testClient().VerifyWebhook(payload, header)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidSignature))
}
