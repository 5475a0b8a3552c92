package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"rentloop-backend/internal/domain"
	"rentloop-backend/internal/logger"
)

const (
	stripeAPIBase = "https://api.stripe.com"
	// Outbound provider calls are bounded; past this the operation fails with
	// a retryable upstream timeout and the caller decides whether to retry.
	requestTimeout = 15 * time.Second
	// Signed webhook timestamps older than this are rejected to limit replay.
	signatureTolerance = 5 * time.Minute
)

// StripeClient implements Provider against the Stripe HTTP API.
type StripeClient struct {
	secretKey     string
	webhookSecret string
	baseURL       string
	httpClient    *http.Client
	now           func() time.Time
}

func NewStripeClient(secretKey, webhookSecret string) *StripeClient {
	return &StripeClient{
		secretKey:     secretKey,
		webhookSecret: webhookSecret,
		baseURL:       stripeAPIBase,
		httpClient:    &http.Client{Timeout: requestTimeout},
		now:           time.Now,
	}
}

func (c *StripeClient) CreateCheckoutSession(ctx context.Context, params CheckoutParams) (string, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("line_items[0][price_data][currency]", params.Currency)
	form.Set("line_items[0][price_data][product_data][name]", params.Title)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(int64(math.Round(params.Amount*100)), 10))
	form.Set("line_items[0][quantity]", "1")
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)
	form.Set("metadata[booking_id]", params.BookingID)

	var session struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	if err := c.post(ctx, "/v1/checkout/sessions", form, &session); err != nil {
		return "", err
	}
	return session.URL, nil
}

func (c *StripeClient) Refund(ctx context.Context, paymentRef string) error {
	form := url.Values{}
	form.Set("payment_intent", paymentRef)
	return c.post(ctx, "/v1/refunds", form, &struct{}{})
}

// VerifySignature checks a Stripe-Signature header ("t=<unix>,v1=<hmac>")
// against HMAC-SHA256(secret, "<t>.<payload>") with constant-time comparison.
func (c *StripeClient) VerifySignature(payload []byte, signatureHeader string) (*Event, error) {
	if signatureHeader == "" {
		return nil, ErrInvalidSignature
	}

	var timestamp string
	var signatures []string
	for _, part := range strings.Split(signatureHeader, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			timestamp = kv[1]
		case "v1":
			signatures = append(signatures, kv[1])
		}
	}
	if timestamp == "" || len(signatures) == 0 {
		return nil, ErrInvalidSignature
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return nil, ErrInvalidSignature
	}
	age := c.now().Sub(time.Unix(ts, 0))
	if age > signatureTolerance || age < -signatureTolerance {
		return nil, ErrInvalidSignature
	}

	mac := hmac.New(sha256.New, []byte(c.webhookSecret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	verified := false
	for _, sig := range signatures {
		if hmac.Equal([]byte(expected), []byte(sig)) {
			verified = true
			break
		}
	}
	if !verified {
		return nil, ErrInvalidSignature
	}

	return parseEvent(payload)
}

func parseEvent(payload []byte) (*Event, error) {
	var raw struct {
		ID   string `json:"id"`
		Type string `json:"type"`
		Data struct {
			Object struct {
				ID            string            `json:"id"`
				PaymentIntent string            `json:"payment_intent"`
				Metadata      map[string]string `json:"metadata"`
			} `json:"object"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("payment: malformed event payload: %w", err)
	}

	paymentRef := raw.Data.Object.PaymentIntent
	if paymentRef == "" {
		paymentRef = raw.Data.Object.ID
	}
	return &Event{
		ID:         raw.ID,
		Type:       raw.Type,
		PaymentRef: paymentRef,
		Metadata:   raw.Data.Object.Metadata,
	}, nil
}

func (c *StripeClient) post(ctx context.Context, path string, form url.Values, out any) error {
	logger.ExternalServiceCall("stripe", path)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var nerr net.Error
		if errors.As(err, &nerr) && nerr.Timeout() {
			logger.ExternalServiceResult("stripe", path, domain.ErrUpstreamTimeout)
			return domain.ErrUpstreamTimeout
		}
		logger.ExternalServiceResult("stripe", path, err)
		return domain.ErrUpstreamFailure
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		logger.Error("stripe request failed", "path", path, "status", resp.StatusCode, "body", string(body))
		return domain.ErrUpstreamFailure
	}

	logger.ExternalServiceResult("stripe", path, nil)
	return json.Unmarshal(body, out)
}
