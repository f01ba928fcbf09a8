package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cuongnguyenngoc/web3mail/internal/config"
	"github.com/shopspring/decimal"
)

// CheckoutClient talks to the hosted-checkout payment provider. Sessions are
// created server-side; the user completes payment on the provider's page and
// completion comes back either through a webhook or a status poll.
type CheckoutClient interface {
	CreateSession(ctx context.Context, req *CreateSessionRequest) (*CheckoutSession, error)
	GetSessionStatus(ctx context.Context, sessionID string) (*SessionStatus, error)
}

type CreateSessionRequest struct {
	Amount     decimal.Decimal
	Currency   string
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

type CheckoutSession struct {
	SessionID   string
	CheckoutURL string
}

type SessionStatus struct {
	SessionID       string
	PaymentStatus   string // paid, unpaid, failed
	PaymentIntentID string
	Amount          decimal.Decimal
	Currency        string
}

type checkoutClientImpl struct {
	httpClient *http.Client
	baseApiURL string
	apiKey     string
}

func NewCheckoutClient(checkoutCfg *config.Checkout) CheckoutClient {
	return &checkoutClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL: checkoutCfg.BaseAPIURL,
		apiKey:     checkoutCfg.APIKey,
	}
}

type checkoutSessionResult struct {
	ID              string `json:"id"`
	URL             string `json:"url"`
	PaymentStatus   string `json:"payment_status"`
	PaymentIntentID string `json:"payment_intent"`
	AmountTotal     string `json:"amount_total"`
	Currency        string `json:"currency"`
}

func (c *checkoutClientImpl) CreateSession(ctx context.Context, req *CreateSessionRequest) (*CheckoutSession, error) {
	payload := map[string]interface{}{
		"amount":      req.Amount.StringFixed(2),
		"currency":    req.Currency,
		"success_url": req.SuccessURL,
		"cancel_url":  req.CancelURL,
		"metadata":    req.Metadata,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal req payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+"/v1/checkout/sessions", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("checkout create session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("checkout error %d: %s", resp.StatusCode, string(b))
	}

	var result checkoutSessionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode checkout response: %w", err)
	}

	return &CheckoutSession{
		SessionID:   result.ID,
		CheckoutURL: result.URL,
	}, nil
}

func (c *checkoutClientImpl) GetSessionStatus(ctx context.Context, sessionID string) (*SessionStatus, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseApiURL+"/v1/checkout/sessions/"+sessionID, nil)
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("checkout get session status: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("checkout error %d: %s", resp.StatusCode, string(b))
	}

	var result checkoutSessionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode checkout response: %w", err)
	}

	amount, err := decimal.NewFromString(result.AmountTotal)
	if err != nil {
		amount = decimal.Zero
	}

	return &SessionStatus{
		SessionID:       result.ID,
		PaymentStatus:   result.PaymentStatus,
		PaymentIntentID: result.PaymentIntentID,
		Amount:          amount,
		Currency:        result.Currency,
	}, nil
}
