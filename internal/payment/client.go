// Package payment is the HTTP client for the hosted payment-session
// provider. It submits cart line items and returns the provider's opaque
// session handle; the customer finishes payment on the provider's page.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"storefront/internal/service"

	"go.uber.org/zap"
)

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *zap.Logger
}

func NewClient(baseURL, apiKey string, log *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     log,
	}
}

type lineItem struct {
	Currency   string `json:"currency"`
	UnitAmount int64  `json:"unit_amount"`
	Name       string `json:"name"`
	Image      string `json:"image,omitempty"`
	Quantity   int64  `json:"quantity"`
}

type sessionRequest struct {
	LineItems       []lineItem `json:"line_items"`
	Mode            string     `json:"mode"`
	SuccessURL      string     `json:"success_url"`
	CancelURL       string     `json:"cancel_url"`
	ClientReference string     `json:"client_reference_id,omitempty"`
}

type sessionResponse struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Error string `json:"error"`
}

func (c *Client) CreateSession(ctx context.Context, req service.SessionRequest) (service.CheckoutSession, error) {
	payload := sessionRequest{
		LineItems:       make([]lineItem, 0, len(req.Items)),
		Mode:            "payment",
		SuccessURL:      req.SuccessURL,
		CancelURL:       req.CancelURL,
		ClientReference: req.CustomerID.String(),
	}
	for _, it := range req.Items {
		payload.LineItems = append(payload.LineItems, lineItem{
			Currency:   it.Currency,
			UnitAmount: it.UnitAmountCents,
			Name:       it.Name,
			Image:      it.ImageURL,
			Quantity:   it.Quantity,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return service.CheckoutSession{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/checkout/sessions", bytes.NewReader(body))
	if err != nil {
		return service.CheckoutSession{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return service.CheckoutSession{}, fmt.Errorf("submit payment session: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return service.CheckoutSession{}, fmt.Errorf("read provider response: %w", err)
	}

	var out sessionResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return service.CheckoutSession{}, fmt.Errorf("decode provider response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		msg := out.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		c.log.Warn("payment provider rejected session",
			zap.Int("status", resp.StatusCode), zap.String("error", msg))
		return service.CheckoutSession{}, fmt.Errorf("provider: %s", msg)
	}
	if out.ID == "" {
		return service.CheckoutSession{}, fmt.Errorf("provider returned no session id")
	}

	return service.CheckoutSession{ID: out.ID, RedirectURL: out.URL}, nil
}
