package payment_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/payment"
	"storefront/internal/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func TestClient_CreateSession_Success(t *testing.T) {
	customerID := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/checkout/sessions" {
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sk_test_123" {
			t.Errorf("Unexpected authorization header %q", r.Header.Get("Authorization"))
		}

		var body struct {
			LineItems []struct {
				Currency   string `json:"currency"`
				UnitAmount int64  `json:"unit_amount"`
				Name       string `json:"name"`
				Quantity   int64  `json:"quantity"`
			} `json:"line_items"`
			Mode            string `json:"mode"`
			SuccessURL      string `json:"success_url"`
			ClientReference string `json:"client_reference_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body.Mode != "payment" {
			t.Errorf("Expected mode payment, got %s", body.Mode)
		}
		if body.ClientReference != customerID.String() {
			t.Errorf("Expected client reference %s, got %s", customerID, body.ClientReference)
		}
		if len(body.LineItems) != 1 || body.LineItems[0].UnitAmount != 850 || body.LineItems[0].Quantity != 1 {
			t.Errorf("Unexpected line items %+v", body.LineItems)
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{
			"id":  "cs_42",
			"url": "https://pay.example/cs_42",
		})
	}))
	defer srv.Close()

	client := payment.NewClient(srv.URL, "sk_test_123", zap.NewNop())

	session, err := client.CreateSession(context.Background(), service.SessionRequest{
		Items: []service.LineItem{{
			Currency:        "gbp",
			UnitAmountCents: 850,
			Name:            "Lamp",
			Quantity:        1,
		}},
		SuccessURL: "https://shop.example/checkout/success",
		CancelURL:  "https://shop.example/cart",
		CustomerID: customerID,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if session.ID != "cs_42" || session.RedirectURL != "https://pay.example/cs_42" {
		t.Errorf("Unexpected session %+v", session)
	}
}

func TestClient_CreateSession_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		json.NewEncoder(w).Encode(map[string]string{"error": "account suspended"})
	}))
	defer srv.Close()

	client := payment.NewClient(srv.URL, "sk_test_123", zap.NewNop())

	_, err := client.CreateSession(context.Background(), service.SessionRequest{
		Items: []service.LineItem{{Currency: "gbp", UnitAmountCents: 100, Name: "X", Quantity: 1}},
	})
	if err == nil {
		t.Fatal("Expected provider error, got nil")
	}
}

func TestClient_CreateSession_MissingSessionID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"url": "https://pay.example/nowhere"})
	}))
	defer srv.Close()

	client := payment.NewClient(srv.URL, "sk_test_123", zap.NewNop())

	_, err := client.CreateSession(context.Background(), service.SessionRequest{
		Items: []service.LineItem{{Currency: "gbp", UnitAmountCents: 100, Name: "X", Quantity: 1}},
	})
	if err == nil {
		t.Fatal("Expected error for a response without a session id, got nil")
	}
}
