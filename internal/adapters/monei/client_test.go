package monei

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/paymentrails/monei-sync/internal/domain"
	"github.com/paymentrails/monei-sync/internal/ports"
)

const testKey = "pk_test_0123456789abcdef0123456789abcdef"

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(ClientConfig{
		Endpoint: server.URL,
		KeyFunc:  func(context.Context) (string, error) { return testKey, nil },
	})
}

func decodeRequest(t *testing.T, r *http.Request) graphqlRequest {
	t.Helper()
	var req graphqlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		t.Fatalf("decode request: %v", err)
	}
	return req
}

func TestListChargesRequestShape(t *testing.T) {
	t.Parallel()

	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)

	var captured graphqlRequest
	var header http.Header
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		captured = decodeRequest(t, r)
		header = r.Header.Clone()
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"charges": map[string]any{
					"total": 1,
					"items": []any{map[string]any{"id": "ch_1"}},
				},
			},
		})
	})

	page, err := client.ListCharges(context.Background(), ports.ChargeListFilter{
		Size:        1000,
		From:        2000,
		CreatedFrom: &from,
		CreatedTo:   &to,
	})
	if err != nil {
		t.Fatalf("list charges failed: %v", err)
	}
	if page.Total != 1 || len(page.Items) != 1 || page.Items[0]["id"] != "ch_1" {
		t.Fatalf("unexpected page: %+v", page)
	}

	if got := header.Get("Authorization"); got != "Bearer "+testKey {
		t.Fatalf("unexpected authorization header: %q", got)
	}
	if got := header.Get("User-Agent"); got != "MONEI/OrderSync/1.0.0" {
		t.Fatalf("unexpected user agent: %q", got)
	}

	if captured.Variables["size"] != float64(1000) || captured.Variables["from"] != float64(2000) {
		t.Fatalf("unexpected pagination variables: %+v", captured.Variables)
	}
	filter, _ := captured.Variables["filter"].(map[string]any)
	createdAt, _ := filter["createdAt"].(map[string]any)
	bounds, _ := createdAt["range"].([]any)
	if len(bounds) != 2 || bounds[0] != float64(from.Unix()) || bounds[1] != float64(to.Unix()) {
		t.Fatalf("unexpected createdAt range: %+v", bounds)
	}
}

func TestListChargesOmitsFilterWithoutDates(t *testing.T) {
	t.Parallel()

	var captured graphqlRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		captured = decodeRequest(t, r)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"charges": map[string]any{"total": 0, "items": []any{}}},
		})
	})

	if _, err := client.ListCharges(context.Background(), ports.ChargeListFilter{Size: 1000}); err != nil {
		t.Fatalf("list charges failed: %v", err)
	}
	if _, present := captured.Variables["filter"]; present {
		t.Fatalf("unbounded query must not send a filter: %+v", captured.Variables)
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	t.Parallel()

	unauthorized := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	if _, err := unauthorized.AccountAPIKey(context.Background()); !errors.Is(err, domain.ErrAuth) {
		t.Fatalf("401 should map to ErrAuth, got %v", err)
	}

	broken := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	if _, err := broken.AccountAPIKey(context.Background()); !errors.Is(err, domain.ErrRemote) {
		t.Fatalf("502 should map to ErrRemote, got %v", err)
	}
}

func TestGraphQLErrorMapping(t *testing.T) {
	t.Parallel()

	authErr := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"errors": []any{map[string]any{
				"message":    "bad credentials",
				"extensions": map[string]any{"code": "UNAUTHENTICATED"},
			}},
		})
	})
	if _, err := authErr.AccountAPIKey(context.Background()); !errors.Is(err, domain.ErrAuth) {
		t.Fatalf("UNAUTHENTICATED should map to ErrAuth, got %v", err)
	}

	remoteErr := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"errors": []any{map[string]any{"message": "field resolution failed"}},
		})
	})
	_, err := remoteErr.AccountAPIKey(context.Background())
	if !errors.Is(err, domain.ErrRemote) {
		t.Fatalf("generic GraphQL error should map to ErrRemote, got %v", err)
	}
}

func TestTransportError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	client := NewClient(ClientConfig{
		Endpoint: server.URL,
		KeyFunc:  func(context.Context) (string, error) { return testKey, nil },
	})
	server.Close()

	if _, err := client.AccountAPIKey(context.Background()); !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("network failure should map to ErrTransport, got %v", err)
	}
}

func TestMissingKeyShortCircuits(t *testing.T) {
	t.Parallel()

	called := false
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	t.Cleanup(server.Close)
	client := NewClient(ClientConfig{
		Endpoint: server.URL,
		KeyFunc:  func(context.Context) (string, error) { return "", nil },
	})

	if _, err := client.AccountAPIKey(context.Background()); !errors.Is(err, domain.ErrAuth) {
		t.Fatalf("missing key should map to ErrAuth, got %v", err)
	}
	if called {
		t.Fatalf("no request may leave the client without a key")
	}
}

func TestGetChargeNotFound(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"charge": nil},
		})
	})

	if _, err := client.GetCharge(context.Background(), "ch_missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("null charge should map to ErrNotFound, got %v", err)
	}
}

func TestAccountAPIKey(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"account": map[string]any{"apiKey": testKey}},
		})
	})

	key, err := client.AccountAPIKey(context.Background())
	if err != nil || key != testKey {
		t.Fatalf("unexpected account key: %q %v", key, err)
	}
}

func TestCapturePaymentAmountHandling(t *testing.T) {
	t.Parallel()

	var captured graphqlRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		captured = decodeRequest(t, r)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"capturePayment": map[string]any{"id": "ch_1", "status": "SUCCEEDED"}},
		})
	})
	ctx := context.Background()

	if _, err := client.CapturePayment(ctx, "ch_1", 0); err != nil {
		t.Fatalf("full capture failed: %v", err)
	}
	input, _ := captured.Variables["input"].(map[string]any)
	if _, present := input["amount"]; present {
		t.Fatalf("full capture must omit the amount: %+v", input)
	}

	if _, err := client.CapturePayment(ctx, "ch_1", 500); err != nil {
		t.Fatalf("partial capture failed: %v", err)
	}
	input, _ = captured.Variables["input"].(map[string]any)
	if input["amount"] != float64(500) || input["paymentId"] != "ch_1" {
		t.Fatalf("unexpected capture input: %+v", input)
	}
}

func TestSendPaymentLinkChannels(t *testing.T) {
	t.Parallel()

	var captured graphqlRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		captured = decodeRequest(t, r)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"sendPaymentLink": map[string]any{"id": "ch_1"}},
		})
	})

	err := client.SendPaymentLink(context.Background(), ports.SendLinkInput{
		PaymentID: "ch_1",
		Channel:   domain.ChannelSMS,
		Language:  "es",
		Phone:     "+34612345678",
	})
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	input, _ := captured.Variables["input"].(map[string]any)
	if input["channel"] != domain.ChannelSMS || input["customerPhone"] != "+34612345678" {
		t.Fatalf("unexpected send input: %+v", input)
	}
	if _, present := input["customerEmail"]; present {
		t.Fatalf("sms channel must not carry an email: %+v", input)
	}
}
