package application

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paymentrails/monei-sync/internal/domain"
	"github.com/paymentrails/monei-sync/internal/ports"
)

func TestChargeFromPayloadFull(t *testing.T) {
	t.Parallel()

	createdAt := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	raw := ports.RawCharge{
		"id":         "ch_1",
		"orderId":    "SO100",
		"status":     domain.StatusSucceeded,
		"statusCode": "E000",
		"amount":     float64(12345),
		"currency":   "EUR",
		"createdAt":  float64(createdAt.Unix()),
		"storeId":    "store_1",
		"livemode":   true,
		"customer":   map[string]any{"name": "Ada Lovelace", "email": "ada@example.com"},
		"billingDetails": map[string]any{
			"name": "Ada Lovelace",
			"address": map[string]any{
				"line1":   "Calle Mayor 1",
				"city":    "Madrid",
				"zip":     "28001",
				"country": "ES",
			},
		},
		"paymentMethod": map[string]any{
			"method": "card",
			"card": map[string]any{
				"brand":        "visa",
				"last4":        "4242",
				"threeDSecure": true,
			},
		},
		"metadata": []any{map[string]any{"key": "source", "value": "pos"}},
	}

	charge, err := chargeFromPayload(raw, map[string]string{"store_1": "Downtown"})
	if err != nil {
		t.Fatalf("mapping failed: %v", err)
	}
	if !charge.Amount.Equal(decimal.RequireFromString("123.45")) {
		t.Fatalf("minor units not converted, got %s", charge.Amount)
	}
	if charge.PaymentDate == nil || !charge.PaymentDate.Equal(createdAt) {
		t.Fatalf("createdAt not mapped, got %v", charge.PaymentDate)
	}
	if charge.StoreName != "Downtown" {
		t.Fatalf("store name not resolved, got %q", charge.StoreName)
	}
	if charge.CustomerName != "Ada Lovelace" || charge.Billing.City != "Madrid" {
		t.Fatalf("contact blocks not flattened: %+v", charge)
	}
	if charge.PaymentMethod.CardBrand != "visa" || charge.PaymentMethod.CardLast4 != "4242" || !charge.PaymentMethod.ThreeDSecure {
		t.Fatalf("card variant not mapped: %+v", charge.PaymentMethod)
	}
	if string(charge.Metadata) != `[{"key":"source","value":"pos"}]` {
		t.Fatalf("metadata not preserved: %s", charge.Metadata)
	}
}

func TestChargeFromPayloadSparse(t *testing.T) {
	t.Parallel()

	charge, err := chargeFromPayload(ports.RawCharge{"id": "ch_1"}, nil)
	if err != nil {
		t.Fatalf("sparse payload must map, got %v", err)
	}
	if !charge.Amount.Equal(decimal.Zero) || !charge.RefundedAmount.Equal(decimal.Zero) {
		t.Fatalf("absent amounts must be zero: %+v", charge)
	}
	if charge.PaymentDate != nil || charge.UpdatedAt != nil {
		t.Fatalf("absent timestamps must stay nil")
	}
	if charge.Status != domain.StatusPending {
		t.Fatalf("absent status must default to pending, got %q", charge.Status)
	}
	if charge.Billing != (domain.ContactDetails{}) {
		t.Fatalf("absent billing block must stay zero: %+v", charge.Billing)
	}
}

func TestChargeFromPayloadRequiresID(t *testing.T) {
	t.Parallel()

	_, err := chargeFromPayload(ports.RawCharge{"status": domain.StatusSucceeded}, nil)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestChargeFromPayloadBizumVariant(t *testing.T) {
	t.Parallel()

	raw := ports.RawCharge{
		"id": "ch_1",
		"paymentMethod": map[string]any{
			"method": "bizum",
			"bizum":  map[string]any{"phoneNumber": "+34600000001"},
			"card":   map[string]any{"brand": "visa"},
		},
	}
	charge, err := chargeFromPayload(raw, nil)
	if err != nil {
		t.Fatalf("mapping failed: %v", err)
	}
	if charge.PaymentMethod.PhoneNumber != "+34600000001" {
		t.Fatalf("bizum phone not mapped: %+v", charge.PaymentMethod)
	}
	if charge.PaymentMethod.CardBrand != "" {
		t.Fatalf("only the selected variant may be populated: %+v", charge.PaymentMethod)
	}
}

func TestPayloadNumericStatusCode(t *testing.T) {
	t.Parallel()

	charge, err := chargeFromPayload(ports.RawCharge{"id": "ch_1", "statusCode": float64(100)}, nil)
	if err != nil {
		t.Fatalf("mapping failed: %v", err)
	}
	if charge.StatusCode != "100" {
		t.Fatalf("numeric status code must stringify, got %q", charge.StatusCode)
	}
}
