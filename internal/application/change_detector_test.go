package application

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paymentrails/monei-sync/internal/domain"
	"github.com/paymentrails/monei-sync/internal/ports"
)

func TestNeedsUpdateFieldDiff(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	existing := domain.Charge{
		Status:         domain.StatusSucceeded,
		StatusCode:     "E000",
		RefundedAmount: decimal.RequireFromString("10.00"),
		UpdatedAt:      &at,
	}
	same := ports.RawCharge{
		"status":         domain.StatusSucceeded,
		"statusCode":     "E000",
		"refundedAmount": float64(1000),
		"updatedAt":      float64(at.Unix()),
	}

	if needsUpdate(ChangeDetectionFieldDiff, existing, same) {
		t.Fatalf("identical payload must not trigger an update")
	}

	cases := map[string]ports.RawCharge{
		"status":     cloneWith(same, "status", domain.StatusPartiallyRefunded),
		"statusCode": cloneWith(same, "statusCode", "E001"),
		"refund":     cloneWith(same, "refundedAmount", float64(2000)),
		"timestamp":  cloneWith(same, "updatedAt", float64(at.Add(time.Minute).Unix())),
	}
	for name, raw := range cases {
		if !needsUpdate(ChangeDetectionFieldDiff, existing, raw) {
			t.Fatalf("%s change must trigger an update", name)
		}
	}
}

func TestNeedsUpdateFieldDiffCatchesMissingTimestamp(t *testing.T) {
	t.Parallel()

	existing := domain.Charge{Status: domain.StatusSucceeded}
	raw := ports.RawCharge{"status": domain.StatusPartiallyRefunded}

	if !needsUpdate(ChangeDetectionFieldDiff, existing, raw) {
		t.Fatalf("status change must be detected even without updatedAt")
	}
}

func TestNeedsUpdateTimestampPolicy(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	existing := domain.Charge{Status: domain.StatusSucceeded, UpdatedAt: &at}

	equal := ports.RawCharge{"status": domain.StatusPartiallyRefunded, "updatedAt": float64(at.Unix())}
	if needsUpdate(ChangeDetectionTimestamp, existing, equal) {
		t.Fatalf("equal timestamp must not trigger an update under the timestamp policy")
	}

	newer := ports.RawCharge{"updatedAt": float64(at.Add(time.Second).Unix())}
	if !needsUpdate(ChangeDetectionTimestamp, existing, newer) {
		t.Fatalf("newer timestamp must trigger an update")
	}

	absent := ports.RawCharge{"status": domain.StatusPartiallyRefunded}
	if needsUpdate(ChangeDetectionTimestamp, existing, absent) {
		t.Fatalf("absent remote timestamp reads as not newer under the timestamp policy")
	}
}

func cloneWith(raw ports.RawCharge, key string, value any) ports.RawCharge {
	out := make(ports.RawCharge, len(raw)+1)
	for k, v := range raw {
		out[k] = v
	}
	out[key] = value
	return out
}
