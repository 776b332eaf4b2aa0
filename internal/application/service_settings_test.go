package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/paymentrails/monei-sync/internal/domain"
	"github.com/paymentrails/monei-sync/internal/ports"
)

const (
	testOldKey = "pk_test_aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	testNewKey = "pk_live_bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

func TestRotateAPIKeyFullReset(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	f.settings.values[ports.SettingAPIKey] = testOldKey
	f.charges.byID["ch_old"] = domain.Charge{ExternalID: "ch_old"}
	f.api.accountKey = testNewKey
	f.api.remote = []ports.RawCharge{rawCharge("ch_new", domain.StatusSucceeded, f.now.Add(-time.Hour), 100)}

	result, err := f.service.RotateAPIKey(ctx, RotateAPIKeyRequest{APIKey: testNewKey})
	if err != nil {
		t.Fatalf("rotation failed: %v", err)
	}
	if f.settings.values[ports.SettingAPIKey] != testNewKey {
		t.Fatalf("new key not stored")
	}
	if result.Deleted != 1 {
		t.Fatalf("expected old charges discarded, got %+v", result)
	}
	if result.Warning == "" {
		t.Fatalf("rotation must carry the reset warning")
	}
	if result.Summary.Added != 1 {
		t.Fatalf("expected current-month resync, got %+v", result.Summary)
	}
	if _, ok := f.charges.byID["ch_old"]; ok {
		t.Fatalf("old-account charge must be gone")
	}

	// The resync is bounded to the current month.
	filter := f.api.listCalls[0]
	monthStart := time.Date(f.now.Year(), f.now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if filter.CreatedFrom == nil || !filter.CreatedFrom.Equal(monthStart) {
		t.Fatalf("resync should start at the month boundary, got %v", filter.CreatedFrom)
	}
}

func TestRotateAPIKeyVerificationFailureRestoresOldKey(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.settings.values[ports.SettingAPIKey] = testOldKey
	f.charges.byID["ch_old"] = domain.Charge{ExternalID: "ch_old"}
	f.api.accountKey = testOldKey

	_, err := f.service.RotateAPIKey(context.Background(), RotateAPIKeyRequest{APIKey: testNewKey})
	if !errors.Is(err, domain.ErrAuth) {
		t.Fatalf("expected ErrAuth from verification, got %v", err)
	}
	if f.settings.values[ports.SettingAPIKey] != testOldKey {
		t.Fatalf("old key must be restored after failed verification")
	}
	if _, ok := f.charges.byID["ch_old"]; !ok {
		t.Fatalf("failed rotation must not discard local charges")
	}
}

func TestRotateAPIKeyUnchanged(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.settings.values[ports.SettingAPIKey] = testOldKey
	f.charges.byID["ch_old"] = domain.Charge{ExternalID: "ch_old"}

	result, err := f.service.RotateAPIKey(context.Background(), RotateAPIKeyRequest{APIKey: testOldKey})
	if err != nil {
		t.Fatalf("unchanged key must be a no-op, got %v", err)
	}
	if result.Summary.Message != "api key unchanged" {
		t.Fatalf("unexpected message: %q", result.Summary.Message)
	}
	if _, ok := f.charges.byID["ch_old"]; !ok {
		t.Fatalf("no-op rotation must not touch local charges")
	}
}

func TestRotateAPIKeyInvalidFormat(t *testing.T) {
	t.Parallel()

	f := newFixture()
	for _, key := range []string{"", "sk_live_secret", "pk_test_short"} {
		if _, err := f.service.RotateAPIKey(context.Background(), RotateAPIKeyRequest{APIKey: key}); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("key %q: expected ErrInvalidInput, got %v", key, err)
		}
	}
}

func TestRotateAPIKeySyncFailureDegrades(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.settings.values[ports.SettingAPIKey] = testOldKey
	f.api.accountKey = testNewKey
	f.api.listErr = domain.ErrTransport

	result, err := f.service.RotateAPIKey(context.Background(), RotateAPIKeyRequest{APIKey: testNewKey})
	if err != nil {
		t.Fatalf("sync failure after a verified rotation must degrade, got %v", err)
	}
	if result.Warning != "api key changed and local payments deleted, but the initial sync failed; run a manual sync" {
		t.Fatalf("unexpected warning: %q", result.Warning)
	}
	if f.settings.values[ports.SettingAPIKey] != testNewKey {
		t.Fatalf("verified key must stay in place")
	}
}

func TestTestConnection(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	if err := f.service.TestConnection(ctx); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("no configured key: expected ErrInvalidInput, got %v", err)
	}

	f.settings.values[ports.SettingAPIKey] = testOldKey
	f.api.accountKey = testNewKey
	if err := f.service.TestConnection(ctx); !errors.Is(err, domain.ErrAuth) {
		t.Fatalf("key mismatch: expected ErrAuth, got %v", err)
	}

	f.api.accountKey = testOldKey
	if err := f.service.TestConnection(ctx); err != nil {
		t.Fatalf("matching key: expected success, got %v", err)
	}
}

func TestPaymentMethodsFiltersAndNames(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.api.methods = []domain.PaymentMethodOption{
		{Code: "card", Configured: true, Enabled: true},
		{Code: "mbway", Configured: true, Enabled: true},
		{Code: "cofidisLoan", Configured: true, Enabled: true},
		{Code: "paypal", Configured: true, Enabled: false},
		{Code: "bizum", Configured: false, Enabled: true},
		{Code: "someFuture method", Configured: true, Enabled: true},
	}

	views, err := f.service.PaymentMethods(context.Background())
	if err != nil {
		t.Fatalf("payment methods failed: %v", err)
	}
	want := map[string]string{
		"card":              "Credit Card",
		"mbway":             "MB WAY",
		"cofidisLoan":       "Cofidis Loan",
		"someFuture method": "SomeFuture Method",
	}
	if len(views) != len(want) {
		t.Fatalf("expected %d methods, got %+v", len(want), views)
	}
	for _, view := range views {
		if want[view.Code] != view.DisplayName {
			t.Fatalf("method %s: want %q, got %q", view.Code, want[view.Code], view.DisplayName)
		}
	}
}

func TestSetSetting(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	if err := f.service.SetSetting(ctx, ports.SettingEnableCronSync, "true"); err != nil {
		t.Fatalf("set cron sync failed: %v", err)
	}
	enabled, err := f.service.CronSyncEnabled(ctx)
	if err != nil || !enabled {
		t.Fatalf("cron sync should read back enabled, got %v %v", enabled, err)
	}

	if err := f.service.SetSetting(ctx, ports.SettingAPIKey, testNewKey); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("api key must be rejected here, got %v", err)
	}
	if err := f.service.SetSetting(ctx, "monei.unknown", "x"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("unknown setting must be rejected, got %v", err)
	}
}
