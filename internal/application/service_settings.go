package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/paymentrails/monei-sync/internal/domain"
	"github.com/paymentrails/monei-sync/internal/ports"
)

// methodDisplayNames maps payment method codes to their display names.
// Unknown codes fall back to a title-cased rendering of the code.
var methodDisplayNames = map[string]string{
	"card":        "Credit Card",
	"alipay":      "Alipay",
	"bancontact":  "Bancontact",
	"bizum":       "Bizum",
	"cofidis":     "Cofidis",
	"cofidisLoan": "Cofidis Loan",
	"mbway":       "MB WAY",
	"multibanco":  "Multibanco",
	"paypal":      "PayPal",
	"sepa":        "SEPA",
}

// RotateAPIKey replaces the remote credential. The new key is validated,
// stored, and verified against the live account; on verification failure
// the previous key is restored. A verified change discards every local
// charge and starts a current-month resync against the new account, since
// records from the old account are meaningless under the new one.
func (s *Service) RotateAPIKey(ctx context.Context, req RotateAPIKeyRequest) (RotateAPIKeyResult, error) {
	newKey := strings.TrimSpace(req.APIKey)
	if newKey == "" {
		return RotateAPIKeyResult{}, fmt.Errorf("%w: api_key is required", domain.ErrInvalidInput)
	}
	if err := domain.ValidateAPIKey(newKey); err != nil {
		return RotateAPIKeyResult{}, err
	}

	oldKey, err := s.settings.Get(ctx, ports.SettingAPIKey)
	if err != nil && !isNotFound(err) {
		return RotateAPIKeyResult{}, err
	}
	if newKey == oldKey {
		return RotateAPIKeyResult{Summary: SyncSummary{Message: "api key unchanged"}}, nil
	}

	now := s.nowFn()
	if err := s.settings.Set(ctx, ports.SettingAPIKey, newKey, now); err != nil {
		return RotateAPIKeyResult{}, err
	}

	if err := s.TestConnection(ctx); err != nil {
		if oldKey != "" {
			if restoreErr := s.settings.Set(ctx, ports.SettingAPIKey, oldKey, now); restoreErr != nil {
				s.logger.ErrorContext(ctx, "failed to restore previous api key",
					"operation", "rotate_api_key",
					"outcome", "failure",
					"error", restoreErr.Error(),
				)
			}
		}
		return RotateAPIKeyResult{}, fmt.Errorf("api key verification failed: %w", err)
	}

	deleted, err := s.charges.DeleteAll(ctx)
	if err != nil {
		return RotateAPIKeyResult{}, fmt.Errorf("delete charges after key change: %w", err)
	}

	s.logger.WarnContext(ctx, "api key changed; local charges discarded",
		"operation", "rotate_api_key",
		"deleted", deleted,
	)

	result := RotateAPIKeyResult{
		Deleted: deleted,
		Warning: "api configuration changed: all existing payments were deleted and re-synced with the new account",
	}

	summary, err := s.SyncCharges(ctx, SyncRequest{Preset: domain.WindowMonth})
	if err != nil {
		s.logger.ErrorContext(ctx, "initial sync after key change failed",
			"operation", "rotate_api_key",
			"outcome", "degraded",
			"error", err.Error(),
		)
		result.Warning = "api key changed and local payments deleted, but the initial sync failed; run a manual sync"
		return result, nil
	}
	result.Summary = summary
	return result, nil
}

// TestConnection verifies the stored credential against the live account.
// The account query echoes the key it authenticated with; a mismatch means
// the request was accepted under a different credential than the one
// configured here.
func (s *Service) TestConnection(ctx context.Context) error {
	stored, err := s.settings.Get(ctx, ports.SettingAPIKey)
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("%w: no api key configured", domain.ErrInvalidInput)
		}
		return err
	}

	remoteKey, err := s.api.AccountAPIKey(ctx)
	if err != nil {
		return err
	}
	if remoteKey != stored {
		return fmt.Errorf("%w: api key mismatch", domain.ErrAuth)
	}
	return nil
}

// PaymentMethods lists the account's methods that are both configured and
// enabled, with display names resolved.
func (s *Service) PaymentMethods(ctx context.Context) ([]PaymentMethodView, error) {
	options, err := s.api.ListPaymentMethods(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]PaymentMethodView, 0, len(options))
	for _, option := range options {
		if !option.Configured || !option.Enabled {
			continue
		}
		views = append(views, PaymentMethodView{
			Code:        option.Code,
			DisplayName: methodDisplayName(option.Code),
		})
	}
	return views, nil
}

// CronSyncEnabled reads the automatic-sync switch; the scheduler consults
// it every tick so the switch takes effect without a restart.
func (s *Service) CronSyncEnabled(ctx context.Context) (bool, error) {
	return s.settingBool(ctx, ports.SettingEnableCronSync)
}

// SetSetting stores one runtime setting. The API key has its own rotation
// path and is rejected here.
func (s *Service) SetSetting(ctx context.Context, key, value string) error {
	switch key {
	case ports.SettingEnableCronSync, ports.SettingDisableRefreshOnLoad:
		return s.settings.Set(ctx, key, value, s.nowFn())
	case ports.SettingAPIKey:
		return fmt.Errorf("%w: the api key is changed via rotation", domain.ErrInvalidInput)
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}

func methodDisplayName(code string) string {
	if name, ok := methodDisplayNames[code]; ok {
		return name
	}
	words := strings.Fields(strings.ReplaceAll(code, "_", " "))
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
