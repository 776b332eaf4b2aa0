package application

import (
	"context"

	"github.com/paymentrails/monei-sync/internal/ports"
)

// ListCharges reads from the local store only; it never touches the remote
// API. Use SyncCharges or RefreshCharge to bring the store up to date.
func (s *Service) ListCharges(ctx context.Context, req ListChargesRequest) ([]ChargeView, error) {
	limit := req.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	charges, err := s.charges.List(ctx, ports.ChargeQuery{
		PaymentDateFrom: req.DateFrom,
		PaymentDateTo:   req.DateTo,
		Unlinked:        req.Unlinked,
		Limit:           limit,
		Offset:          req.Offset,
	})
	if err != nil {
		return nil, err
	}

	views := make([]ChargeView, 0, len(charges))
	for _, charge := range charges {
		views = append(views, s.chargeView(charge))
	}
	return views, nil
}

// GetCharge returns one local charge. Unless refresh-on-load is disabled in
// settings, the record is first refreshed against the remote API; a refresh
// failure downgrades to the stored record rather than failing the read.
func (s *Service) GetCharge(ctx context.Context, externalID string) (ChargeView, error) {
	charge, err := s.charges.FindByExternalID(ctx, externalID)
	if err != nil {
		return ChargeView{}, err
	}

	disabled, err := s.settingBool(ctx, ports.SettingDisableRefreshOnLoad)
	if err != nil {
		return ChargeView{}, err
	}
	if disabled {
		return s.chargeView(charge), nil
	}

	view, err := s.RefreshCharge(ctx, externalID)
	if err != nil {
		s.logger.WarnContext(ctx, "refresh on load failed; serving stored charge",
			"operation", "get_charge",
			"outcome", "degraded",
			"external_id", externalID,
			"error", err.Error(),
		)
		return s.chargeView(charge), nil
	}
	return view, nil
}

// settingBool reads a boolean flag; an unset key reads as false.
func (s *Service) settingBool(ctx context.Context, key string) (bool, error) {
	value, err := s.settings.Get(ctx, key)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return value == "true" || value == "1", nil
}
