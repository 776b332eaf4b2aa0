package ports

import (
	"context"
	"time"

	"github.com/paymentrails/monei-sync/internal/domain"
)

// ChargeQuery narrows bulk charge reads. NotInExternalIDs combined with the
// date bounds expresses obsolete-record detection: everything the last sync
// run did not see inside the queried window.
type ChargeQuery struct {
	NotInExternalIDs []string
	PaymentDateFrom  *time.Time
	PaymentDateTo    *time.Time
	Unlinked         bool
	Limit            int
	Offset           int
}

// ChargeRepository is the local store boundary for reconciled charges.
// Update rewrites the full mapped record; UpdateFields applies a partial
// delta (mutation responses return only the fields that changed, and those
// are written literally, never recomputed).
type ChargeRepository interface {
	FindByExternalID(ctx context.Context, externalID string) (domain.Charge, error)
	Create(ctx context.Context, charge domain.Charge) (domain.Charge, error)
	Update(ctx context.Context, charge domain.Charge) error
	UpdateFields(ctx context.Context, externalID string, fields map[string]any) error
	List(ctx context.Context, query ChargeQuery) ([]domain.Charge, error)
	DeleteByExternalIDs(ctx context.Context, externalIDs []string) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// OrderRepository is the order linkage boundary: read-only lookups of the
// host application's sales orders by their human-readable name.
type OrderRepository interface {
	GetByName(ctx context.Context, name string) (domain.Order, error)
}

// SettingsRepository persists runtime-mutable integration settings
// (API key, cron enablement, refresh-on-load switch) as key/value pairs.
type SettingsRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, updatedAt time.Time) error
}

// Setting keys owned by this service.
const (
	SettingAPIKey               = "monei.api_key"
	SettingEnableCronSync       = "monei.enable_cron_sync"
	SettingDisableRefreshOnLoad = "monei.disable_refresh_on_load"
)
