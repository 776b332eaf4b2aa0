package application

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/paymentrails/monei-sync/internal/domain"
	"github.com/paymentrails/monei-sync/internal/ports"
)

// Config carries the sync-engine policies resolved at bootstrap.
type Config struct {
	DashboardURL string

	// PageSize is the charges page length; MONEI caps it at 1000.
	PageSize int
	// ChangeDetection selects the update-needed rule:
	// field_diff (default) or timestamp.
	ChangeDetection string
	// StoreLookupPolicy decides what a failed store-lookup fetch does to
	// the run: "abort" (default) or "degrade" to an empty lookup.
	StoreLookupPolicy string
	// CronWindow bounds automatic runs that carry no explicit dates.
	CronWindow time.Duration

	SyncLockTTL time.Duration

	CreatePollAttempts int
	CreatePollDelay    time.Duration
}

// Store lookup failure policies.
const (
	StoreLookupAbort   = "abort"
	StoreLookupDegrade = "degrade"
)

type Service struct {
	cfg      Config
	logger   *slog.Logger
	charges  ports.ChargeRepository
	orders   ports.OrderRepository
	settings ports.SettingsRepository
	api      ports.MoneiAPI
	lock     ports.SyncLock
	nowFn    func() time.Time
	sleepFn  func(time.Duration)
}

type Dependencies struct {
	Config   Config
	Logger   *slog.Logger
	Charges  ports.ChargeRepository
	Orders   ports.OrderRepository
	Settings ports.SettingsRepository
	API      ports.MoneiAPI
	Lock     ports.SyncLock
}

func NewService(deps Dependencies) *Service {
	cfg := deps.Config
	if cfg.PageSize <= 0 {
		cfg.PageSize = 1000
	}
	if cfg.ChangeDetection == "" {
		cfg.ChangeDetection = ChangeDetectionFieldDiff
	}
	if cfg.StoreLookupPolicy == "" {
		cfg.StoreLookupPolicy = StoreLookupAbort
	}
	if cfg.CronWindow <= 0 {
		cfg.CronWindow = 24 * time.Hour
	}
	if cfg.SyncLockTTL <= 0 {
		cfg.SyncLockTTL = 10 * time.Minute
	}
	if cfg.CreatePollAttempts <= 0 {
		cfg.CreatePollAttempts = 10
	}
	if cfg.CreatePollDelay <= 0 {
		cfg.CreatePollDelay = time.Second
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		cfg:      cfg,
		logger:   logger.With("module", "application", "layer", "service"),
		charges:  deps.Charges,
		orders:   deps.Orders,
		settings: deps.Settings,
		api:      deps.API,
		lock:     deps.Lock,
		nowFn:    func() time.Time { return time.Now().UTC() },
		sleepFn:  time.Sleep,
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}

// paymentURL builds the MONEI dashboard link for a charge.
func (s *Service) paymentURL(externalID string) string {
	return strings.TrimRight(s.cfg.DashboardURL, "/") + "/payments/" + externalID
}

func (s *Service) chargeView(charge domain.Charge) ChargeView {
	return ChargeView{
		ExternalID:        charge.ExternalID,
		OrderID:           charge.OrderID,
		SaleOrderName:     charge.SaleOrderName,
		AuthorizationCode: charge.AuthorizationCode,
		Livemode:          charge.Livemode,

		Amount:           charge.Amount,
		Currency:         charge.Currency,
		RefundedAmount:   charge.RefundedAmount,
		LastRefundAmount: charge.LastRefundAmount,
		CapturedAmount:   charge.CapturedAmount,
		LastRefundReason: charge.LastRefundReason,

		Status:             charge.Status,
		StatusCode:         charge.StatusCode,
		StatusMessage:      charge.StatusMessage,
		CancellationReason: charge.CancellationReason,

		PaymentDate:  charge.PaymentDate,
		UpdatedAt:    charge.UpdatedAt,
		PageOpenedAt: charge.PageOpenedAt,

		StoreID:   charge.StoreID,
		StoreName: charge.StoreName,

		Description:   charge.Description,
		CustomerName:  charge.CustomerName,
		CustomerEmail: charge.CustomerEmail,
		CustomerPhone: charge.CustomerPhone,

		PaymentMethod: charge.PaymentMethod.Method,
		CardBrand:     charge.PaymentMethod.CardBrand,
		CardLast4:     charge.PaymentMethod.CardLast4,

		Metadata: charge.Metadata,

		PaymentURL: s.paymentURL(charge.ExternalID),
	}
}
