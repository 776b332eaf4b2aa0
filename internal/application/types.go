package application

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paymentrails/monei-sync/internal/domain"
)

// SyncRequest triggers one batch reconciliation run. Preset, when set,
// overrides the explicit bounds; cron runs with no bounds default to the
// last 24 hours, manual runs with no bounds sync everything.
type SyncRequest struct {
	DateFrom *time.Time `json:"date_from,omitempty"`
	DateTo   *time.Time `json:"date_to,omitempty"`
	Preset   string     `json:"preset,omitempty"`
	IsCron   bool       `json:"-"`
}

// SyncSummary is the aggregate outcome of one sync run.
type SyncSummary struct {
	Added   int    `json:"added"`
	Updated int    `json:"updated"`
	Skipped int    `json:"skipped"`
	Deleted int    `json:"deleted"`
	Message string `json:"message"`
}

// ListChargesRequest filters the local charge listing.
type ListChargesRequest struct {
	DateFrom *time.Time `json:"date_from,omitempty"`
	DateTo   *time.Time `json:"date_to,omitempty"`
	Unlinked bool       `json:"unlinked,omitempty"`
	Limit    int        `json:"limit,omitempty"`
	Offset   int        `json:"offset,omitempty"`
}

type CaptureRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type RefundRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason,omitempty"`
}

type CancelRequest struct {
	Reason string `json:"reason,omitempty"`
}

type CreatePaymentRequest struct {
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	OrderName      string          `json:"order_name,omitempty"`
	Description    string          `json:"description,omitempty"`
	ExpirationDate string          `json:"expiration_date,omitempty"`
	AllowedMethods []string        `json:"allowed_methods"`
	ManualCapture  bool            `json:"manual_capture,omitempty"`
	CustomerName   string          `json:"customer_name,omitempty"`
	CustomerEmail  string          `json:"customer_email,omitempty"`
	CustomerPhone  string          `json:"customer_phone,omitempty"`

	Billing  *domain.ContactDetails `json:"billing,omitempty"`
	Shipping *domain.ContactDetails `json:"shipping,omitempty"`
}

// CreatePaymentResult reports the remote creation outcome. Warning is set
// when the poll budget ran out before the new charge became visible; the
// creation itself still succeeded.
type CreatePaymentResult struct {
	PaymentID string `json:"payment_id"`
	Synced    bool   `json:"synced"`
	Warning   string `json:"warning,omitempty"`
}

type SendLinkRequest struct {
	Channel  string `json:"channel"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Language string `json:"language,omitempty"`
}

type LinkOrdersResult struct {
	Linked  int    `json:"linked"`
	Message string `json:"message"`
}

type RotateAPIKeyRequest struct {
	APIKey string `json:"api_key"`
}

// RotateAPIKeyResult reports the full-reset-on-reconfiguration outcome:
// every local charge is deleted and a current-month sync is started against
// the new account.
type RotateAPIKeyResult struct {
	Deleted int64       `json:"deleted"`
	Warning string      `json:"warning"`
	Summary SyncSummary `json:"summary"`
}

type PaymentMethodView struct {
	Code        string `json:"code"`
	DisplayName string `json:"display_name"`
}

// ChargeView is the read representation of a local charge.
type ChargeView struct {
	ExternalID        string `json:"external_id"`
	OrderID           string `json:"order_id,omitempty"`
	SaleOrderName     string `json:"sale_order_name,omitempty"`
	AuthorizationCode string `json:"authorization_code,omitempty"`
	Livemode          bool   `json:"livemode"`

	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	RefundedAmount   decimal.Decimal `json:"refunded_amount"`
	LastRefundAmount decimal.Decimal `json:"last_refund_amount"`
	CapturedAmount   decimal.Decimal `json:"captured_amount"`
	LastRefundReason string          `json:"last_refund_reason,omitempty"`

	Status             string `json:"status"`
	StatusCode         string `json:"status_code,omitempty"`
	StatusMessage      string `json:"status_message,omitempty"`
	CancellationReason string `json:"cancellation_reason,omitempty"`

	PaymentDate  *time.Time `json:"payment_date,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
	PageOpenedAt *time.Time `json:"page_opened_at,omitempty"`

	StoreID   string `json:"store_id,omitempty"`
	StoreName string `json:"store_name,omitempty"`

	Description   string `json:"description,omitempty"`
	CustomerName  string `json:"customer_name,omitempty"`
	CustomerEmail string `json:"customer_email,omitempty"`
	CustomerPhone string `json:"customer_phone,omitempty"`

	PaymentMethod string `json:"payment_method,omitempty"`
	CardBrand     string `json:"card_brand,omitempty"`
	CardLast4     string `json:"card_last4,omitempty"`

	Metadata json.RawMessage `json:"metadata,omitempty"`

	PaymentURL string `json:"payment_url"`
}
