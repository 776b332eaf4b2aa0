package ports

import (
	"context"
	"time"

	"github.com/paymentrails/monei-sync/internal/domain"
)

// RawCharge is a charge exactly as decoded from the MONEI GraphQL response.
// It stays an untyped tree on purpose: the payload mapper owns null-safe
// extraction, and the schema's nested optionality is not worth mirroring in
// a struct that would have to treat every field as a pointer anyway.
type RawCharge = map[string]any

// ChargeListFilter is the server-side filter of the paginated charges query.
// Size caps the page length, From is a zero-based offset, and the date pair
// becomes an inclusive [from, to] epoch-second range on createdAt.
type ChargeListFilter struct {
	Size        int
	From        int
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// ChargePage is one page of the charges query plus the authoritative total
// of the filtered result set.
type ChargePage struct {
	Items []RawCharge
	Total int
}

// CreatePaymentInput carries the fields of the createPayment mutation.
// AmountMinor is integer minor units, the remote API's representation.
type CreatePaymentInput struct {
	AmountMinor     int64
	Currency        string
	OrderID         string
	Description     string
	ExpireAt        *time.Time
	AllowedMethods  []string
	TransactionType string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	Billing         *domain.ContactDetails
	Shipping        *domain.ContactDetails
}

// SendLinkInput carries the sendPaymentLink mutation fields. Exactly one of
// Email/Phone is set, matching the channel.
type SendLinkInput struct {
	PaymentID string
	Channel   string
	Language  string
	Email     string
	Phone     string
}

// MoneiAPI is the remote API client boundary. Implementations execute
// GraphQL documents against the payment processor and surface the error
// taxonomy as domain sentinels: ErrAuth, ErrTransport, ErrRemote.
type MoneiAPI interface {
	// AccountAPIKey returns the API key the remote account reports,
	// used by the connection test to detect key mismatch.
	AccountAPIKey(ctx context.Context) (string, error)
	// ListStores fetches the storeId -> storeName lookup.
	ListStores(ctx context.Context) (map[string]string, error)
	// ListCharges fetches one page of charges with the given filter.
	ListCharges(ctx context.Context, filter ChargeListFilter) (ChargePage, error)
	// GetCharge fetches a single charge by id; ErrNotFound when absent.
	GetCharge(ctx context.Context, id string) (RawCharge, error)
	// ListPaymentMethods fetches the account's available payment methods.
	ListPaymentMethods(ctx context.Context) ([]domain.PaymentMethodOption, error)

	// CapturePayment captures an authorized payment; amountMinor of 0 means
	// capture the full authorized amount. Returns the mutation's delta.
	CapturePayment(ctx context.Context, paymentID string, amountMinor int64) (RawCharge, error)
	// RefundPayment refunds amountMinor with an optional reason.
	RefundPayment(ctx context.Context, paymentID string, amountMinor int64, reason string) (RawCharge, error)
	// CancelPayment cancels a pending or authorized payment.
	CancelPayment(ctx context.Context, paymentID string, reason string) (RawCharge, error)
	// CreatePayment creates a new payment link and returns its delta.
	CreatePayment(ctx context.Context, input CreatePaymentInput) (RawCharge, error)
	// SendPaymentLink delivers the payment link over the chosen channel.
	SendPaymentLink(ctx context.Context, input SendLinkInput) error
}
