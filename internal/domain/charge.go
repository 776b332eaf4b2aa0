package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Charge statuses as reported by the MONEI API.
const (
	StatusSucceeded         = "SUCCEEDED"
	StatusPending           = "PENDING"
	StatusFailed            = "FAILED"
	StatusCanceled          = "CANCELED"
	StatusRefunded          = "REFUNDED"
	StatusPartiallyRefunded = "PARTIALLY_REFUNDED"
	StatusAuthorized        = "AUTHORIZED"
	StatusExpired           = "EXPIRED"
)

// Payment method discriminators. Only the matching variant's fields are
// populated on a Charge.
const (
	MethodCard        = "card"
	MethodCardPresent = "cardPresent"
	MethodBizum       = "bizum"
	MethodPaypal      = "paypal"
	MethodCofidis     = "cofidis"
	MethodCofidisLoan = "cofidisLoan"
	MethodTrustly     = "trustly"
	MethodSepa        = "sepa"
	MethodKlarna      = "klarna"
	MethodMbway       = "mbway"
)

// Refund and cancellation reasons accepted by the MONEI API.
const (
	ReasonDuplicated          = "duplicated"
	ReasonFraudulent          = "fraudulent"
	ReasonRequestedByCustomer = "requested_by_customer"
	ReasonOrderCanceled       = "order_canceled"
)

// RefundReasons lists the values accepted for a refund's reason field.
var RefundReasons = []string{ReasonDuplicated, ReasonFraudulent, ReasonRequestedByCustomer, ReasonOrderCanceled}

// CancellationReasons lists the values accepted when cancelling a payment.
var CancellationReasons = []string{ReasonRequestedByCustomer, ReasonFraudulent, ReasonDuplicated, ReasonOrderCanceled}

// Send-link channels.
const (
	ChannelEmail    = "EMAIL"
	ChannelWhatsapp = "WHATSAPP"
	ChannelSMS      = "SMS"
)

// Charge is the reconciled local representation of one remote MONEI charge.
// ExternalID equals the remote charge id and is the only correlation key;
// it is immutable after creation. Amounts are decimal euros (the remote API
// speaks integer minor units).
type Charge struct {
	ExternalID        string
	OrderID           string
	CheckoutID        string
	AuthorizationCode string
	Livemode          bool

	Amount           decimal.Decimal
	Currency         string
	RefundedAmount   decimal.Decimal
	LastRefundAmount decimal.Decimal
	CapturedAmount   decimal.Decimal
	LastRefundReason string

	Status             string
	StatusCode         string
	StatusMessage      string
	CancellationReason string

	PaymentDate  *time.Time
	UpdatedAt    *time.Time
	PageOpenedAt *time.Time

	AccountID           string
	StoreID             string
	StoreName           string
	SubscriptionID      string
	TerminalID          string
	ProviderID          string
	ProviderInternalID  string
	ProviderReferenceID string
	PointOfSaleID       string
	SequenceID          string

	Description string
	Descriptor  string

	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	ShopName    string
	ShopCountry string

	Billing  ContactDetails
	Shipping ContactDetails

	BillingPlan string

	PaymentMethod PaymentMethodDetails

	// Opaque pass-through diagnostic bundles and free-form metadata,
	// stored as JSON exactly as received.
	SessionDetails json.RawMessage
	TraceDetails   json.RawMessage
	Metadata       json.RawMessage

	// Weak reference to a local sales order matched by name; empty when
	// no order matched at link time.
	SaleOrderName string

	CreatedAt time.Time
}

// ContactDetails groups the billing/shipping contact blocks of a charge.
type ContactDetails struct {
	Name    string
	Email   string
	Phone   string
	Company string
	TaxID   string
	Street  string
	Street2 string
	City    string
	State   string
	Zip     string
	Country string
}

// PaymentMethodDetails is the discriminated variant part of a charge.
// Method selects which group of fields is meaningful; all others stay zero.
type PaymentMethodDetails struct {
	Method string

	// card / cardPresent
	CardBrand           string
	CardLast4           string
	CardType            string
	CardCountry         string
	CardholderName      string
	CardholderEmail     string
	CardExpiration      string
	CardBank            string
	TokenizationMethod  string
	ThreeDSecure        bool
	ThreeDSecureVersion string
	ThreeDSecureFlow    string

	// bizum / mbway
	PhoneNumber     string
	IntegrationType string

	// paypal
	PaypalOrderID string
	PaypalPayerID string
	PaypalEmail   string
	PaypalName    string

	// cofidis / cofidisLoan
	CofidisOrderID string

	// trustly
	TrustlyCustomerID string

	// sepa
	SepaAccountholderName  string
	SepaAccountholderEmail string
	SepaCountryCode        string
	SepaBankName           string
	SepaBankCode           string
	SepaBic                string
	SepaLast4              string

	// klarna
	KlarnaBillingCategory   string
	KlarnaAuthPaymentMethod string
}

// RemainingRefundable is the amount still eligible for refund.
func (c Charge) RemainingRefundable() decimal.Decimal {
	return c.Amount.Sub(c.RefundedAmount)
}

// PaymentMethodOption is one entry of the account's available-methods list.
type PaymentMethodOption struct {
	Code       string
	Configured bool
	Enabled    bool
}
