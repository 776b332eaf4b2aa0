package postgres

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/paymentrails/monei-sync/internal/domain"
)

// chargeModel is deliberately flat: the charge is read far more often than
// it is written, and every field the dashboard or the change detector needs
// is a plain column. Diagnostic bundles stay opaque jsonb.
type chargeModel struct {
	ExternalID        string `gorm:"column:external_id;primaryKey"`
	OrderID           string `gorm:"column:order_id"`
	CheckoutID        string `gorm:"column:checkout_id"`
	AuthorizationCode string `gorm:"column:authorization_code"`
	Livemode          bool   `gorm:"column:livemode"`

	Amount           decimal.Decimal `gorm:"column:amount;type:numeric(18,2)"`
	Currency         string          `gorm:"column:currency"`
	RefundedAmount   decimal.Decimal `gorm:"column:refunded_amount;type:numeric(18,2)"`
	LastRefundAmount decimal.Decimal `gorm:"column:last_refund_amount;type:numeric(18,2)"`
	CapturedAmount   decimal.Decimal `gorm:"column:captured_amount;type:numeric(18,2)"`
	LastRefundReason string          `gorm:"column:last_refund_reason"`

	Status             string `gorm:"column:status"`
	StatusCode         string `gorm:"column:status_code"`
	StatusMessage      string `gorm:"column:status_message"`
	CancellationReason string `gorm:"column:cancellation_reason"`

	PaymentDate  *time.Time `gorm:"column:payment_date"`
	UpdatedAt    *time.Time `gorm:"column:updated_at"`
	PageOpenedAt *time.Time `gorm:"column:page_opened_at"`

	AccountID           string `gorm:"column:account_id"`
	StoreID             string `gorm:"column:store_id"`
	StoreName           string `gorm:"column:store_name"`
	SubscriptionID      string `gorm:"column:subscription_id"`
	TerminalID          string `gorm:"column:terminal_id"`
	ProviderID          string `gorm:"column:provider_id"`
	ProviderInternalID  string `gorm:"column:provider_internal_id"`
	ProviderReferenceID string `gorm:"column:provider_reference_id"`
	PointOfSaleID       string `gorm:"column:point_of_sale_id"`
	SequenceID          string `gorm:"column:sequence_id"`

	Description string `gorm:"column:description"`
	Descriptor  string `gorm:"column:descriptor"`

	CustomerName  string `gorm:"column:customer_name"`
	CustomerEmail string `gorm:"column:customer_email"`
	CustomerPhone string `gorm:"column:customer_phone"`

	ShopName    string `gorm:"column:shop_name"`
	ShopCountry string `gorm:"column:shop_country"`

	BillingName    string `gorm:"column:billing_name"`
	BillingEmail   string `gorm:"column:billing_email"`
	BillingPhone   string `gorm:"column:billing_phone"`
	BillingCompany string `gorm:"column:billing_company"`
	BillingTaxID   string `gorm:"column:billing_tax_id"`
	BillingStreet  string `gorm:"column:billing_street"`
	BillingStreet2 string `gorm:"column:billing_street2"`
	BillingCity    string `gorm:"column:billing_city"`
	BillingState   string `gorm:"column:billing_state"`
	BillingZip     string `gorm:"column:billing_zip"`
	BillingCountry string `gorm:"column:billing_country"`

	ShippingName    string `gorm:"column:shipping_name"`
	ShippingEmail   string `gorm:"column:shipping_email"`
	ShippingPhone   string `gorm:"column:shipping_phone"`
	ShippingCompany string `gorm:"column:shipping_company"`
	ShippingTaxID   string `gorm:"column:shipping_tax_id"`
	ShippingStreet  string `gorm:"column:shipping_street"`
	ShippingStreet2 string `gorm:"column:shipping_street2"`
	ShippingCity    string `gorm:"column:shipping_city"`
	ShippingState   string `gorm:"column:shipping_state"`
	ShippingZip     string `gorm:"column:shipping_zip"`
	ShippingCountry string `gorm:"column:shipping_country"`

	BillingPlan string `gorm:"column:billing_plan"`

	PaymentMethod       string `gorm:"column:payment_method"`
	CardBrand           string `gorm:"column:card_brand"`
	CardLast4           string `gorm:"column:card_last4"`
	CardType            string `gorm:"column:card_type"`
	CardCountry         string `gorm:"column:card_country"`
	CardholderName      string `gorm:"column:cardholder_name"`
	CardholderEmail     string `gorm:"column:cardholder_email"`
	CardExpiration      string `gorm:"column:card_expiration"`
	CardBank            string `gorm:"column:card_bank"`
	TokenizationMethod  string `gorm:"column:tokenization_method"`
	ThreeDSecure        bool   `gorm:"column:three_d_secure"`
	ThreeDSecureVersion string `gorm:"column:three_d_secure_version"`
	ThreeDSecureFlow    string `gorm:"column:three_d_secure_flow"`
	MethodPhoneNumber   string `gorm:"column:method_phone_number"`
	IntegrationType     string `gorm:"column:integration_type"`
	PaypalOrderID       string `gorm:"column:paypal_order_id"`
	PaypalPayerID       string `gorm:"column:paypal_payer_id"`
	PaypalEmail         string `gorm:"column:paypal_email"`
	PaypalName          string `gorm:"column:paypal_name"`
	CofidisOrderID      string `gorm:"column:cofidis_order_id"`
	TrustlyCustomerID   string `gorm:"column:trustly_customer_id"`

	SepaAccountholderName  string `gorm:"column:sepa_accountholder_name"`
	SepaAccountholderEmail string `gorm:"column:sepa_accountholder_email"`
	SepaCountryCode        string `gorm:"column:sepa_country_code"`
	SepaBankName           string `gorm:"column:sepa_bank_name"`
	SepaBankCode           string `gorm:"column:sepa_bank_code"`
	SepaBic                string `gorm:"column:sepa_bic"`
	SepaLast4              string `gorm:"column:sepa_last4"`

	KlarnaBillingCategory   string `gorm:"column:klarna_billing_category"`
	KlarnaAuthPaymentMethod string `gorm:"column:klarna_auth_payment_method"`

	SessionDetails datatypes.JSON `gorm:"column:session_details;type:jsonb"`
	TraceDetails   datatypes.JSON `gorm:"column:trace_details;type:jsonb"`
	Metadata       datatypes.JSON `gorm:"column:metadata;type:jsonb"`

	SaleOrderName string    `gorm:"column:sale_order_name"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (chargeModel) TableName() string { return "monei_charges" }

type orderModel struct {
	Name        string          `gorm:"column:name;primaryKey"`
	State       string          `gorm:"column:state"`
	AmountTotal decimal.Decimal `gorm:"column:amount_total;type:numeric(18,2)"`
	OrderDate   time.Time       `gorm:"column:order_date"`

	CustomerName  string `gorm:"column:customer_name"`
	CustomerEmail string `gorm:"column:customer_email"`
	CustomerPhone string `gorm:"column:customer_phone"`

	BillingName    string `gorm:"column:billing_name"`
	BillingEmail   string `gorm:"column:billing_email"`
	BillingPhone   string `gorm:"column:billing_phone"`
	BillingCompany string `gorm:"column:billing_company"`
	BillingTaxID   string `gorm:"column:billing_tax_id"`
	BillingStreet  string `gorm:"column:billing_street"`
	BillingStreet2 string `gorm:"column:billing_street2"`
	BillingCity    string `gorm:"column:billing_city"`
	BillingState   string `gorm:"column:billing_state"`
	BillingZip     string `gorm:"column:billing_zip"`
	BillingCountry string `gorm:"column:billing_country"`

	ShippingName    string `gorm:"column:shipping_name"`
	ShippingEmail   string `gorm:"column:shipping_email"`
	ShippingPhone   string `gorm:"column:shipping_phone"`
	ShippingCompany string `gorm:"column:shipping_company"`
	ShippingTaxID   string `gorm:"column:shipping_tax_id"`
	ShippingStreet  string `gorm:"column:shipping_street"`
	ShippingStreet2 string `gorm:"column:shipping_street2"`
	ShippingCity    string `gorm:"column:shipping_city"`
	ShippingState   string `gorm:"column:shipping_state"`
	ShippingZip     string `gorm:"column:shipping_zip"`
	ShippingCountry string `gorm:"column:shipping_country"`
}

func (orderModel) TableName() string { return "sale_orders" }

type settingModel struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     string    `gorm:"column:value"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (settingModel) TableName() string { return "monei_settings" }

func toChargeModel(c domain.Charge) chargeModel {
	return chargeModel{
		ExternalID:        c.ExternalID,
		OrderID:           c.OrderID,
		CheckoutID:        c.CheckoutID,
		AuthorizationCode: c.AuthorizationCode,
		Livemode:          c.Livemode,

		Amount:           c.Amount,
		Currency:         c.Currency,
		RefundedAmount:   c.RefundedAmount,
		LastRefundAmount: c.LastRefundAmount,
		CapturedAmount:   c.CapturedAmount,
		LastRefundReason: c.LastRefundReason,

		Status:             c.Status,
		StatusCode:         c.StatusCode,
		StatusMessage:      c.StatusMessage,
		CancellationReason: c.CancellationReason,

		PaymentDate:  c.PaymentDate,
		UpdatedAt:    c.UpdatedAt,
		PageOpenedAt: c.PageOpenedAt,

		AccountID:           c.AccountID,
		StoreID:             c.StoreID,
		StoreName:           c.StoreName,
		SubscriptionID:      c.SubscriptionID,
		TerminalID:          c.TerminalID,
		ProviderID:          c.ProviderID,
		ProviderInternalID:  c.ProviderInternalID,
		ProviderReferenceID: c.ProviderReferenceID,
		PointOfSaleID:       c.PointOfSaleID,
		SequenceID:          c.SequenceID,

		Description: c.Description,
		Descriptor:  c.Descriptor,

		CustomerName:  c.CustomerName,
		CustomerEmail: c.CustomerEmail,
		CustomerPhone: c.CustomerPhone,

		ShopName:    c.ShopName,
		ShopCountry: c.ShopCountry,

		BillingName:    c.Billing.Name,
		BillingEmail:   c.Billing.Email,
		BillingPhone:   c.Billing.Phone,
		BillingCompany: c.Billing.Company,
		BillingTaxID:   c.Billing.TaxID,
		BillingStreet:  c.Billing.Street,
		BillingStreet2: c.Billing.Street2,
		BillingCity:    c.Billing.City,
		BillingState:   c.Billing.State,
		BillingZip:     c.Billing.Zip,
		BillingCountry: c.Billing.Country,

		ShippingName:    c.Shipping.Name,
		ShippingEmail:   c.Shipping.Email,
		ShippingPhone:   c.Shipping.Phone,
		ShippingCompany: c.Shipping.Company,
		ShippingTaxID:   c.Shipping.TaxID,
		ShippingStreet:  c.Shipping.Street,
		ShippingStreet2: c.Shipping.Street2,
		ShippingCity:    c.Shipping.City,
		ShippingState:   c.Shipping.State,
		ShippingZip:     c.Shipping.Zip,
		ShippingCountry: c.Shipping.Country,

		BillingPlan: c.BillingPlan,

		PaymentMethod:       c.PaymentMethod.Method,
		CardBrand:           c.PaymentMethod.CardBrand,
		CardLast4:           c.PaymentMethod.CardLast4,
		CardType:            c.PaymentMethod.CardType,
		CardCountry:         c.PaymentMethod.CardCountry,
		CardholderName:      c.PaymentMethod.CardholderName,
		CardholderEmail:     c.PaymentMethod.CardholderEmail,
		CardExpiration:      c.PaymentMethod.CardExpiration,
		CardBank:            c.PaymentMethod.CardBank,
		TokenizationMethod:  c.PaymentMethod.TokenizationMethod,
		ThreeDSecure:        c.PaymentMethod.ThreeDSecure,
		ThreeDSecureVersion: c.PaymentMethod.ThreeDSecureVersion,
		ThreeDSecureFlow:    c.PaymentMethod.ThreeDSecureFlow,
		MethodPhoneNumber:   c.PaymentMethod.PhoneNumber,
		IntegrationType:     c.PaymentMethod.IntegrationType,
		PaypalOrderID:       c.PaymentMethod.PaypalOrderID,
		PaypalPayerID:       c.PaymentMethod.PaypalPayerID,
		PaypalEmail:         c.PaymentMethod.PaypalEmail,
		PaypalName:          c.PaymentMethod.PaypalName,
		CofidisOrderID:      c.PaymentMethod.CofidisOrderID,
		TrustlyCustomerID:   c.PaymentMethod.TrustlyCustomerID,

		SepaAccountholderName:  c.PaymentMethod.SepaAccountholderName,
		SepaAccountholderEmail: c.PaymentMethod.SepaAccountholderEmail,
		SepaCountryCode:        c.PaymentMethod.SepaCountryCode,
		SepaBankName:           c.PaymentMethod.SepaBankName,
		SepaBankCode:           c.PaymentMethod.SepaBankCode,
		SepaBic:                c.PaymentMethod.SepaBic,
		SepaLast4:              c.PaymentMethod.SepaLast4,

		KlarnaBillingCategory:   c.PaymentMethod.KlarnaBillingCategory,
		KlarnaAuthPaymentMethod: c.PaymentMethod.KlarnaAuthPaymentMethod,

		SessionDetails: datatypes.JSON(c.SessionDetails),
		TraceDetails:   datatypes.JSON(c.TraceDetails),
		Metadata:       datatypes.JSON(c.Metadata),

		SaleOrderName: c.SaleOrderName,
		CreatedAt:     c.CreatedAt,
	}
}

func toDomainCharge(row chargeModel) domain.Charge {
	return domain.Charge{
		ExternalID:        row.ExternalID,
		OrderID:           row.OrderID,
		CheckoutID:        row.CheckoutID,
		AuthorizationCode: row.AuthorizationCode,
		Livemode:          row.Livemode,

		Amount:           row.Amount,
		Currency:         row.Currency,
		RefundedAmount:   row.RefundedAmount,
		LastRefundAmount: row.LastRefundAmount,
		CapturedAmount:   row.CapturedAmount,
		LastRefundReason: row.LastRefundReason,

		Status:             row.Status,
		StatusCode:         row.StatusCode,
		StatusMessage:      row.StatusMessage,
		CancellationReason: row.CancellationReason,

		PaymentDate:  row.PaymentDate,
		UpdatedAt:    row.UpdatedAt,
		PageOpenedAt: row.PageOpenedAt,

		AccountID:           row.AccountID,
		StoreID:             row.StoreID,
		StoreName:           row.StoreName,
		SubscriptionID:      row.SubscriptionID,
		TerminalID:          row.TerminalID,
		ProviderID:          row.ProviderID,
		ProviderInternalID:  row.ProviderInternalID,
		ProviderReferenceID: row.ProviderReferenceID,
		PointOfSaleID:       row.PointOfSaleID,
		SequenceID:          row.SequenceID,

		Description: row.Description,
		Descriptor:  row.Descriptor,

		CustomerName:  row.CustomerName,
		CustomerEmail: row.CustomerEmail,
		CustomerPhone: row.CustomerPhone,

		ShopName:    row.ShopName,
		ShopCountry: row.ShopCountry,

		Billing: domain.ContactDetails{
			Name:    row.BillingName,
			Email:   row.BillingEmail,
			Phone:   row.BillingPhone,
			Company: row.BillingCompany,
			TaxID:   row.BillingTaxID,
			Street:  row.BillingStreet,
			Street2: row.BillingStreet2,
			City:    row.BillingCity,
			State:   row.BillingState,
			Zip:     row.BillingZip,
			Country: row.BillingCountry,
		},
		Shipping: domain.ContactDetails{
			Name:    row.ShippingName,
			Email:   row.ShippingEmail,
			Phone:   row.ShippingPhone,
			Company: row.ShippingCompany,
			TaxID:   row.ShippingTaxID,
			Street:  row.ShippingStreet,
			Street2: row.ShippingStreet2,
			City:    row.ShippingCity,
			State:   row.ShippingState,
			Zip:     row.ShippingZip,
			Country: row.ShippingCountry,
		},

		BillingPlan: row.BillingPlan,

		PaymentMethod: domain.PaymentMethodDetails{
			Method:              row.PaymentMethod,
			CardBrand:           row.CardBrand,
			CardLast4:           row.CardLast4,
			CardType:            row.CardType,
			CardCountry:         row.CardCountry,
			CardholderName:      row.CardholderName,
			CardholderEmail:     row.CardholderEmail,
			CardExpiration:      row.CardExpiration,
			CardBank:            row.CardBank,
			TokenizationMethod:  row.TokenizationMethod,
			ThreeDSecure:        row.ThreeDSecure,
			ThreeDSecureVersion: row.ThreeDSecureVersion,
			ThreeDSecureFlow:    row.ThreeDSecureFlow,
			PhoneNumber:         row.MethodPhoneNumber,
			IntegrationType:     row.IntegrationType,
			PaypalOrderID:       row.PaypalOrderID,
			PaypalPayerID:       row.PaypalPayerID,
			PaypalEmail:         row.PaypalEmail,
			PaypalName:          row.PaypalName,
			CofidisOrderID:      row.CofidisOrderID,
			TrustlyCustomerID:   row.TrustlyCustomerID,

			SepaAccountholderName:  row.SepaAccountholderName,
			SepaAccountholderEmail: row.SepaAccountholderEmail,
			SepaCountryCode:        row.SepaCountryCode,
			SepaBankName:           row.SepaBankName,
			SepaBankCode:           row.SepaBankCode,
			SepaBic:                row.SepaBic,
			SepaLast4:              row.SepaLast4,

			KlarnaBillingCategory:   row.KlarnaBillingCategory,
			KlarnaAuthPaymentMethod: row.KlarnaAuthPaymentMethod,
		},

		SessionDetails: json.RawMessage(row.SessionDetails),
		TraceDetails:   json.RawMessage(row.TraceDetails),
		Metadata:       json.RawMessage(row.Metadata),

		SaleOrderName: row.SaleOrderName,
		CreatedAt:     row.CreatedAt,
	}
}

func toDomainOrder(row orderModel) domain.Order {
	return domain.Order{
		Name:        row.Name,
		State:       row.State,
		AmountTotal: row.AmountTotal,
		OrderDate:   row.OrderDate,

		CustomerName:  row.CustomerName,
		CustomerEmail: row.CustomerEmail,
		CustomerPhone: row.CustomerPhone,

		Billing: domain.ContactDetails{
			Name:    row.BillingName,
			Email:   row.BillingEmail,
			Phone:   row.BillingPhone,
			Company: row.BillingCompany,
			TaxID:   row.BillingTaxID,
			Street:  row.BillingStreet,
			Street2: row.BillingStreet2,
			City:    row.BillingCity,
			State:   row.BillingState,
			Zip:     row.BillingZip,
			Country: row.BillingCountry,
		},
		Shipping: domain.ContactDetails{
			Name:    row.ShippingName,
			Email:   row.ShippingEmail,
			Phone:   row.ShippingPhone,
			Company: row.ShippingCompany,
			TaxID:   row.ShippingTaxID,
			Street:  row.ShippingStreet,
			Street2: row.ShippingStreet2,
			City:    row.ShippingCity,
			State:   row.ShippingState,
			Zip:     row.ShippingZip,
			Country: row.ShippingCountry,
		},
	}
}
