package application

import (
	"fmt"

	"github.com/paymentrails/monei-sync/internal/domain"
	"github.com/paymentrails/monei-sync/internal/ports"
)

// chargeFromPayload flattens a raw remote charge into the local record
// shape. It is a pure function of the payload and the per-run store lookup;
// the only rejected input is a charge without an id.
func chargeFromPayload(raw ports.RawCharge, stores map[string]string) (domain.Charge, error) {
	externalID := stringAt(raw, "id")
	if externalID == "" {
		return domain.Charge{}, fmt.Errorf("%w: charge payload has no id", domain.ErrInvalidInput)
	}

	charge := domain.Charge{
		ExternalID:        externalID,
		OrderID:           stringAt(raw, "orderId"),
		CheckoutID:        stringAt(raw, "checkoutId"),
		AuthorizationCode: stringAt(raw, "authorizationCode"),
		Livemode:          boolAt(raw, "livemode"),

		Amount:           minorUnitsAt(raw, "amount"),
		Currency:         stringAt(raw, "currency"),
		RefundedAmount:   minorUnitsAt(raw, "refundedAmount"),
		LastRefundAmount: minorUnitsAt(raw, "lastRefundAmount"),
		LastRefundReason: stringAt(raw, "lastRefundReason"),

		Status:             stringAt(raw, "status"),
		StatusCode:         stringAt(raw, "statusCode"),
		StatusMessage:      stringAt(raw, "statusMessage"),
		CancellationReason: stringAt(raw, "cancellationReason"),

		PaymentDate:  timeAt(raw, "createdAt"),
		UpdatedAt:    timeAt(raw, "updatedAt"),
		PageOpenedAt: timeAt(raw, "pageOpenedAt"),

		AccountID:           stringAt(raw, "accountId"),
		StoreID:             stringAt(raw, "storeId"),
		SubscriptionID:      stringAt(raw, "subscriptionId"),
		TerminalID:          stringAt(raw, "terminalId"),
		ProviderID:          stringAt(raw, "providerId"),
		ProviderInternalID:  stringAt(raw, "providerInternalId"),
		ProviderReferenceID: stringAt(raw, "providerReferenceId"),
		PointOfSaleID:       stringAt(raw, "pointOfSaleId"),
		SequenceID:          stringAt(raw, "sequenceId"),

		Description: stringAt(raw, "description"),
		Descriptor:  stringAt(raw, "descriptor"),

		CustomerName:  stringAt(raw, "customer", "name"),
		CustomerEmail: stringAt(raw, "customer", "email"),
		CustomerPhone: stringAt(raw, "customer", "phone"),

		ShopName:    stringAt(raw, "shop", "name"),
		ShopCountry: stringAt(raw, "shop", "country"),

		Billing:  contactFromPayload(raw, "billingDetails"),
		Shipping: contactFromPayload(raw, "shippingDetails"),

		BillingPlan: stringAt(raw, "billingPlan"),

		PaymentMethod: paymentMethodFromPayload(raw),

		SessionDetails: jsonAt(raw, "sessionDetails"),
		TraceDetails:   jsonAt(raw, "traceDetails"),
		Metadata:       jsonAt(raw, "metadata"),
	}

	if charge.Status == "" {
		charge.Status = domain.StatusPending
	}
	charge.StoreName = stores[charge.StoreID]

	return charge, nil
}

func contactFromPayload(raw ports.RawCharge, block string) domain.ContactDetails {
	return domain.ContactDetails{
		Name:    stringAt(raw, block, "name"),
		Email:   stringAt(raw, block, "email"),
		Phone:   stringAt(raw, block, "phone"),
		Company: stringAt(raw, block, "company"),
		TaxID:   stringAt(raw, block, "taxId"),
		Street:  stringAt(raw, block, "address", "line1"),
		Street2: stringAt(raw, block, "address", "line2"),
		City:    stringAt(raw, block, "address", "city"),
		State:   stringAt(raw, block, "address", "state"),
		Zip:     stringAt(raw, block, "address", "zip"),
		Country: stringAt(raw, block, "address", "country"),
	}
}

// paymentMethodFromPayload populates only the variant selected by
// paymentMethod.method; everything else stays zero.
func paymentMethodFromPayload(raw ports.RawCharge) domain.PaymentMethodDetails {
	pm := domain.PaymentMethodDetails{Method: stringAt(raw, "paymentMethod", "method")}

	switch pm.Method {
	case domain.MethodCard, domain.MethodCardPresent:
		pm.CardBrand = stringAt(raw, "paymentMethod", pm.Method, "brand")
		pm.CardLast4 = stringAt(raw, "paymentMethod", pm.Method, "last4")
		pm.CardType = stringAt(raw, "paymentMethod", pm.Method, "type")
		pm.CardCountry = stringAt(raw, "paymentMethod", pm.Method, "country")
		pm.CardholderName = stringAt(raw, "paymentMethod", pm.Method, "cardholderName")
		pm.CardholderEmail = stringAt(raw, "paymentMethod", pm.Method, "cardholderEmail")
		pm.CardExpiration = stringAt(raw, "paymentMethod", pm.Method, "expiration")
		pm.CardBank = stringAt(raw, "paymentMethod", pm.Method, "bank")
		pm.TokenizationMethod = stringAt(raw, "paymentMethod", pm.Method, "tokenizationMethod")
		pm.ThreeDSecure = boolAt(raw, "paymentMethod", pm.Method, "threeDSecure")
		pm.ThreeDSecureVersion = stringAt(raw, "paymentMethod", pm.Method, "threeDSecureVersion")
		pm.ThreeDSecureFlow = stringAt(raw, "paymentMethod", pm.Method, "threeDSecureFlow")
	case domain.MethodBizum:
		pm.PhoneNumber = stringAt(raw, "paymentMethod", "bizum", "phoneNumber")
		pm.IntegrationType = stringAt(raw, "paymentMethod", "bizum", "integrationType")
	case domain.MethodMbway:
		pm.PhoneNumber = stringAt(raw, "paymentMethod", "mbway", "phoneNumber")
	case domain.MethodPaypal:
		pm.PaypalOrderID = stringAt(raw, "paymentMethod", "paypal", "orderId")
		pm.PaypalPayerID = stringAt(raw, "paymentMethod", "paypal", "payerId")
		pm.PaypalEmail = stringAt(raw, "paymentMethod", "paypal", "email")
		pm.PaypalName = stringAt(raw, "paymentMethod", "paypal", "name")
	case domain.MethodCofidis, domain.MethodCofidisLoan:
		pm.CofidisOrderID = stringAt(raw, "paymentMethod", pm.Method, "orderId")
	case domain.MethodTrustly:
		pm.TrustlyCustomerID = stringAt(raw, "paymentMethod", "trustly", "customerId")
	case domain.MethodSepa:
		pm.SepaAccountholderName = stringAt(raw, "paymentMethod", "sepa", "accountholderName")
		pm.SepaAccountholderEmail = stringAt(raw, "paymentMethod", "sepa", "accountholderEmail")
		pm.SepaCountryCode = stringAt(raw, "paymentMethod", "sepa", "countryCode")
		pm.SepaBankName = stringAt(raw, "paymentMethod", "sepa", "bankName")
		pm.SepaBankCode = stringAt(raw, "paymentMethod", "sepa", "bankCode")
		pm.SepaBic = stringAt(raw, "paymentMethod", "sepa", "bic")
		pm.SepaLast4 = stringAt(raw, "paymentMethod", "sepa", "last4")
	case domain.MethodKlarna:
		pm.KlarnaBillingCategory = stringAt(raw, "paymentMethod", "klarna", "billingCategory")
		pm.KlarnaAuthPaymentMethod = stringAt(raw, "paymentMethod", "klarna", "authPaymentMethod")
	}

	return pm
}
