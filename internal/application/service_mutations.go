package application

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paymentrails/monei-sync/internal/domain"
	"github.com/paymentrails/monei-sync/internal/ports"
)

// Mutation handlers validate preconditions locally, send the lifecycle
// command, and apply the remote-returned fields to the local record as-is.
// Values the remote already returned are never recomputed locally.

// CapturePayment settles a previously authorized charge. A zero amount
// captures the full authorization.
func (s *Service) CapturePayment(ctx context.Context, externalID string, req CaptureRequest) (ChargeView, error) {
	charge, err := s.charges.FindByExternalID(ctx, externalID)
	if err != nil {
		return ChargeView{}, err
	}
	if charge.Status != domain.StatusAuthorized {
		return ChargeView{}, fmt.Errorf("%w: only authorized payments can be captured, current status is %s", domain.ErrInvalidInput, charge.Status)
	}
	if req.Amount.IsNegative() {
		return ChargeView{}, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}
	if req.Amount.GreaterThan(charge.Amount) {
		return ChargeView{}, fmt.Errorf("%w: cannot capture more than the authorized amount", domain.ErrInvalidInput)
	}

	raw, err := s.api.CapturePayment(ctx, externalID, amountToMinor(req.Amount))
	if err != nil {
		return ChargeView{}, err
	}

	fields := map[string]any{
		"status":          stringAt(raw, "status"),
		"status_code":     stringAt(raw, "statusCode"),
		"status_message":  stringAt(raw, "statusMessage"),
		"captured_amount": minorUnitsAt(raw, "amount"),
		"updated_at":      timeAt(raw, "updatedAt"),
	}
	if err := s.charges.UpdateFields(ctx, externalID, fields); err != nil {
		return ChargeView{}, err
	}

	s.logger.InfoContext(ctx, "payment captured",
		"operation", "capture_payment",
		"outcome", "success",
		"external_id", externalID,
	)
	return s.localView(ctx, externalID)
}

// RefundPayment refunds part or all of a settled charge.
func (s *Service) RefundPayment(ctx context.Context, externalID string, req RefundRequest) (ChargeView, error) {
	charge, err := s.charges.FindByExternalID(ctx, externalID)
	if err != nil {
		return ChargeView{}, err
	}
	if charge.Status != domain.StatusSucceeded && charge.Status != domain.StatusPartiallyRefunded {
		return ChargeView{}, fmt.Errorf("%w: only succeeded or partially refunded payments can be refunded, current status is %s", domain.ErrInvalidInput, charge.Status)
	}
	if !req.Amount.IsPositive() {
		return ChargeView{}, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}
	if req.Amount.GreaterThan(charge.RemainingRefundable()) {
		return ChargeView{}, fmt.Errorf("%w: cannot refund more than the remaining amount", domain.ErrInvalidInput)
	}
	if req.Reason != "" && !slices.Contains(domain.RefundReasons, req.Reason) {
		return ChargeView{}, fmt.Errorf("%w: unknown refund reason %q", domain.ErrInvalidInput, req.Reason)
	}

	raw, err := s.api.RefundPayment(ctx, externalID, amountToMinor(req.Amount), req.Reason)
	if err != nil {
		return ChargeView{}, err
	}

	fields := map[string]any{
		"status":             stringAt(raw, "status"),
		"status_code":        stringAt(raw, "statusCode"),
		"status_message":     stringAt(raw, "statusMessage"),
		"refunded_amount":    minorUnitsAt(raw, "refundedAmount"),
		"last_refund_amount": minorUnitsAt(raw, "lastRefundAmount"),
		"last_refund_reason": stringAt(raw, "lastRefundReason"),
		"updated_at":         timeAt(raw, "updatedAt"),
	}
	if err := s.charges.UpdateFields(ctx, externalID, fields); err != nil {
		return ChargeView{}, err
	}

	s.logger.InfoContext(ctx, "payment refunded",
		"operation", "refund_payment",
		"outcome", "success",
		"external_id", externalID,
	)
	return s.localView(ctx, externalID)
}

// CancelPayment voids a charge that has not been settled yet.
func (s *Service) CancelPayment(ctx context.Context, externalID string, req CancelRequest) (ChargeView, error) {
	charge, err := s.charges.FindByExternalID(ctx, externalID)
	if err != nil {
		return ChargeView{}, err
	}
	if charge.Status != domain.StatusPending && charge.Status != domain.StatusAuthorized {
		return ChargeView{}, fmt.Errorf("%w: only pending or authorized payments can be canceled, current status is %s", domain.ErrInvalidInput, charge.Status)
	}
	if req.Reason != "" && !slices.Contains(domain.CancellationReasons, req.Reason) {
		return ChargeView{}, fmt.Errorf("%w: unknown cancellation reason %q", domain.ErrInvalidInput, req.Reason)
	}

	raw, err := s.api.CancelPayment(ctx, externalID, req.Reason)
	if err != nil {
		return ChargeView{}, err
	}

	fields := map[string]any{
		"status":              stringAt(raw, "status"),
		"status_code":         stringAt(raw, "statusCode"),
		"status_message":      stringAt(raw, "statusMessage"),
		"cancellation_reason": stringAt(raw, "cancellationReason"),
		"updated_at":          timeAt(raw, "updatedAt"),
	}
	if err := s.charges.UpdateFields(ctx, externalID, fields); err != nil {
		return ChargeView{}, err
	}

	s.logger.InfoContext(ctx, "payment canceled",
		"operation", "cancel_payment",
		"outcome", "success",
		"external_id", externalID,
	)
	return s.localView(ctx, externalID)
}

// CreatePayment issues a payment-link creation remotely, then polls until
// the eventually-consistent remote side exposes the new charge and runs a
// reconciliation pass so it lands locally. An exhausted poll budget still
// reports the creation as successful, with a warning instead of an error.
func (s *Service) CreatePayment(ctx context.Context, req CreatePaymentRequest) (CreatePaymentResult, error) {
	input, err := s.buildCreateInput(ctx, req)
	if err != nil {
		return CreatePaymentResult{}, err
	}

	raw, err := s.api.CreatePayment(ctx, input)
	if err != nil {
		return CreatePaymentResult{}, err
	}
	paymentID := stringAt(raw, "id")
	if paymentID == "" {
		return CreatePaymentResult{}, fmt.Errorf("%w: create response carries no payment id", domain.ErrRemote)
	}

	s.logger.InfoContext(ctx, "payment created remotely",
		"operation", "create_payment",
		"external_id", paymentID,
	)

	if !s.waitForPayment(ctx, paymentID) {
		return CreatePaymentResult{
			PaymentID: paymentID,
			Warning:   "payment created but not yet visible remotely; local sync may be delayed",
		}, nil
	}

	if _, err := s.SyncCharges(ctx, SyncRequest{}); err != nil {
		s.logger.WarnContext(ctx, "post-create sync failed",
			"operation", "create_payment",
			"outcome", "degraded",
			"external_id", paymentID,
			"error", err.Error(),
		)
		return CreatePaymentResult{
			PaymentID: paymentID,
			Warning:   "payment created but local sync failed; run a manual sync",
		}, nil
	}

	return CreatePaymentResult{PaymentID: paymentID, Synced: true}, nil
}

func (s *Service) buildCreateInput(ctx context.Context, req CreatePaymentRequest) (ports.CreatePaymentInput, error) {
	if !req.Amount.IsPositive() {
		return ports.CreatePaymentInput{}, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}
	if len(req.Currency) != 3 {
		return ports.CreatePaymentInput{}, fmt.Errorf("%w: currency must be a 3-letter code", domain.ErrInvalidInput)
	}
	email, err := domain.ValidateEmail(req.CustomerEmail, "customer_email")
	if err != nil {
		return ports.CreatePaymentInput{}, err
	}
	phone, err := domain.ValidatePhone(req.CustomerPhone, "customer_phone")
	if err != nil {
		return ports.CreatePaymentInput{}, err
	}
	if err := s.validateAllowedMethods(ctx, req.AllowedMethods); err != nil {
		return ports.CreatePaymentInput{}, err
	}

	var expireAt *time.Time
	if req.ExpirationDate != "" {
		day, err := time.Parse("2006-01-02", req.ExpirationDate)
		if err != nil {
			return ports.CreatePaymentInput{}, fmt.Errorf("%w: expiration_date must be YYYY-MM-DD", domain.ErrInvalidInput)
		}
		// Links expire at the end of the chosen day.
		end := day.Add(24*time.Hour - time.Second)
		expireAt = &end
	}

	transactionType := ""
	if req.ManualCapture {
		transactionType = "AUTH"
	}

	return ports.CreatePaymentInput{
		AmountMinor:     amountToMinor(req.Amount),
		Currency:        req.Currency,
		OrderID:         req.OrderName,
		Description:     req.Description,
		ExpireAt:        expireAt,
		AllowedMethods:  req.AllowedMethods,
		TransactionType: transactionType,
		CustomerName:    req.CustomerName,
		CustomerEmail:   email,
		CustomerPhone:   phone,
		Billing:         req.Billing,
		Shipping:        req.Shipping,
	}, nil
}

// validateAllowedMethods checks each requested method code against the
// account's configured and enabled methods. An empty list is left to the
// remote default set and needs no lookup.
func (s *Service) validateAllowedMethods(ctx context.Context, methods []string) error {
	if len(methods) == 0 {
		return nil
	}
	options, err := s.api.ListPaymentMethods(ctx)
	if err != nil {
		return fmt.Errorf("fetch payment methods: %w", err)
	}
	available := make(map[string]struct{}, len(options))
	for _, option := range options {
		if option.Configured && option.Enabled {
			available[option.Code] = struct{}{}
		}
	}
	for _, code := range methods {
		if _, ok := available[code]; !ok {
			return fmt.Errorf("%w: payment method %q is not available on this account", domain.ErrInvalidInput, code)
		}
	}
	return nil
}

// waitForPayment polls the single-charge lookup within the configured
// retry budget. Lookup errors are swallowed; the next attempt retries.
func (s *Service) waitForPayment(ctx context.Context, paymentID string) bool {
	for attempt := 0; attempt < s.cfg.CreatePollAttempts; attempt++ {
		if ctx.Err() != nil {
			return false
		}
		if _, err := s.api.GetCharge(ctx, paymentID); err == nil {
			return true
		}
		s.sleepFn(s.cfg.CreatePollDelay)
	}
	return false
}

// SendPaymentLink re-sends the hosted payment link over the chosen channel.
func (s *Service) SendPaymentLink(ctx context.Context, externalID string, req SendLinkRequest) error {
	charge, err := s.charges.FindByExternalID(ctx, externalID)
	if err != nil {
		return err
	}

	input := ports.SendLinkInput{
		PaymentID: externalID,
		Channel:   req.Channel,
		Language:  req.Language,
	}
	if input.Language == "" {
		input.Language = "en"
	}

	switch req.Channel {
	case domain.ChannelEmail:
		email := req.Email
		if email == "" {
			email = charge.CustomerEmail
		}
		if email == "" {
			return fmt.Errorf("%w: email is required for the email channel", domain.ErrInvalidInput)
		}
		input.Email, err = domain.ValidateEmail(email, "email")
		if err != nil {
			return err
		}
	case domain.ChannelWhatsapp, domain.ChannelSMS:
		phone := req.Phone
		if phone == "" {
			phone = charge.CustomerPhone
		}
		if phone == "" {
			return fmt.Errorf("%w: phone is required for the %s channel", domain.ErrInvalidInput, req.Channel)
		}
		input.Phone, err = domain.ValidatePhone(phone, "phone")
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: unknown channel %q", domain.ErrInvalidInput, req.Channel)
	}

	if err := s.api.SendPaymentLink(ctx, input); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "payment link sent",
		"operation", "send_payment_link",
		"outcome", "success",
		"external_id", externalID,
		"channel", req.Channel,
	)
	return nil
}

func (s *Service) localView(ctx context.Context, externalID string) (ChargeView, error) {
	charge, err := s.charges.FindByExternalID(ctx, externalID)
	if err != nil {
		return ChargeView{}, err
	}
	return s.chargeView(charge), nil
}

// amountToMinor converts a major-unit amount to integer minor units.
func amountToMinor(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
