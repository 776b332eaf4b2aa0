package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/paymentrails/monei-sync/internal/domain"
	"github.com/paymentrails/monei-sync/internal/ports"
)

// syncState accumulates one run's counters and the set of remote ids
// observed across all pages. It is owned by a single SyncCharges invocation.
type syncState struct {
	added   int
	updated int
	skipped int
	deleted int
	seen    map[string]struct{}
}

// SyncCharges reconciles the remote charge list into the local store:
// paginated fetch, per-item create/update/skip, then pruning of local
// records the queried range no longer contains. Concurrent runs are
// serialized via the sync lock.
func (s *Service) SyncCharges(ctx context.Context, req SyncRequest) (SyncSummary, error) {
	dateFrom, dateTo, err := s.resolveWindow(req)
	if err != nil {
		return SyncSummary{}, err
	}

	release, ok, err := s.lock.Acquire(ctx, s.cfg.SyncLockTTL)
	if err != nil {
		return SyncSummary{}, fmt.Errorf("acquire sync lock: %w", err)
	}
	if !ok {
		return SyncSummary{}, domain.ErrSyncInProgress
	}
	defer release(ctx)

	mode := "manual"
	if req.IsCron {
		mode = "cron"
	}
	s.logger.InfoContext(ctx, "payment sync started",
		"operation", "sync_charges",
		"outcome", "start",
		"mode", mode,
		"date_from", timeOrEmpty(dateFrom),
		"date_to", timeOrEmpty(dateTo),
	)

	stores, err := s.fetchStores(ctx)
	if err != nil {
		return SyncSummary{}, err
	}

	state := &syncState{seen: make(map[string]struct{})}

	offset := 0
	for {
		page, err := s.api.ListCharges(ctx, ports.ChargeListFilter{
			Size:        s.cfg.PageSize,
			From:        offset,
			CreatedFrom: dateFrom,
			CreatedTo:   dateTo,
		})
		if err != nil {
			return SyncSummary{}, fmt.Errorf("fetch charges page at offset %d: %w", offset, err)
		}

		s.logger.InfoContext(ctx, "charges page fetched",
			"operation", "sync_charges",
			"offset", offset,
			"page_items", len(page.Items),
			"total", page.Total,
		)

		s.reconcilePage(ctx, page.Items, stores, state)

		// A short page, or reaching the authoritative total, ends pagination.
		// The offset strictly increases, so termination is guaranteed.
		if len(page.Items) < s.cfg.PageSize || offset+len(page.Items) >= page.Total {
			break
		}
		offset += len(page.Items)
	}

	if err := s.pruneObsolete(ctx, state, dateFrom, dateTo); err != nil {
		return SyncSummary{}, err
	}

	summary := SyncSummary{
		Added:   state.added,
		Updated: state.updated,
		Skipped: state.skipped,
		Deleted: state.deleted,
	}
	summary.Message = summaryMessage(summary)

	s.logger.InfoContext(ctx, "payment sync completed",
		"operation", "sync_charges",
		"outcome", "success",
		"added", summary.Added,
		"updated", summary.Updated,
		"skipped", summary.Skipped,
		"deleted", summary.Deleted,
	)
	return summary, nil
}

// resolveWindow applies the preset, then the cron default of the trailing
// 24 hours. A manual request without bounds syncs everything.
func (s *Service) resolveWindow(req SyncRequest) (*time.Time, *time.Time, error) {
	if req.Preset != "" {
		from, to, err := domain.WindowRange(req.Preset, s.nowFn())
		if err != nil {
			return nil, nil, err
		}
		return &from, &to, nil
	}
	if req.DateFrom != nil && req.DateTo != nil && req.DateFrom.After(*req.DateTo) {
		return nil, nil, fmt.Errorf("%w: date_from must not be after date_to", domain.ErrInvalidInput)
	}
	if req.IsCron && req.DateFrom == nil && req.DateTo == nil {
		to := s.nowFn()
		from := to.Add(-s.cfg.CronWindow)
		return &from, &to, nil
	}
	return req.DateFrom, req.DateTo, nil
}

// fetchStores loads the storeId -> name lookup held for the whole run.
// Under the degrade policy a failure costs only store-name display.
func (s *Service) fetchStores(ctx context.Context) (map[string]string, error) {
	stores, err := s.api.ListStores(ctx)
	if err != nil {
		if s.cfg.StoreLookupPolicy == StoreLookupDegrade {
			s.logger.WarnContext(ctx, "store lookup failed; continuing without store names",
				"operation", "sync_charges",
				"outcome", "degraded",
				"error", err.Error(),
			)
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("fetch stores: %w", err)
	}
	s.logger.InfoContext(ctx, "store lookup fetched",
		"operation", "sync_charges",
		"store_count", len(stores),
	)
	return stores, nil
}

// reconcilePage routes every item of one page through mapping and change
// detection. A failed item is logged and skipped without joining the
// seen-set, which leaves its local record eligible for pruning until a
// later run maps it successfully.
func (s *Service) reconcilePage(ctx context.Context, items []ports.RawCharge, stores map[string]string, state *syncState) {
	for _, item := range items {
		externalID := stringAt(item, "id")
		if externalID == "" {
			s.logger.WarnContext(ctx, "charge without id skipped",
				"operation", "reconcile_charge",
				"outcome", "skipped",
			)
			continue
		}

		if err := s.reconcileCharge(ctx, externalID, item, stores, state); err != nil {
			s.logger.ErrorContext(ctx, "charge reconciliation failed",
				"operation", "reconcile_charge",
				"outcome", "failure",
				"external_id", externalID,
				"error", err.Error(),
			)
			continue
		}
		state.seen[externalID] = struct{}{}
	}
}

func (s *Service) reconcileCharge(ctx context.Context, externalID string, item ports.RawCharge, stores map[string]string, state *syncState) error {
	mapped, err := chargeFromPayload(item, stores)
	if err != nil {
		return err
	}

	existing, err := s.charges.FindByExternalID(ctx, externalID)
	switch {
	case err == nil:
		if !needsUpdate(s.cfg.ChangeDetection, existing, item) {
			state.skipped++
			return nil
		}
		mapped.SaleOrderName = existing.SaleOrderName
		mapped.CapturedAmount = existing.CapturedAmount
		if err := s.charges.Update(ctx, mapped); err != nil {
			return err
		}
		state.updated++
		return nil
	case isNotFound(err):
		created, err := s.charges.Create(ctx, mapped)
		if err != nil {
			return err
		}
		if linkErr := s.linkCharge(ctx, created); linkErr != nil {
			s.logger.WarnContext(ctx, "order auto-link failed",
				"operation", "link_order",
				"outcome", "failure",
				"external_id", externalID,
				"error", linkErr.Error(),
			)
		}
		state.added++
		return nil
	default:
		return err
	}
}

// pruneObsolete deletes local charges the run did not see, scoped to the
// queried payment-date window when one was supplied.
func (s *Service) pruneObsolete(ctx context.Context, state *syncState, dateFrom, dateTo *time.Time) error {
	seenIDs := make([]string, 0, len(state.seen))
	for id := range state.seen {
		seenIDs = append(seenIDs, id)
	}

	obsolete, err := s.charges.List(ctx, ports.ChargeQuery{
		NotInExternalIDs: seenIDs,
		PaymentDateFrom:  dateFrom,
		PaymentDateTo:    dateTo,
	})
	if err != nil {
		return fmt.Errorf("query obsolete charges: %w", err)
	}
	if len(obsolete) == 0 {
		s.logger.InfoContext(ctx, "no obsolete charges found", "operation", "prune_charges")
		return nil
	}

	ids := make([]string, 0, len(obsolete))
	for _, charge := range obsolete {
		ids = append(ids, charge.ExternalID)
		s.logger.InfoContext(ctx, "charge no longer present remotely",
			"operation", "prune_charges",
			"external_id", charge.ExternalID,
			"payment_date", timeOrEmpty(charge.PaymentDate),
		)
	}

	deleted, err := s.charges.DeleteByExternalIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("delete obsolete charges: %w", err)
	}
	state.deleted = int(deleted)
	return nil
}

// RefreshCharge re-fetches one charge and updates the local record when the
// change detector flags newer remote state.
func (s *Service) RefreshCharge(ctx context.Context, externalID string) (ChargeView, error) {
	existing, err := s.charges.FindByExternalID(ctx, externalID)
	if err != nil {
		return ChargeView{}, err
	}

	raw, err := s.api.GetCharge(ctx, externalID)
	if err != nil {
		return ChargeView{}, err
	}

	if !needsUpdate(s.cfg.ChangeDetection, existing, raw) {
		return s.chargeView(existing), nil
	}

	stores := map[string]string{existing.StoreID: existing.StoreName}
	mapped, err := chargeFromPayload(raw, stores)
	if err != nil {
		return ChargeView{}, err
	}
	mapped.SaleOrderName = existing.SaleOrderName
	mapped.CapturedAmount = existing.CapturedAmount
	if err := s.charges.Update(ctx, mapped); err != nil {
		return ChargeView{}, err
	}

	s.logger.InfoContext(ctx, "charge refreshed",
		"operation", "refresh_charge",
		"outcome", "success",
		"external_id", externalID,
	)
	return s.chargeView(mapped), nil
}

// LinkOrders runs the explicit re-link pass over charges without an order.
func (s *Service) LinkOrders(ctx context.Context) (LinkOrdersResult, error) {
	unlinked, err := s.charges.List(ctx, ports.ChargeQuery{Unlinked: true})
	if err != nil {
		return LinkOrdersResult{}, err
	}

	linked := 0
	for _, charge := range unlinked {
		if charge.OrderID == "" {
			continue
		}
		if err := s.linkCharge(ctx, charge); err != nil {
			if isNotFound(err) {
				continue
			}
			return LinkOrdersResult{}, err
		}
		linked++
	}

	result := LinkOrdersResult{Linked: linked, Message: fmt.Sprintf("%d payments linked to orders", linked)}
	if linked == 0 {
		result.Message = "no new links found"
	}
	return result, nil
}

// linkCharge matches the charge's remote order id against a local order
// name and denormalizes the order's contact blocks onto the charge.
func (s *Service) linkCharge(ctx context.Context, charge domain.Charge) error {
	if charge.OrderID == "" {
		return nil
	}
	order, err := s.orders.GetByName(ctx, charge.OrderID)
	if err != nil {
		return err
	}

	return s.charges.UpdateFields(ctx, charge.ExternalID, map[string]any{
		"sale_order_name":  order.Name,
		"customer_name":    order.CustomerName,
		"customer_email":   order.CustomerEmail,
		"customer_phone":   order.CustomerPhone,
		"billing_name":     order.Billing.Name,
		"billing_email":    order.Billing.Email,
		"billing_phone":    order.Billing.Phone,
		"billing_company":  order.Billing.Company,
		"billing_tax_id":   order.Billing.TaxID,
		"billing_street":   order.Billing.Street,
		"billing_street2":  order.Billing.Street2,
		"billing_city":     order.Billing.City,
		"billing_state":    order.Billing.State,
		"billing_zip":      order.Billing.Zip,
		"billing_country":  order.Billing.Country,
		"shipping_name":    order.Shipping.Name,
		"shipping_email":   order.Shipping.Email,
		"shipping_phone":   order.Shipping.Phone,
		"shipping_company": order.Shipping.Company,
		"shipping_tax_id":  order.Shipping.TaxID,
		"shipping_street":  order.Shipping.Street,
		"shipping_street2": order.Shipping.Street2,
		"shipping_city":    order.Shipping.City,
		"shipping_state":   order.Shipping.State,
		"shipping_zip":     order.Shipping.Zip,
		"shipping_country": order.Shipping.Country,
	})
}

func summaryMessage(summary SyncSummary) string {
	var parts []string
	if summary.Added > 0 {
		parts = append(parts, fmt.Sprintf("%d new payments synchronized", summary.Added))
	}
	if summary.Updated > 0 {
		parts = append(parts, fmt.Sprintf("%d existing payments updated", summary.Updated))
	}
	if summary.Deleted > 0 {
		parts = append(parts, fmt.Sprintf("%d obsolete payments removed", summary.Deleted))
	}
	if summary.Skipped > 0 {
		parts = append(parts, fmt.Sprintf("%d payments unchanged", summary.Skipped))
	}
	if len(parts) == 0 {
		return "no changes found"
	}
	return strings.Join(parts, " and ")
}

func timeOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
