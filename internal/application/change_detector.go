package application

import (
	"github.com/paymentrails/monei-sync/internal/domain"
	"github.com/paymentrails/monei-sync/internal/ports"
)

// Change detection policies. Timestamp-only comparison misses charges whose
// remote payload omits updatedAt while other fields changed, so field diff
// is the default.
const (
	ChangeDetectionFieldDiff = "field_diff"
	ChangeDetectionTimestamp = "timestamp"
)

// needsUpdate reports whether the freshly fetched remote payload is newer
// than the existing local record under the configured policy.
func needsUpdate(policy string, existing domain.Charge, raw ports.RawCharge) bool {
	remoteUpdatedAt := timeAt(raw, "updatedAt")

	if policy == ChangeDetectionTimestamp {
		return remoteUpdatedAt != nil && (existing.UpdatedAt == nil || remoteUpdatedAt.After(*existing.UpdatedAt))
	}

	// Field diff over the lifecycle-relevant subset.
	if stringAt(raw, "status") != existing.Status {
		return true
	}
	if stringAt(raw, "statusCode") != existing.StatusCode {
		return true
	}
	if !minorUnitsAt(raw, "refundedAmount").Equal(existing.RefundedAmount) {
		return true
	}
	switch {
	case remoteUpdatedAt == nil && existing.UpdatedAt == nil:
		return false
	case remoteUpdatedAt == nil || existing.UpdatedAt == nil:
		return true
	default:
		return !remoteUpdatedAt.Equal(*existing.UpdatedAt)
	}
}
