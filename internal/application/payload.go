package application

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Null-safe extraction over decoded GraphQL payloads. Every helper walks the
// key path and returns its zero/default when any intermediate node is absent
// or not an object, so a malformed charge can never panic the batch.

func nodeAt(data map[string]any, keys ...string) any {
	var current any = data
	for _, key := range keys {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = obj[key]
		if current == nil {
			return nil
		}
	}
	return current
}

func stringAt(data map[string]any, keys ...string) string {
	switch v := nodeAt(data, keys...).(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		// statusCode arrives numeric on some charges.
		return decimal.NewFromFloat(v).String()
	default:
		return ""
	}
}

func boolAt(data map[string]any, keys ...string) bool {
	v, _ := nodeAt(data, keys...).(bool)
	return v
}

func intAt(data map[string]any, keys ...string) int {
	f, ok := numberAt(data, keys...)
	if !ok {
		return 0
	}
	return int(f)
}

func numberAt(data map[string]any, keys ...string) (float64, bool) {
	switch v := nodeAt(data, keys...).(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// minorUnitsAt converts an integer minor-currency-unit field to a decimal
// amount. Absent or null values map to zero.
func minorUnitsAt(data map[string]any, keys ...string) decimal.Decimal {
	f, ok := numberAt(data, keys...)
	if !ok {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f).Div(decimal.NewFromInt(100))
}

// timeAt parses a Unix-epoch-seconds field. Zero, negative or non-numeric
// input maps to absent, never an error.
func timeAt(data map[string]any, keys ...string) *time.Time {
	f, ok := numberAt(data, keys...)
	if !ok || f <= 0 {
		return nil
	}
	t := time.Unix(int64(f), 0).UTC()
	return &t
}

// jsonAt re-serializes a subtree so opaque bundles (session/trace details,
// metadata) are stored exactly as received.
func jsonAt(data map[string]any, keys ...string) json.RawMessage {
	node := nodeAt(data, keys...)
	if node == nil {
		return nil
	}
	raw, err := json.Marshal(node)
	if err != nil {
		return nil
	}
	return raw
}
