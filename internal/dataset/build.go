package dataset

import (
	"time"

	"salesetl/pkg/records"
)

// SalesFromRecords converts coerced, sanitized records into typed sales
// records. Callers must have run Coerce and Require first so that order_id
// and customer_id are present ints. Non-identity fields degrade to zero
// values when absent; a nil quantity becomes 0 and is removed later by the
// quantity filter, matching the null-propagation contract.
func SalesFromRecords(in []records.Record) []SalesRecord {
	out := make([]SalesRecord, 0, len(in))
	for _, r := range in {
		rec := SalesRecord{
			OrderID:    asInt(r["order_id"]),
			CustomerID: asInt(r["customer_id"]),
			Product:    asString(r["product"]),
			Quantity:   asInt(r["quantity"]),
			Price:      asFloat(r["price"]),
			OrderDate:  asDate(r["order_date"]),
		}
		out = append(out, rec)
	}
	return out
}

// CustomersFromRecords converts coerced, sanitized, de-duplicated records
// into typed customer records.
func CustomersFromRecords(in []records.Record) []CustomerRecord {
	out := make([]CustomerRecord, 0, len(in))
	for _, r := range in {
		rec := CustomerRecord{
			CustomerID: asInt(r["customer_id"]),
			Name:       asString(r["customer_name"]),
			Email:      asString(r["email"]),
			SignupDate: asDate(r["signup_date"]),
		}
		out = append(out, rec)
	}
	return out
}

func asInt(v any) int {
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	}
	return 0
}

func asFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	}
	return 0
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func asDate(v any) *time.Time {
	if t, ok := v.(time.Time); ok {
		return &t
	}
	return nil
}
