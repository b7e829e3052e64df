package dataset

import "time"

// highValueThreshold splits order classifications. The comparison is strictly
// greater-than: a total of exactly 1000 is a Regular Order.
const highValueThreshold = 1000

// ApplySalesRules runs the sales rule path in order: compute total value,
// drop non-positive quantities, classify the survivors. Total value is always
// recomputed here, never carried over from an earlier pass.
func ApplySalesRules(in []SalesRecord) []SalesRecord {
	out := make([]SalesRecord, 0, len(in))
	for _, r := range in {
		r.TotalValue = float64(r.Quantity) * r.Price
		if r.Quantity <= 0 {
			continue
		}
		if r.TotalValue > highValueThreshold {
			r.OrderType = HighValueOrder
		} else {
			r.OrderType = RegularOrder
		}
		out = append(out, r)
	}
	return out
}

// ApplyCustomerRules computes tenure in whole days relative to asOf. Rows
// with an unresolvable signup date keep a nil tenure and propagate; they are
// never dropped here. Callers inject asOf so runs are reproducible in tests.
func ApplyCustomerRules(in []CustomerRecord, asOf time.Time) []CustomerRecord {
	day := truncateDay(asOf)
	out := make([]CustomerRecord, 0, len(in))
	for _, r := range in {
		if r.SignupDate != nil {
			d := int(day.Sub(truncateDay(*r.SignupDate)).Hours() / 24)
			r.TenureDays = &d
		}
		out = append(out, r)
	}
	return out
}

// truncateDay normalizes a timestamp to midnight UTC so day arithmetic is
// exact regardless of the wall-clock moment the pipeline runs.
func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
