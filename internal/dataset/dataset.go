// Package dataset holds the typed record model for the pipeline and the pure
// transformation stages over it: business rules, the enrichment join, and the
// product aggregation. Each stage is a function from one typed slice to
// another; nothing mutates a shared dynamic table.
package dataset

import "time"

// Order classifications produced by the sales rule path.
const (
	HighValueOrder = "High-Value Order"
	RegularOrder   = "Regular Order"
)

// SalesRecord is one sales transaction after coercion and identity
// sanitization. OrderDate is nil when the source value failed date parsing;
// such rows survive, only identifier failures drop rows.
type SalesRecord struct {
	OrderID    int
	CustomerID int
	Product    string
	Quantity   int
	Price      float64
	OrderDate  *time.Time

	// Derived by ApplySalesRules.
	TotalValue float64
	OrderType  string
}

// CustomerRecord is one customer row after coercion and identity
// sanitization. TenureDays is nil when the signup date was unresolvable.
type CustomerRecord struct {
	CustomerID int
	Name       string
	Email      string
	SignupDate *time.Time

	// Derived by ApplyCustomerRules.
	TenureDays *int
}

// EnrichedSale is a SalesRecord with customer display fields merged in by the
// left join. Both pointers are nil for unmatched sales rows.
type EnrichedSale struct {
	SalesRecord
	CustomerName *string
	Email        *string
}

// SummaryRow aggregates the enriched set for a single product.
type SummaryRow struct {
	Product    string
	TotalSales float64
	OrderCount int
}
