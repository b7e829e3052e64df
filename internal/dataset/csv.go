package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Output headers. Columns appear in the order the fields were added to the
// dataset: source columns first, then derived columns. The loader streams
// these files straight into the warehouse, so the order must match the
// destination tables exactly.
var (
	salesHeader    = []string{"order_id", "customer_id", "product", "quantity", "price", "order_date", "total_value", "order_type"}
	customerHeader = []string{"customer_id", "customer_name", "email", "signup_date", "customer_tenure"}
	summaryHeader  = []string{"product", "total_sales", "order_count"}
	enrichedHeader = append(append([]string{}, salesHeader...), "customer_name", "email")
)

// WriteSalesCSV writes the transformed sales dataset with a header row and no
// index column.
func WriteSalesCSV(path string, recs []SalesRecord) error {
	return writeCSV(path, salesHeader, len(recs), func(i int) []string {
		return salesRow(recs[i])
	})
}

// WriteCustomersCSV writes the transformed customer dataset.
func WriteCustomersCSV(path string, recs []CustomerRecord) error {
	return writeCSV(path, customerHeader, len(recs), func(i int) []string {
		r := recs[i]
		return []string{
			strconv.Itoa(r.CustomerID),
			r.Name,
			r.Email,
			formatDate(r.SignupDate),
			formatIntPtr(r.TenureDays),
		}
	})
}

// WriteSummaryCSV writes the per-product summary.
func WriteSummaryCSV(path string, rows []SummaryRow) error {
	return writeCSV(path, summaryHeader, len(rows), func(i int) []string {
		r := rows[i]
		return []string{
			r.Product,
			formatFloat(r.TotalSales),
			strconv.Itoa(r.OrderCount),
		}
	})
}

// WriteEnrichedCSV writes the enriched sales dataset.
func WriteEnrichedCSV(path string, recs []EnrichedSale) error {
	return writeCSV(path, enrichedHeader, len(recs), func(i int) []string {
		r := recs[i]
		return append(salesRow(r.SalesRecord), derefStr(r.CustomerName), derefStr(r.Email))
	})
}

func salesRow(r SalesRecord) []string {
	return []string{
		strconv.Itoa(r.OrderID),
		strconv.Itoa(r.CustomerID),
		r.Product,
		strconv.Itoa(r.Quantity),
		formatFloat(r.Price),
		formatDate(r.OrderDate),
		formatFloat(r.TotalValue),
		r.OrderType,
	}
}

// writeCSV streams n rows through encoding/csv into path. The file is created
// fresh on every run; partial files from failed runs are overwritten.
func writeCSV(path string, header []string, n int, row func(i int) []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header to %s: %w", path, err)
	}
	for i := 0; i < n; i++ {
		if err := w.Write(row(i)); err != nil {
			return fmt.Errorf("write row to %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}

// formatFloat renders with the shortest round-trip representation, so
// quantity*price products carry no rounding drift into the warehouse.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatDate renders a nullable date as 2006-01-02 or empty.
func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatIntPtr(i *int) string {
	if i == nil {
		return ""
	}
	return strconv.Itoa(*i)
}

func derefStr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
