package dataset

// Summarize groups the enriched set by product and computes the per-product
// total value and order count. Output rows appear in first-seen product
// order, which is stable for a given input.
func Summarize(in []EnrichedSale) []SummaryRow {
	index := make(map[string]int, len(in))
	out := make([]SummaryRow, 0, len(in))
	for _, e := range in {
		i, ok := index[e.Product]
		if !ok {
			i = len(out)
			index[e.Product] = i
			out = append(out, SummaryRow{Product: e.Product})
		}
		out[i].TotalSales += e.TotalValue
		out[i].OrderCount++
	}
	return out
}
