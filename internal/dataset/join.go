package dataset

// EnrichSales left-joins the rule-processed sales set against the customer
// set on customer identifier, merging in only the customer name and email.
// Every sales row survives exactly once: unmatched rows carry nil for the
// merged fields, and the customer set is expected to be de-duplicated
// upstream so at most one match exists per sales row.
func EnrichSales(sales []SalesRecord, customers []CustomerRecord) []EnrichedSale {
	byID := make(map[int]CustomerRecord, len(customers))
	for _, c := range customers {
		if _, exists := byID[c.CustomerID]; !exists {
			byID[c.CustomerID] = c
		}
	}

	out := make([]EnrichedSale, 0, len(sales))
	for _, s := range sales {
		e := EnrichedSale{SalesRecord: s}
		if c, ok := byID[s.CustomerID]; ok {
			name, email := c.Name, c.Email
			e.CustomerName = &name
			e.Email = &email
		}
		out = append(out, e)
	}
	return out
}
