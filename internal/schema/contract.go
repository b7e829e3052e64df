// Package schema declares the dataset contracts for the two source kinds and
// implements required-column validation. One missing column invalidates the
// whole file; there is no partial acceptance.
package schema

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Kind identifies a source dataset family. The kind is decided by file
// identity, never by inspecting content.
type Kind string

const (
	KindSales    Kind = "sales"
	KindCustomer Kind = "customer"
)

// Contract lists the columns a dataset kind must carry. Order matters: missing
// columns are reported in declaration order.
type Contract struct {
	Kind     Kind
	Required []string
}

var (
	// Sales is the contract for sales transaction files.
	Sales = Contract{
		Kind:     KindSales,
		Required: []string{"order_id", "customer_id", "quantity", "order_date"},
	}

	// Customer is the contract for customer record files.
	Customer = Contract{
		Kind:     KindCustomer,
		Required: []string{"customer_id", "customer_name", "email", "signup_date"},
	}
)

// ForKind returns the contract for a kind.
func ForKind(k Kind) (Contract, bool) {
	switch k {
	case KindSales:
		return Sales, true
	case KindCustomer:
		return Customer, true
	}
	return Contract{}, false
}

// KindOf resolves the dataset kind from the file name. Unrecognized files
// yield an UnsupportedSourceError.
func KindOf(path string) (Kind, error) {
	base := filepath.Base(path)
	switch {
	case strings.Contains(base, "sales_data"):
		return KindSales, nil
	case strings.Contains(base, "customer_data"):
		return KindCustomer, nil
	}
	return "", &UnsupportedSourceError{File: path}
}

// Missing returns the required columns absent from cols, in declaration order.
func (c Contract) Missing(cols []string) []string {
	present := make(map[string]struct{}, len(cols))
	for _, col := range cols {
		present[col] = struct{}{}
	}
	var missing []string
	for _, req := range c.Required {
		if _, ok := present[req]; !ok {
			missing = append(missing, req)
		}
	}
	return missing
}

// Validate checks cols against the contract and returns an *Error naming the
// file and every missing column, or nil when the dataset conforms.
func (c Contract) Validate(file string, cols []string) error {
	if missing := c.Missing(cols); len(missing) > 0 {
		return &Error{File: file, Missing: missing}
	}
	return nil
}

// Error reports required columns missing from a source file. The whole file is
// rejected; no dataset flows downstream.
type Error struct {
	File    string
	Missing []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("the following columns are missing in %q: %s", e.File, strings.Join(e.Missing, ", "))
}

// UnsupportedSourceError reports a file whose identity maps to no known
// dataset kind.
type UnsupportedSourceError struct {
	File string
}

func (e *UnsupportedSourceError) Error() string {
	return fmt.Sprintf("unsupported file %q", e.File)
}
