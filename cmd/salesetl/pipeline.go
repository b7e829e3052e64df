// This file wires the transformation pipeline end-to-end: load + validate the
// two source CSVs, run the per-kind transform chains, join and aggregate, and
// write the four output CSVs. The CLI layer stays thin: per-file failures are
// reported and the run continues with whatever datasets did load.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"salesetl/internal/config"
	"salesetl/internal/dataset"
	"salesetl/internal/datasource/file"
	"salesetl/internal/metrics"
	csvparser "salesetl/internal/parser/csv"
	"salesetl/internal/schema"
	"salesetl/internal/transformer"
	"salesetl/internal/transformer/builtin"
	"salesetl/pkg/records"
)

// MissingFileError reports an absent source CSV. Only that file's pipeline is
// aborted; the sibling dataset still flows through.
type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("file %s is missing", e.Path)
}

// RunReport summarizes one pipeline run for the operator: row counts per
// stage, which outputs were produced, and which stages were skipped.
type RunReport struct {
	SalesRows    int
	CustomerRows int
	EnrichedRows int
	SummaryRows  int

	Outputs []string
	Skipped []string
	Errors  []string
}

func (r *RunReport) log() {
	log.Printf("pipeline: sales=%d customers=%d enriched=%d summary=%d",
		r.SalesRows, r.CustomerRows, r.EnrichedRows, r.SummaryRows)
	for _, s := range r.Skipped {
		log.Printf("pipeline: skipped %s", s)
	}
	for _, e := range r.Errors {
		log.Printf("pipeline: %s", e)
	}
	if len(r.Outputs) == 0 {
		log.Printf("pipeline: no outputs produced")
		return
	}
	for _, o := range r.Outputs {
		log.Printf("pipeline: wrote %s", o)
	}
}

// loadDataset opens, parses, and schema-validates one source CSV. The
// contract is chosen by file identity. Any error rejects the whole file; no
// partially validated dataset flows downstream.
func loadDataset(ctx context.Context, path string) ([]records.Record, error) {
	kind, err := schema.KindOf(path)
	if err != nil {
		return nil, err
	}
	contract, _ := schema.ForKind(kind)

	src := file.NewLocal(path)
	rc, err := src.Open(ctx)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &MissingFileError{Path: path}
		}
		return nil, err
	}
	defer rc.Close()

	p := csvparser.NewParser(csvparser.Options{HasHeader: true, TrimSpace: true})
	rows, header, skipped, err := p.Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if skipped > 0 {
		log.Printf("%s: skipped %d malformed rows", path, skipped)
	}

	if err := contract.Validate(path, header); err != nil {
		return nil, err
	}
	return rows, nil
}

// transformSales runs the sales side: coerce typed columns (unparsable cells
// become nil), drop rows with a nil identifier, then apply the business
// rules (total value, quantity filter, classification).
func transformSales(in []records.Record) []dataset.SalesRecord {
	chain := transformer.Chain{
		builtin.Coerce{Types: map[string]string{
			"order_id":    "int",
			"customer_id": "int",
			"quantity":    "int",
			"price":       "float",
			"order_date":  "date",
		}},
		builtin.Require{Fields: []string{"order_id", "customer_id"}},
	}
	recs := chain.Apply(in)
	return dataset.ApplySalesRules(dataset.SalesFromRecords(recs))
}

// transformCustomers runs the customer side: coerce, drop rows with a nil
// customer identifier, collapse duplicate identifiers (first wins) so the
// join can never multiply sales rows, then compute tenure relative to asOf.
func transformCustomers(in []records.Record, asOf time.Time) []dataset.CustomerRecord {
	chain := transformer.Chain{
		builtin.Coerce{Types: map[string]string{
			"customer_id": "int",
			"signup_date": "date",
		}},
		builtin.Require{Fields: []string{"customer_id"}},
		builtin.DeDup{Keys: []string{"customer_id"}},
	}
	recs := chain.Apply(in)
	return dataset.ApplyCustomerRules(dataset.CustomersFromRecords(recs), asOf)
}

// runPipeline executes the full transformation: both source files, the join,
// the aggregation, and the four CSV outputs. A missing or invalid source
// aborts only its own branch; downstream stages that need it are skipped
// with a notice. The returned report names everything that was produced.
func runPipeline(ctx context.Context, cfg config.Config, asOf time.Time) (*RunReport, error) {
	report := &RunReport{}

	var sales []dataset.SalesRecord
	var customers []dataset.CustomerRecord
	salesOK, customersOK := false, false

	start := time.Now()
	rawSales, err := loadDataset(ctx, cfg.InputFiles.SalesData)
	metrics.RecordStep(cfg.Job, "load_sales", err, time.Since(start))
	if err != nil {
		log.Printf("Error: %v", err)
		report.Errors = append(report.Errors, fmt.Sprintf("sales input: %v", err))
	} else {
		metrics.RecordRows(cfg.Job, "sales_parsed", int64(len(rawSales)))
		sales = transformSales(rawSales)
		salesOK = true
		report.SalesRows = len(sales)
		metrics.RecordRows(cfg.Job, "sales_filtered", int64(len(sales)))
	}

	start = time.Now()
	rawCustomers, err := loadDataset(ctx, cfg.InputFiles.CustomerData)
	metrics.RecordStep(cfg.Job, "load_customers", err, time.Since(start))
	if err != nil {
		log.Printf("Error: %v", err)
		report.Errors = append(report.Errors, fmt.Sprintf("customer input: %v", err))
	} else {
		metrics.RecordRows(cfg.Job, "customers_parsed", int64(len(rawCustomers)))
		customers = transformCustomers(rawCustomers, asOf)
		customersOK = true
		report.CustomerRows = len(customers)
	}

	writeOutput := func(path, what string, write func() error) {
		if err := write(); err != nil {
			log.Printf("Error saving data to %s: %v", path, err)
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", what, err))
			return
		}
		report.Outputs = append(report.Outputs, path)
	}

	if customersOK {
		writeOutput(cfg.OutputFiles.TransformedCustomerData, "transformed customer data", func() error {
			return dataset.WriteCustomersCSV(cfg.OutputFiles.TransformedCustomerData, customers)
		})
	} else {
		report.Skipped = append(report.Skipped, "transformed customer output (customer dataset unavailable)")
	}

	if salesOK {
		writeOutput(cfg.OutputFiles.TransformedSalesData, "transformed sales data", func() error {
			return dataset.WriteSalesCSV(cfg.OutputFiles.TransformedSalesData, sales)
		})
	} else {
		report.Skipped = append(report.Skipped, "transformed sales output (sales dataset unavailable)")
	}

	if salesOK && customersOK {
		start = time.Now()
		enriched := dataset.EnrichSales(sales, customers)
		summary := dataset.Summarize(enriched)
		metrics.RecordStep(cfg.Job, "enrich", nil, time.Since(start))
		metrics.RecordRows(cfg.Job, "enriched", int64(len(enriched)))

		report.EnrichedRows = len(enriched)
		report.SummaryRows = len(summary)

		writeOutput(cfg.OutputFiles.SummaryTable, "summary table", func() error {
			return dataset.WriteSummaryCSV(cfg.OutputFiles.SummaryTable, summary)
		})
		writeOutput(cfg.OutputFiles.EnrichedSalesData, "enriched sales data", func() error {
			return dataset.WriteEnrichedCSV(cfg.OutputFiles.EnrichedSalesData, enriched)
		})
	} else {
		report.Skipped = append(report.Skipped, "join and summary (both datasets required)")
	}

	return report, nil
}
