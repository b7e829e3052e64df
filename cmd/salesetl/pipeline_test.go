package main

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"salesetl/internal/config"
)

func testConfig(dir string) config.Config {
	var cfg config.Config
	cfg.Job = "sales_etl_test"
	cfg.InputFiles.SalesData = filepath.Join(dir, "sales_data.csv")
	cfg.InputFiles.CustomerData = filepath.Join(dir, "customer_data.csv")
	cfg.OutputFiles.TransformedSalesData = filepath.Join(dir, "transformed_sales_data.csv")
	cfg.OutputFiles.TransformedCustomerData = filepath.Join(dir, "transformed_customer_data.csv")
	cfg.OutputFiles.SummaryTable = filepath.Join(dir, "summary_table.csv")
	cfg.OutputFiles.EnrichedSalesData = filepath.Join(dir, "enriched_sales_df.csv")
	return cfg
}

func writeInput(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readOutput(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return rows
}

/*
TestRunPipelineEndToEnd runs the whole transformation on a two-order,
one-customer fixture. Order 2 has quantity 0 and must be filtered, so a
single enriched row survives: total value 300, Regular Order, with the
customer's name and email merged in. The summary collapses to one product
line with total_sales 300 and order_count 1.
*/
func TestRunPipelineEndToEnd(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	writeInput(t, cfg.InputFiles.SalesData,
		"order_id,customer_id,product,quantity,price,order_date\n"+
			"1,10,widget,3,100,2024-03-15\n"+
			"2,11,gadget,0,50,2024-03-16\n")
	writeInput(t, cfg.InputFiles.CustomerData,
		"customer_id,customer_name,email,signup_date\n"+
			"10,Ana,ana@example.com,2023-01-02\n")

	asOf := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	report, err := runPipeline(context.Background(), cfg, asOf)
	if err != nil {
		t.Fatalf("runPipeline: %v", err)
	}
	if len(report.Errors) != 0 {
		t.Fatalf("errors = %v", report.Errors)
	}
	if report.SalesRows != 1 || report.CustomerRows != 1 || report.EnrichedRows != 1 || report.SummaryRows != 1 {
		t.Fatalf("report = %+v", report)
	}
	if len(report.Outputs) != 4 {
		t.Fatalf("outputs = %v; want all four", report.Outputs)
	}

	sales := readOutput(t, cfg.OutputFiles.TransformedSalesData)
	wantSales := []string{"1", "10", "widget", "3", "100", "2024-03-15", "300", "Regular Order"}
	if len(sales) != 2 || !reflect.DeepEqual(sales[1], wantSales) {
		t.Fatalf("sales output = %v; want %v", sales, wantSales)
	}

	enriched := readOutput(t, cfg.OutputFiles.EnrichedSalesData)
	if len(enriched) != 2 {
		t.Fatalf("enriched rows = %d; want header + 1", len(enriched))
	}
	if enriched[1][8] != "Ana" || enriched[1][9] != "ana@example.com" {
		t.Fatalf("enriched row = %v", enriched[1])
	}

	summary := readOutput(t, cfg.OutputFiles.SummaryTable)
	if !reflect.DeepEqual(summary[1], []string{"widget", "300", "1"}) {
		t.Fatalf("summary row = %v", summary[1])
	}

	customers := readOutput(t, cfg.OutputFiles.TransformedCustomerData)
	// 2023-01-02 to 2024-06-01 is 516 days.
	if !reflect.DeepEqual(customers[1], []string{"10", "Ana", "ana@example.com", "2023-01-02", "516"}) {
		t.Fatalf("customer row = %v", customers[1])
	}
}

/*
TestRunPipelineHighValueBoundary pins the strict classification threshold:
exactly 1000 stays a regular order, anything above becomes high value.
*/
func TestRunPipelineHighValueBoundary(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	writeInput(t, cfg.InputFiles.SalesData,
		"order_id,customer_id,product,quantity,price,order_date\n"+
			"1,10,widget,10,100,2024-03-15\n"+
			"2,10,widget,10,100.01,2024-03-15\n")
	writeInput(t, cfg.InputFiles.CustomerData,
		"customer_id,customer_name,email,signup_date\n"+
			"10,Ana,ana@example.com,2023-01-02\n")

	if _, err := runPipeline(context.Background(), cfg, time.Now().UTC()); err != nil {
		t.Fatalf("runPipeline: %v", err)
	}
	rows := readOutput(t, cfg.OutputFiles.TransformedSalesData)
	if rows[1][7] != "Regular Order" {
		t.Fatalf("total 1000 classified as %q; want Regular Order", rows[1][7])
	}
	if rows[2][7] != "High-Value Order" {
		t.Fatalf("total 1000.1 classified as %q; want High-Value Order", rows[2][7])
	}
}

/*
TestRunPipelineSchemaErrorIsolation removes the quantity column from the
sales file. The sales branch must fail validation while the customer branch
still produces its output; join and summary are skipped.
*/
func TestRunPipelineSchemaErrorIsolation(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	writeInput(t, cfg.InputFiles.SalesData,
		"order_id,customer_id,product,price,order_date\n"+
			"1,10,widget,100,2024-03-15\n")
	writeInput(t, cfg.InputFiles.CustomerData,
		"customer_id,customer_name,email,signup_date\n"+
			"10,Ana,ana@example.com,2023-01-02\n")

	report, err := runPipeline(context.Background(), cfg, time.Now().UTC())
	if err != nil {
		t.Fatalf("runPipeline: %v", err)
	}
	if len(report.Errors) != 1 {
		t.Fatalf("errors = %v; want exactly the sales schema error", report.Errors)
	}
	if report.CustomerRows != 1 {
		t.Fatalf("customer branch did not complete: %+v", report)
	}
	if _, err := os.Stat(cfg.OutputFiles.TransformedCustomerData); err != nil {
		t.Fatalf("customer output missing: %v", err)
	}
	if _, err := os.Stat(cfg.OutputFiles.SummaryTable); err == nil {
		t.Fatalf("summary written despite missing sales dataset")
	}
	if len(report.Skipped) == 0 {
		t.Fatalf("expected skip notices, got none")
	}
}

func TestRunPipelineMissingFile(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	writeInput(t, cfg.InputFiles.CustomerData,
		"customer_id,customer_name,email,signup_date\n"+
			"10,Ana,ana@example.com,2023-01-02\n")

	report, err := runPipeline(context.Background(), cfg, time.Now().UTC())
	if err != nil {
		t.Fatalf("runPipeline: %v", err)
	}
	if len(report.Errors) != 1 {
		t.Fatalf("errors = %v", report.Errors)
	}
	if report.CustomerRows != 1 {
		t.Fatalf("customer branch should survive a missing sales file: %+v", report)
	}
}

/*
TestRunPipelineOutputsRevalidate feeds a transformed sales output back
through the loader: the written file still satisfies the source contract,
so chained runs over intermediate artifacts keep working.
*/
func TestRunPipelineOutputsRevalidate(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	writeInput(t, cfg.InputFiles.SalesData,
		"order_id,customer_id,product,quantity,price,order_date\n"+
			"1,10,widget,3,100,2024-03-15\n")
	writeInput(t, cfg.InputFiles.CustomerData,
		"customer_id,customer_name,email,signup_date\n"+
			"10,Ana,ana@example.com,2023-01-02\n")

	if _, err := runPipeline(context.Background(), cfg, time.Now().UTC()); err != nil {
		t.Fatalf("runPipeline: %v", err)
	}
	rows, err := loadDataset(context.Background(), cfg.OutputFiles.TransformedSalesData)
	if err != nil {
		t.Fatalf("reloading transformed output: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("reloaded rows = %d", len(rows))
	}
}
