// Package config provides configuration models and helpers for ETL runs.
//
// This file adds a lightweight linter/validator for Config values. It performs
// static checks over a decoded Config and returns a list of issues (errors and
// warnings) that callers can surface in a CLI or tests.
package config

import (
	"fmt"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be surfaced
	// to users but may not necessarily block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation/lint finding for a Config.
//
// Path is a dotted path into the config (e.g. "load.db",
// "load.manifest[1].table"). Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect one.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// Validate performs static validation / linting of a run config.
//
// It does not mutate the config. Callers may decide whether to treat warnings
// as fatal.
//
// Example:
//
//	cfg, err := config.Load(path)
//	if err != nil { ... }
//	for _, iss := range config.Validate(cfg) {
//	    fmt.Printf("%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
//	}
func Validate(c Config) []Issue {
	var issues []Issue

	if strings.TrimSpace(c.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "job",
			Message:  "job is empty; metrics and log lines will use the default job name",
		})
	}

	issues = append(issues, validateInputs(c.InputFiles)...)
	issues = append(issues, validateOutputs(c.OutputFiles)...)
	issues = append(issues, validateLoad(c.Load)...)

	return issues
}

// validateInputs checks the two source CSV paths.
func validateInputs(in InputFiles) []Issue {
	var issues []Issue
	if strings.TrimSpace(in.SalesData) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "input_files.sales_data",
			Message:  "sales input path must not be empty",
		})
	}
	if strings.TrimSpace(in.CustomerData) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "input_files.customer_data",
			Message:  "customer input path must not be empty",
		})
	}
	return issues
}

// validateOutputs checks the four destination CSV paths.
func validateOutputs(out OutputFiles) []Issue {
	var issues []Issue
	paths := []struct {
		path, name string
	}{
		{out.TransformedSalesData, "output_files.transformed_sales_data"},
		{out.TransformedCustomerData, "output_files.transformed_customer_data"},
		{out.SummaryTable, "output_files.summary_table"},
		{out.EnrichedSalesData, "output_files.enriched_sales_data"},
	}
	for _, p := range paths {
		if strings.TrimSpace(p.path) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     p.name,
				Message:  "output path must not be empty",
			})
		}
	}
	return issues
}

// validateLoad checks warehouse connection settings and the load manifest.
func validateLoad(l LoadConfig) []Issue {
	var issues []Issue

	db := l.DB
	if strings.TrimSpace(db.DSN) == "" && strings.TrimSpace(db.Database) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "load.db",
			Message:  "either load.db.dsn or load.db.database must be set",
		})
	}
	if db.DSN != "" && db.Host != "" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "load.db.dsn",
			Message:  "both dsn and discrete connection fields are set; dsn wins",
		})
	}

	seen := map[string]int{}
	for i, e := range l.Manifest {
		if strings.TrimSpace(e.Table) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     fmt.Sprintf("load.manifest[%d].table", i),
				Message:  "manifest entry requires a table name",
			})
		}
		if strings.TrimSpace(e.File) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     fmt.Sprintf("load.manifest[%d].file", i),
				Message:  "manifest entry requires a source file",
			})
		}
		if prev, dup := seen[e.Table]; dup && e.Table != "" {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     fmt.Sprintf("load.manifest[%d].table", i),
				Message:  fmt.Sprintf("table %q already appears at load.manifest[%d]; both loads will run", e.Table, prev),
			})
		} else {
			seen[e.Table] = i
		}
	}

	if l.Workers < 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "load.workers",
			Message:  "workers must not be negative",
		})
	}

	return issues
}
