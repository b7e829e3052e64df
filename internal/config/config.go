// Package config defines the canonical, JSON-serializable configuration model
// for the sales ETL run. It is intentionally small, explicit, and dependency-
// free so that a run description can be loaded from disk and passed through
// the program without additional glue code.
//
// Design goals:
//
//  1. Stability: changes to this package should be additive and backwards-
//     compatible whenever possible.
//  2. Clarity: Go field names mirror the JSON structure of run files under
//     configs/*.json.
//  3. Minimalism: no third-party config libraries; decoding is performed by
//     the standard library.
//
// Example (trimmed):
//
//	{
//	  "job": "sales_etl",
//	  "input_files":  { "sales_data": "sales_data.csv", "customer_data": "customer_data.csv" },
//	  "output_files": { "transformed_sales_data": "out/transformed_sales_data.csv", ... },
//	  "load": {
//	    "db": { "host": "localhost", "port": 5432, "database": "sales_db", "user": "postgres", "password": "..." },
//	    "manifest": [ { "table": "sales_summary", "file": "out/summary_table.csv" } ]
//	  }
//	}
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
)

// Config describes a full ETL run: where input CSVs come from, where the
// transformed CSVs are written, and how they are bulk-loaded afterwards.
// There is deliberately no process-wide mutable state; a Config value is
// decoded once and passed explicitly into the pipeline and loader entry
// points.
type Config struct {
	// Job names the run for logging and metrics labeling.
	Job string `json:"job"`

	// InputFiles holds the two source CSV paths.
	InputFiles InputFiles `json:"input_files"`

	// OutputFiles holds the four destination CSV paths.
	OutputFiles OutputFiles `json:"output_files"`

	// Load configures the bulk-load phase.
	Load LoadConfig `json:"load"`
}

// InputFiles enumerates the source datasets. File identity, not content,
// decides which required-column contract and rule path applies.
type InputFiles struct {
	SalesData    string `json:"sales_data"`
	CustomerData string `json:"customer_data"`
}

// OutputFiles enumerates the transformed datasets written by the pipeline.
type OutputFiles struct {
	TransformedSalesData    string `json:"transformed_sales_data"`
	TransformedCustomerData string `json:"transformed_customer_data"`
	SummaryTable            string `json:"summary_table"`
	EnrichedSalesData       string `json:"enriched_sales_data"`
}

// LoadConfig configures the bulk loader.
type LoadConfig struct {
	// DB holds warehouse connection settings.
	DB DBConfig `json:"db"`

	// Manifest lists the logical tables to load, in order. Each entry is an
	// independent unit of work; one entry failing does not affect the others.
	Manifest []ManifestEntry `json:"manifest"`

	// Workers bounds how many manifest entries may load concurrently.
	// Zero or one keeps the reference sequential behavior.
	Workers int `json:"workers"`
}

// ManifestEntry maps a logical table name to the CSV file that feeds it.
type ManifestEntry struct {
	Table string `json:"table"`
	File  string `json:"file"`
}

// DBConfig configures the warehouse connection. Either a full DSN or the
// discrete host/port/database/user/password fields may be provided; DSN wins
// when both are set.
type DBConfig struct {
	DSN      string `json:"dsn"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Database string `json:"database"`
	User     string `json:"user"`
	Password string `json:"password"`
}

// ConnString returns the pgx connection string for the configured database.
// Credentials are URL-escaped so passwords with reserved characters survive.
func (d DBConfig) ConnString() string {
	if d.DSN != "" {
		return d.DSN
	}
	host := d.Host
	if host == "" {
		host = "localhost"
	}
	port := d.Port
	if port == 0 {
		port = 5432
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", host, port),
		Path:   "/" + d.Database,
	}
	if d.User != "" {
		u.User = url.UserPassword(d.User, d.Password)
	}
	return u.String()
}

// Load reads and decodes a run config from path.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	var cfg Config
	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultManifest derives a load manifest from the output files when the run
// config does not spell one out. Table names follow the warehouse schema the
// loader targets. Entries with an empty output path are omitted.
func (c Config) DefaultManifest() []ManifestEntry {
	candidates := []ManifestEntry{
		{Table: "sales_summary", File: c.OutputFiles.SummaryTable},
		{Table: "sales_data", File: c.OutputFiles.TransformedSalesData},
		{Table: "customer_data", File: c.OutputFiles.TransformedCustomerData},
		{Table: "sales_enriched_data", File: c.OutputFiles.EnrichedSalesData},
	}
	out := make([]ManifestEntry, 0, len(candidates))
	for _, e := range candidates {
		if e.File != "" {
			out = append(out, e)
		}
	}
	return out
}

// ManifestEntries returns the configured manifest, falling back to
// DefaultManifest when the run config omits one.
func (c Config) ManifestEntries() []ManifestEntry {
	if len(c.Load.Manifest) > 0 {
		return c.Load.Manifest
	}
	return c.DefaultManifest()
}
