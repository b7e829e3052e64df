package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"salesetl/internal/config"
	"salesetl/internal/metrics"
	"salesetl/internal/metrics/prompush"
)

// main is the entry point for the salesetl binary. It loads the run config,
// optionally initializes a metrics backend, executes the transformation
// pipeline, and then bulk-loads the outputs into the warehouse.
func main() {
	var (
		cfgPath           string
		asOfFlg           string
		metricsBackendFlg string
		pushGatewayURLFlg string
		validate          bool
		skipLoad          bool
	)

	flag.StringVar(&cfgPath, "config", "configs/sales.json", "run config JSON path")
	flag.StringVar(&asOfFlg, "as-of", "", "fix the tenure reference date (YYYY-MM-DD); defaults to today")
	flag.StringVar(&metricsBackendFlg, "metrics-backend", "none", "metrics backend to use (pushgateway, none)")
	flag.StringVar(&pushGatewayURLFlg, "pushgateway-url", "", "Pushgateway base URL (overrides env PUSHGATEWAY_URL)")
	flag.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	flag.BoolVar(&skipLoad, "skip-load", false, "run the transformation pipeline but skip the warehouse load")
	verbose := flag.Bool("v", false, "enable verbose logs")

	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fatalf("%v", err)
	}

	issues := config.Validate(cfg)
	hasError := false
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
		if iss.Severity == config.SeverityError {
			hasError = true
		}
	}
	if hasError {
		log.Printf("Configuration is invalid: %v", cfgPath)
		os.Exit(1)
	}
	if validate {
		log.Printf("Configuration is valid: %v", cfgPath)
		os.Exit(0)
	}

	asOf := time.Now()
	if asOfFlg != "" {
		asOf, err = time.Parse("2006-01-02", asOfFlg)
		if err != nil {
			fatalf("parse -as-of: %v", err)
		}
	}

	// Decide metrics backend: flag → env → default.
	backendName := metricsBackendFlg
	if backendName == "" {
		backendName = os.Getenv("METRICS_BACKEND")
	}
	switch backendName {
	case "pushgateway":
		gwURL := pushGatewayURLFlg
		if gwURL == "" {
			gwURL = os.Getenv("PUSHGATEWAY_URL")
		}
		if gwURL == "" {
			gwURL = "http://localhost:9091"
		}

		jobName := cfg.Job
		if jobName == "" {
			jobName = "sales_etl"
		}

		b, err := prompush.NewBackend(jobName, gwURL)
		if err != nil {
			log.Printf("metrics: failed to init prom push backend: %v; using nop", err)
		} else {
			log.Printf("metrics: url=%v, backend=%v, job_name=%v", gwURL, backendName, jobName)
			metrics.SetBackend(b)
			defer func() {
				if err := metrics.Flush(); err != nil {
					log.Printf("metrics: flush error: %v", err)
				}
			}()
		}

	case "", "none":
		if *verbose {
			log.Printf("metrics: disabled (backend=%q)", backendName)
		}

	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", backendName)
	}

	ctx := context.Background()
	start := time.Now()

	report, err := runPipeline(ctx, cfg, asOf)
	if err != nil {
		log.Fatalf("%v", err)
	}
	report.log()

	if skipLoad {
		log.Printf("load phase skipped (-skip-load)")
	} else {
		runLoad(ctx, cfg)
	}

	if *verbose {
		log.Printf("completed in %s", time.Since(start).Truncate(time.Millisecond))
	}
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
