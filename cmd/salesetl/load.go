package main

import (
	"context"
	"log"
	"time"

	"salesetl/internal/config"
	"salesetl/internal/metrics"
	"salesetl/internal/storage"
	"salesetl/internal/storage/postgres"
)

// runLoad bulk-loads the manifest into the warehouse. A connection failure
// aborts the whole load phase but never touches the transformed outputs
// already on disk; a single table's failure only skips that table. The
// repository is released exactly once on every path.
func runLoad(ctx context.Context, cfg config.Config) {
	manifest := make(storage.Manifest, 0, 4)
	for _, e := range cfg.ManifestEntries() {
		manifest = append(manifest, storage.Entry{Table: e.Table, File: e.File})
	}
	if len(manifest) == 0 {
		log.Printf("load: empty manifest; nothing to do")
		return
	}

	start := time.Now()
	repo, err := postgres.New(ctx, postgres.Config{ConnString: cfg.Load.DB.ConnString()})
	metrics.RecordStep(cfg.Job, "connect", err, time.Since(start))
	if err != nil {
		log.Printf("Database connection error: %v", err)
		log.Printf("load phase aborted; transformed outputs remain on disk")
		return
	}
	defer repo.Close()

	start = time.Now()
	results, totals := storage.Run(ctx, repo, manifest, cfg.Load.Workers)
	metrics.RecordStep(cfg.Job, "load", nil, time.Since(start))

	for _, r := range results {
		metrics.RecordTable(cfg.Job, r.Table, r.Err)
		if r.Failed() {
			log.Printf("Error loading table %q: %v", r.Table, r.Err)
			continue
		}
		log.Printf("Table %q: %d records loaded successfully.", r.Table, r.Rows)
	}
	metrics.RecordRows(cfg.Job, "loaded", totals.Loaded)

	log.Printf("Total records processed: %d", totals.Processed)
	log.Printf("Total records loaded: %d", totals.Loaded)
	if totals.Failures > 0 {
		log.Printf("%d of %d table loads failed", totals.Failures, len(results))
	}
}
