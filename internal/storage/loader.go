package storage

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Entry is one independent unit of load work: a logical table and the CSV
// file that feeds it.
type Entry struct {
	Table string
	File  string
}

// Manifest is the ordered list of tables to load.
type Manifest []Entry

// LoadResult is the typed outcome for one manifest entry. Err is nil on
// success and Rows holds the server-reported count; a failed entry carries
// the error instead of a sentinel count so callers branch on the variant,
// not on parsed log text.
type LoadResult struct {
	Table string
	Rows  int64
	Err   error
}

// Failed reports whether this entry's load failed.
func (r LoadResult) Failed() bool { return r.Err != nil }

// Totals accumulates the per-manifest accounting. Processed and Loaded
// coincide in the current design: every row the server counted was loaded.
type Totals struct {
	Processed int64
	Loaded    int64
	Failures  int
}

// Run attempts every manifest entry against repo and returns one result per
// entry, in manifest order, plus the aggregate totals. A single entry's
// failure never aborts the manifest.
//
// workers bounds concurrency; values <= 1 process entries sequentially in
// manifest order, matching the reference design. Entries are independent, so
// raising workers keeps per-entry failure isolation: each goroutine writes
// only its own result slot and never returns an error into the group.
func Run(ctx context.Context, repo Repository, m Manifest, workers int) ([]LoadResult, Totals) {
	results := make([]LoadResult, len(m))

	if workers <= 1 {
		for i, e := range m {
			results[i] = loadOne(ctx, repo, e)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(workers)
		for i, e := range m {
			i, e := i, e
			g.Go(func() error {
				results[i] = loadOne(ctx, repo, e)
				return nil
			})
		}
		_ = g.Wait()
	}

	var totals Totals
	for _, r := range results {
		if r.Failed() {
			totals.Failures++
			continue
		}
		totals.Processed += r.Rows
		totals.Loaded += r.Rows
	}
	return results, totals
}

func loadOne(ctx context.Context, repo Repository, e Entry) LoadResult {
	rows, err := repo.CopyFile(ctx, e.Table, e.File)
	if err != nil {
		return LoadResult{Table: e.Table, Err: err}
	}
	return LoadResult{Table: e.Table, Rows: rows}
}
