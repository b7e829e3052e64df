package storage

import (
	"context"
	"errors"
	"sync"
	"testing"
)

// fakeRepo maps table names to canned outcomes; unknown tables fail.
type fakeRepo struct {
	mu    sync.Mutex
	rows  map[string]int64
	calls []string
}

func (f *fakeRepo) CopyFile(ctx context.Context, table, path string) (int64, error) {
	f.mu.Lock()
	f.calls = append(f.calls, table)
	f.mu.Unlock()
	n, ok := f.rows[table]
	if !ok {
		return 0, errors.New("no such file or directory")
	}
	return n, nil
}

func (f *fakeRepo) Close() {}

/*
TestRunIsolatesFailures drives the four-table manifest where the second
entry's file is absent: the loader must report that single failure, keep
the other three results with their row counts, and total only the
successful rows.
*/
func TestRunIsolatesFailures(t *testing.T) {
	repo := &fakeRepo{rows: map[string]int64{
		"sales_summary":       5,
		"customer_data":       4,
		"sales_enriched_data": 9,
	}}
	m := Manifest{
		{Table: "sales_summary", File: "summary.csv"},
		{Table: "sales_data", File: "missing.csv"},
		{Table: "customer_data", File: "customers.csv"},
		{Table: "sales_enriched_data", File: "enriched.csv"},
	}

	results, totals := Run(context.Background(), repo, m, 0)
	if len(results) != 4 {
		t.Fatalf("results = %d; want 4", len(results))
	}
	if !results[1].Failed() || results[1].Table != "sales_data" {
		t.Fatalf("entry 1 should fail: %+v", results[1])
	}
	for _, i := range []int{0, 2, 3} {
		if results[i].Failed() {
			t.Fatalf("entry %d should succeed: %+v", i, results[i])
		}
	}
	if results[0].Rows != 5 || results[2].Rows != 4 || results[3].Rows != 9 {
		t.Fatalf("row counts wrong: %+v", results)
	}
	if totals.Failures != 1 || totals.Processed != 18 || totals.Loaded != 18 {
		t.Fatalf("totals = %+v", totals)
	}
}

func TestRunSequentialOrder(t *testing.T) {
	repo := &fakeRepo{rows: map[string]int64{"a": 1, "b": 2, "c": 3}}
	m := Manifest{{Table: "a"}, {Table: "b"}, {Table: "c"}}
	results, _ := Run(context.Background(), repo, m, 1)
	for i, want := range []string{"a", "b", "c"} {
		if repo.calls[i] != want {
			t.Fatalf("call order = %v", repo.calls)
		}
		if results[i].Table != want {
			t.Fatalf("result order = %+v", results)
		}
	}
}

/*
TestRunParallelKeepsManifestOrder checks that with workers > 1 results
still land at their manifest index and totals are unchanged.
*/
func TestRunParallelKeepsManifestOrder(t *testing.T) {
	repo := &fakeRepo{rows: map[string]int64{"a": 1, "b": 2, "c": 3, "d": 4}}
	m := Manifest{{Table: "a"}, {Table: "b"}, {Table: "c"}, {Table: "d"}}
	results, totals := Run(context.Background(), repo, m, 3)
	for i, want := range []string{"a", "b", "c", "d"} {
		if results[i].Table != want || results[i].Rows != int64(i+1) {
			t.Fatalf("result %d = %+v", i, results[i])
		}
	}
	if totals.Loaded != 10 || totals.Failures != 0 {
		t.Fatalf("totals = %+v", totals)
	}
}

func TestRunEmptyManifest(t *testing.T) {
	repo := &fakeRepo{}
	results, totals := Run(context.Background(), repo, nil, 0)
	if len(results) != 0 || totals != (Totals{}) {
		t.Fatalf("results = %+v, totals = %+v", results, totals)
	}
}

func TestRunAllFail(t *testing.T) {
	repo := &fakeRepo{}
	m := Manifest{{Table: "x"}, {Table: "y"}}
	results, totals := Run(context.Background(), repo, m, 0)
	if totals.Failures != 2 || totals.Loaded != 0 {
		t.Fatalf("totals = %+v", totals)
	}
	for _, r := range results {
		if !r.Failed() || r.Rows != 0 {
			t.Fatalf("result = %+v", r)
		}
	}
}
