// Package storage defines the warehouse-facing contract for the bulk loader
// and the manifest runner that drives it. Concrete backends live in
// subpackages (currently postgres).
package storage

import "context"

// Repository is the minimal warehouse interface the loader needs. CopyFile
// streams a header-bearing, comma-delimited, UTF-8 CSV into the named table
// via the backend's server-side bulk-copy command and returns the row count
// the server reported; the count is never recomputed client-side. Close
// releases the underlying connection resources and is safe to call once on
// every exit path.
type Repository interface {
	CopyFile(ctx context.Context, table, path string) (int64, error)
	Close()
}
