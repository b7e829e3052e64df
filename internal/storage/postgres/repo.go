// Package postgres implements the storage.Repository against Postgres using
// pgx v5. Loads go through the server-side COPY protocol: the CSV file is
// streamed to the server as COPY ... FROM STDIN, and the row count comes from
// the resulting command tag.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Config holds Postgres repository configuration.
type Config struct {
	// ConnString is the pgxpool connection string.
	ConnString string
}

// Repository is a Postgres-backed implementation of storage.Repository.
type Repository struct {
	pool *pgxpool.Pool
}

// New constructs a Repository and verifies connectivity. On ping failure the
// pool is closed before returning, so the caller never holds a half-open
// repository.
func New(ctx context.Context, cfg Config) (*Repository, error) {
	pool, err := pgxpool.New(ctx, cfg.ConnString)
	if err != nil {
		return nil, fmt.Errorf("pgxpool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &Repository{pool: pool}, nil
}

// CopyFile streams the CSV at path into table using COPY FROM STDIN with
// FORMAT csv, HEADER true, ENCODING UTF8. The destination table's column
// order must match the file exactly. The table identifier is quoted against
// injection; file content travels as COPY data, never as SQL text. Each call
// commits independently.
func (r *Repository) CopyFile(ctx context.Context, table, path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return 0, fmt.Errorf("acquire conn: %w", err)
	}
	defer conn.Release()

	sql := fmt.Sprintf(
		"COPY %s FROM STDIN WITH (FORMAT csv, HEADER true, ENCODING 'UTF8')",
		pgFQN(table),
	)
	tag, err := conn.Conn().PgConn().CopyFrom(ctx, f, sql)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Detail != "" {
			return 0, fmt.Errorf("copy into %s: %s (%s)", table, pgErr.Detail, pgErr.SQLState())
		}
		return 0, fmt.Errorf("copy into %s: %w", table, err)
	}
	return tag.RowsAffected(), nil
}

// Close releases the pool. Safe to call exactly once on any exit path.
func (r *Repository) Close() { r.pool.Close() }

// pgIdent safely quotes a single identifier segment for Postgres.
func pgIdent(id string) string { return `"` + strings.ReplaceAll(id, `"`, `""`) + `"` }

// pgFQN quotes a possibly schema-qualified name like "public.sales_data" to
// "public"."sales_data". If no dot is present, returns a single quoted ident.
func pgFQN(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = pgIdent(p)
	}
	return strings.Join(parts, ".")
}
