package store

import (
	"context"

	perr "paperscope/internal/platform/errors"
)

// Scalar runs a single-row query and scans one value
func Scalar[T any](ctx context.Context, q RowQuerier, sql string, args ...any) (T, error) {
	var out T
	if err := q.QueryRow(ctx, sql, args...).Scan(&out); err != nil {
		return out, perr.FromPostgres(err, "scalar query")
	}
	return out, nil
}

// Many runs a query and maps every row through scan
func Many[T any](
	ctx context.Context,
	q RowQuerier,
	scan func(Rows) (T, error),
	sql string,
	args ...any,
) ([]T, error) {
	rs, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, perr.FromPostgres(err, "query")
	}
	defer rs.Close()

	var out []T
	for rs.Next() {
		v, err := scan(rs)
		if err != nil {
			return nil, perr.FromPostgres(err, "scan row")
		}
		out = append(out, v)
	}
	if err := rs.Err(); err != nil {
		return nil, perr.FromPostgres(err, "rows")
	}
	return out, nil
}
