// Package repo provides postgres access for grants
package repo

import (
	"context"
	"time"

	"paperscope/internal/modkit/repokit"
	perr "paperscope/internal/platform/errors"
)

// Repo defines the repository contract for access grants
type Repo interface {
	// ByHash returns the grant with the given key hash, nil when absent
	ByHash(ctx context.Context, keyHash string) (*RowGrant, error)
	// Touch records a successful use of the grant
	Touch(ctx context.Context, id, remoteIP string, at time.Time) error
}

// RowGrant is a grant row from the database
type RowGrant struct {
	ID              string
	KeyHash         string
	UserName        string
	UserEmail       string
	AccessibleDates string
	IssuedAt        time.Time
	ExpiresAt       *time.Time
	IsRevoked       bool
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) ByHash(ctx context.Context, keyHash string) (*RowGrant, error) {
	const sql = `
select id::text, key_hash, user_name, coalesce(user_email, ''), accessible_dates,
issued_at, expires_at, is_revoked
from access_keys
where key_hash = $1
`
	rows, err := r.q.Query(ctx, sql, keyHash)
	if err != nil {
		return nil, perr.FromPostgres(err, "grant lookup")
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var g RowGrant
	if err := rows.Scan(
		&g.ID,
		&g.KeyHash,
		&g.UserName,
		&g.UserEmail,
		&g.AccessibleDates,
		&g.IssuedAt,
		&g.ExpiresAt,
		&g.IsRevoked,
	); err != nil {
		return nil, perr.FromPostgres(err, "scan grant")
	}
	return &g, rows.Err()
}

func (r *queries) Touch(ctx context.Context, id, remoteIP string, at time.Time) error {
	const sql = `
update access_keys
set last_used_at = $2, last_used_ip = $3, request_count = request_count + 1
where id = $1::uuid
`
	if _, err := r.q.Exec(ctx, sql, id, at, remoteIP); err != nil {
		return perr.FromPostgres(err, "touch grant")
	}
	return nil
}
