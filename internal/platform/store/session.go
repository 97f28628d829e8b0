package store

import (
	"context"
)

// Session anchors a sequence of reads to a write-ahead-log position so a
// client paging through results never observes a node older than the one that
// served its previous page. The token is the node's LSN rendered as text and
// is opaque to clients
type Session struct {
	token   string
	fresh   bool
	standby bool
}

// OpenSession captures the serving node's current LSN and, when a prior token
// is supplied, checks the node has replayed at least that far. Diagnostics are
// advisory: when they cannot be gathered the session degrades to tokenless and
// the read proceeds; only the caller's own queries can fail the request
func OpenSession(ctx context.Context, q RowQuerier, prior string) *Session {
	s := &Session{fresh: true}

	var standby bool
	if err := q.QueryRow(ctx, "SELECT pg_is_in_recovery()").Scan(&standby); err != nil {
		return s
	}
	s.standby = standby

	lsnExpr := "pg_current_wal_insert_lsn()"
	if standby {
		lsnExpr = "pg_last_wal_replay_lsn()"
	}
	var lsn string
	if err := q.QueryRow(ctx, "SELECT "+lsnExpr+"::text").Scan(&lsn); err != nil {
		return s
	}
	s.token = lsn

	if prior == "" {
		return s
	}
	var diff int64
	err := q.QueryRow(ctx,
		"SELECT pg_wal_lsn_diff($1::pg_lsn, $2::pg_lsn)::bigint", lsn, prior,
	).Scan(&diff)
	if err != nil {
		// malformed or unparseable prior token: drop it rather than fail the read
		return s
	}
	if diff < 0 {
		// node is behind the position the client already observed; keep echoing
		// the client's token so positions stay monotonic across pages
		s.fresh = false
		s.token = prior
	}
	return s
}

// Token returns the position to echo back to the client, empty when
// diagnostics were unavailable
func (s *Session) Token() string {
	if s == nil {
		return ""
	}
	return s.token
}

// Fresh reports whether the serving node satisfied the prior token's position.
// A tokenless session is considered fresh
func (s *Session) Fresh() bool { return s == nil || s.fresh }

// Standby reports whether the serving node is in recovery
func (s *Session) Standby() bool { return s != nil && s.standby }
