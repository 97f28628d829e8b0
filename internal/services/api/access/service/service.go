// Package service contains access resolution workflows
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"paperscope/internal/core/datescope"
	"paperscope/internal/modkit/repokit"
	perr "paperscope/internal/platform/errors"
	"paperscope/internal/platform/logger"
	pnet "paperscope/internal/platform/net"
	"paperscope/internal/services/api/access/domain"
	"paperscope/internal/services/api/access/repo"
)

// Service defines the service contract for access
type Service interface{ domain.ServicePort }

// seams for tests
var (
	now = time.Now

	touchTimeout = 5 * time.Second

	// touchDone is invoked after every telemetry attempt
	touchDone = func(error) {}
)

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	log    logger.Logger
}

// New creates a new access service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], log logger.Logger) *Svc {
	if db == nil {
		panic("access.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("access.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db, log: log}
}

// HashToken returns the stored form of a raw token
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Resolve narrows the credential to a date scope. Absent, unknown, revoked, or
// expired credentials narrow to the default trailing window; only a store
// failure is an error
func (s *Svc) Resolve(ctx context.Context, cred pnet.Credential, remoteIP string) (datescope.Scope, error) {
	if cred.Empty() {
		return datescope.DefaultWindow(now()), nil
	}

	hash := cred.Hash
	if hash == "" {
		hash = HashToken(cred.Token)
	}

	g, err := s.Repo.ByHash(ctx, hash)
	if err != nil {
		return datescope.Empty(), err
	}
	if !usable(g, now()) {
		s.log.Debug().Str("remote_ip", remoteIP).Msg("unusable credential, narrowing to default window")
		return datescope.DefaultWindow(now()), nil
	}

	scope, scopeErr := datescope.ParseList(g.AccessibleDates)
	if scopeErr != nil {
		// a corrupt grant list narrows to nothing, never to everything
		s.log.Warn().Str("grant_id", g.ID).Err(scopeErr).Msg("malformed accessible dates on grant")
		scope = datescope.Empty()
	}

	s.touchAsync(g.ID, remoteIP)
	return scope, nil
}

// Validate checks a raw token and returns grant details, unauthorized when the
// token is unknown, revoked, or expired
func (s *Svc) Validate(ctx context.Context, token string) (domain.GrantInfo, error) {
	g, err := s.Repo.ByHash(ctx, HashToken(token))
	if err != nil {
		return domain.GrantInfo{}, err
	}
	if !usable(g, now()) {
		return domain.GrantInfo{}, perr.Unauthorizedf("invalid access token")
	}

	scope, scopeErr := datescope.ParseList(g.AccessibleDates)
	if scopeErr != nil {
		s.log.Warn().Str("grant_id", g.ID).Err(scopeErr).Msg("malformed accessible dates on grant")
		scope = datescope.Empty()
	}

	out := domain.GrantInfo{
		Label:        g.UserName,
		IssuedAt:     g.IssuedAt.UTC().Format(time.RFC3339),
		Unrestricted: scope.Unrestricted(),
	}
	if g.ExpiresAt != nil {
		out.ExpiresAt = g.ExpiresAt.UTC().Format(time.RFC3339)
	}
	for _, sp := range scope.Specs() {
		if sp.Start == sp.End {
			out.Dates = append(out.Dates, sp.Start)
		} else {
			out.Dates = append(out.Dates, sp.Start+":"+sp.End)
		}
	}

	s.touchAsync(g.ID, "")
	return out, nil
}

func usable(g *repo.RowGrant, at time.Time) bool {
	if g == nil || g.IsRevoked {
		return false
	}
	if g.ExpiresAt != nil && !g.ExpiresAt.After(at) {
		return false
	}
	return true
}

// touchAsync records usage telemetry off the request path. Failures are
// logged and swallowed; telemetry never blocks or fails a read
func (s *Svc) touchAsync(grantID, remoteIP string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), touchTimeout)
		defer cancel()
		err := s.Repo.Touch(ctx, grantID, remoteIP, now())
		if err != nil {
			s.log.Warn().Str("grant_id", grantID).Err(err).Msg("grant telemetry update failed")
		}
		touchDone(err)
	}()
}
