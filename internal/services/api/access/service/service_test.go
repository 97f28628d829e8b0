package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	perr "paperscope/internal/platform/errors"
	"paperscope/internal/platform/logger"
	pnet "paperscope/internal/platform/net"
	"paperscope/internal/platform/store"
	"paperscope/internal/platform/testkit"
	"paperscope/internal/services/api/access/repo"
)

var frozen = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

type fakeRepo struct {
	mu        sync.Mutex
	grants    map[string]*repo.RowGrant
	byHashErr error
	touchErr  error
	touched   []string
	touchedIP []string
}

func (f *fakeRepo) ByHash(_ context.Context, keyHash string) (*repo.RowGrant, error) {
	if f.byHashErr != nil {
		return nil, f.byHashErr
	}
	return f.grants[keyHash], nil
}

func (f *fakeRepo) Touch(_ context.Context, id, remoteIP string, _ time.Time) error {
	f.mu.Lock()
	f.touched = append(f.touched, id)
	f.touchedIP = append(f.touchedIP, remoteIP)
	f.mu.Unlock()
	return f.touchErr
}

type nopTx struct{}

func (nopTx) Exec(context.Context, string, ...any) (store.CommandTag, error) { return nil, nil }
func (nopTx) Query(context.Context, string, ...any) (store.Rows, error)      { return nil, nil }
func (nopTx) QueryRow(context.Context, string, ...any) store.Row             { return nil }
func (nopTx) Tx(context.Context, func(q store.RowQuerier) error) error       { return nil }

func newTestSvc(t *testing.T, f *fakeRepo) *Svc {
	t.Helper()
	testkit.Serial(t)
	testkit.Swap(t, &now, func() time.Time { return frozen })

	s := New(nopTx{}, fakeBinder{f}, *logger.Get())
	return s
}

type fakeBinder struct{ r *fakeRepo }

func (b fakeBinder) Bind(store.RowQuerier) repo.Repo { return b.r }

// waitTouch swaps the telemetry hook for a channel and returns a receiver
func waitTouch(t *testing.T) <-chan error {
	t.Helper()
	ch := make(chan error, 4)
	testkit.Swap(t, &touchDone, func(err error) { ch <- err })
	return ch
}

func grantFor(token, dates string) (hash string, g *repo.RowGrant) {
	hash = HashToken(token)
	return hash, &repo.RowGrant{
		ID:              "11111111-2222-3333-4444-555555555555",
		KeyHash:         hash,
		UserName:        "ada",
		AccessibleDates: dates,
		IssuedAt:        frozen.AddDate(0, -1, 0),
	}
}

func TestResolveEmptyCredentialDefaultWindow(t *testing.T) {
	f := &fakeRepo{grants: map[string]*repo.RowGrant{}}
	s := newTestSvc(t, f)

	scope, err := s.Resolve(context.Background(), pnet.Credential{}, "10.0.0.1")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if scope.Unrestricted() {
		t.Fatal("anonymous caller must not be unrestricted")
	}
	if !scope.Allows("2024-03-10") || !scope.Allows("2024-03-04") || scope.Allows("2024-03-03") {
		t.Fatal("anonymous caller should get the trailing default window")
	}
	if len(f.touched) != 0 {
		t.Fatal("no telemetry for anonymous callers")
	}
}

func TestResolveUnknownTokenNarrowsToDefault(t *testing.T) {
	f := &fakeRepo{grants: map[string]*repo.RowGrant{}}
	s := newTestSvc(t, f)

	scope, err := s.Resolve(context.Background(), pnet.Credential{Token: "nope"}, "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if scope.Unrestricted() || !scope.Allows("2024-03-10") || scope.Allows("2024-01-01") {
		t.Fatal("unknown token should narrow to the default window, not reject")
	}
}

func TestResolveRevokedAndExpiredNarrow(t *testing.T) {
	hash, g := grantFor("tok", `["*"]`)
	g.IsRevoked = true

	hash2, g2 := grantFor("tok2", `["*"]`)
	expired := frozen.Add(-time.Hour)
	g2.ExpiresAt = &expired

	f := &fakeRepo{grants: map[string]*repo.RowGrant{hash: g, hash2: g2}}
	s := newTestSvc(t, f)

	for _, token := range []string{"tok", "tok2"} {
		scope, err := s.Resolve(context.Background(), pnet.Credential{Token: token}, "")
		if err != nil {
			t.Fatalf("Resolve(%s): %v", token, err)
		}
		if scope.Unrestricted() {
			t.Fatalf("token %s should not retain its wildcard grant", token)
		}
		if !scope.Allows("2024-03-10") || scope.Allows("2024-01-01") {
			t.Fatalf("token %s should narrow to the default window", token)
		}
	}
	if len(f.touched) != 0 {
		t.Fatal("unusable grants must not be touched")
	}
}

func TestResolveValidGrantScopesAndTouches(t *testing.T) {
	hash, g := grantFor("tok", `["2024-01-15", "2024-02-01:2024-02-10"]`)
	f := &fakeRepo{grants: map[string]*repo.RowGrant{hash: g}}
	s := newTestSvc(t, f)
	done := waitTouch(t)

	scope, err := s.Resolve(context.Background(), pnet.Credential{Token: "tok"}, "203.0.113.7")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !scope.Allows("2024-01-15") || !scope.Allows("2024-02-05") || scope.Allows("2024-03-10") {
		t.Fatal("scope should match the granted dates exactly")
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("touch: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("telemetry goroutine never ran")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.touched) != 1 || f.touched[0] != g.ID || f.touchedIP[0] != "203.0.113.7" {
		t.Fatalf("telemetry recorded wrong grant: %v %v", f.touched, f.touchedIP)
	}
}

func TestResolveHashCredentialSkipsRehash(t *testing.T) {
	hash, g := grantFor("tok", `["*"]`)
	f := &fakeRepo{grants: map[string]*repo.RowGrant{hash: g}}
	s := newTestSvc(t, f)
	done := waitTouch(t)

	scope, err := s.Resolve(context.Background(), pnet.Credential{Hash: hash}, "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !scope.Unrestricted() {
		t.Fatal("hash credential should resolve the wildcard grant")
	}
	<-done
}

func TestResolveMalformedDatesNarrowToNothing(t *testing.T) {
	hash, g := grantFor("tok", `?broken?`)
	f := &fakeRepo{grants: map[string]*repo.RowGrant{hash: g}}
	s := newTestSvc(t, f)
	done := waitTouch(t)

	scope, err := s.Resolve(context.Background(), pnet.Credential{Token: "tok"}, "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !scope.Empty() {
		t.Fatal("a corrupt grant list must narrow to the empty scope")
	}
	<-done
}

func TestResolveStoreErrorSurfaces(t *testing.T) {
	f := &fakeRepo{byHashErr: errors.New("pg down")}
	s := newTestSvc(t, f)

	if _, err := s.Resolve(context.Background(), pnet.Credential{Token: "tok"}, ""); err == nil {
		t.Fatal("store failure should surface to the caller")
	}
}

func TestResolveTouchErrorSwallowed(t *testing.T) {
	hash, g := grantFor("tok", `["*"]`)
	f := &fakeRepo{grants: map[string]*repo.RowGrant{hash: g}, touchErr: errors.New("pg down")}
	s := newTestSvc(t, f)
	done := waitTouch(t)

	scope, err := s.Resolve(context.Background(), pnet.Credential{Token: "tok"}, "")
	if err != nil {
		t.Fatalf("telemetry failure must not fail the read: %v", err)
	}
	if !scope.Unrestricted() {
		t.Fatal("scope should still resolve")
	}
	if err := <-done; err == nil {
		t.Fatal("touch should have reported its failure to the hook")
	}
}

func TestValidateInvalidToken(t *testing.T) {
	f := &fakeRepo{grants: map[string]*repo.RowGrant{}}
	s := newTestSvc(t, f)

	_, err := s.Validate(context.Background(), "nope")
	if err == nil {
		t.Fatal("expected error")
	}
	if !perr.IsCode(err, perr.ErrorCodeUnauthorized) {
		t.Fatalf("error code = %v, want unauthorized", perr.CodeOf(err))
	}
}

func TestValidateReturnsGrantInfo(t *testing.T) {
	hash, g := grantFor("tok", `["2024-01-15", "2024-02-01:2024-02-10"]`)
	exp := frozen.AddDate(0, 1, 0)
	g.ExpiresAt = &exp
	f := &fakeRepo{grants: map[string]*repo.RowGrant{hash: g}}
	s := newTestSvc(t, f)
	done := waitTouch(t)

	info, err := s.Validate(context.Background(), "tok")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if info.Label != "ada" || info.Unrestricted {
		t.Fatalf("unexpected info: %+v", info)
	}
	if len(info.Dates) != 2 || info.Dates[0] != "2024-01-15" || info.Dates[1] != "2024-02-01:2024-02-10" {
		t.Fatalf("dates echo wrong: %v", info.Dates)
	}
	if info.ExpiresAt == "" {
		t.Fatal("expiry should be echoed")
	}
	<-done
}

func TestHashTokenStable(t *testing.T) {
	t.Parallel()

	if HashToken("abc") != HashToken("abc") {
		t.Fatal("hash must be deterministic")
	}
	if HashToken("abc") == HashToken("abd") {
		t.Fatal("distinct tokens must not collide trivially here")
	}
	if len(HashToken("abc")) != 64 {
		t.Fatal("sha-256 hex should be 64 chars")
	}
}
