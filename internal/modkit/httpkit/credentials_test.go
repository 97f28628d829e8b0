package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	pnet "paperscope/internal/platform/net"
)

func TestExtractCredentialBearerWins(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/api/v1/papers?token=querytoken", nil)
	r.Header.Set("Authorization", "Bearer headertoken")
	r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "cookiehash"})

	got := ExtractCredential(r)
	if got.Token != "headertoken" || got.Hash != "" {
		t.Fatalf("got %+v, want bearer token to win", got)
	}
}

func TestExtractCredentialBearerCaseInsensitive(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "bEaReR  abc123 ")

	if got := ExtractCredential(r); got.Token != "abc123" {
		t.Fatalf("got %+v, want abc123", got)
	}
}

func TestExtractCredentialQueryParam(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/?token=qp", nil)
	if got := ExtractCredential(r); got.Token != "qp" || got.Hash != "" {
		t.Fatalf("got %+v, want query token", got)
	}
}

func TestExtractCredentialCookieIsHash(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "deadbeef"})

	got := ExtractCredential(r)
	if got.Hash != "deadbeef" || got.Token != "" {
		t.Fatalf("got %+v, want hash-only credential", got)
	}
}

func TestExtractCredentialAbsent(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := ExtractCredential(r); !got.Empty() {
		t.Fatalf("got %+v, want empty", got)
	}
}

func TestCredentialsMiddlewareStashesOnContext(t *testing.T) {
	t.Parallel()

	var seen pnet.Credential
	var ok bool
	h := Credentials()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen, ok = pnet.CredentialFrom(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/?token=tok", nil)
	h.ServeHTTP(httptest.NewRecorder(), r)

	if !ok || seen.Token != "tok" {
		t.Fatalf("credential not propagated: ok=%v seen=%+v", ok, seen)
	}

	ok = false
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if ok {
		t.Fatal("empty credential should not be stashed")
	}
}
