package httpkit

import (
	"net/http"
	"strings"

	pnet "paperscope/internal/platform/net"
)

// SessionCookie is the cookie that carries a pre-hashed credential reference
const SessionCookie = "ps_key"

// ExtractCredential reads the caller credential from the request, in order of
// precedence: Authorization bearer header, token query param, session cookie.
// The cookie value is a hash reference, the other two carry the raw secret
func ExtractCredential(r *http.Request) pnet.Credential {
	if raw := bearerToken(r); raw != "" {
		return pnet.Credential{Token: raw}
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("token")); raw != "" {
		return pnet.Credential{Token: raw}
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		if v := strings.TrimSpace(c.Value); v != "" {
			return pnet.Credential{Hash: v}
		}
	}
	return pnet.Credential{}
}

func bearerToken(r *http.Request) string {
	authz := r.Header.Get("Authorization")
	if strings.TrimSpace(authz) == "" {
		return ""
	}
	// case-insensitive Bearer prefix (don't trim the whole header first)
	const prefix = "bearer "
	if len(authz) < len(prefix) || !strings.EqualFold(authz[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(authz[len(prefix):])
}

// Credentials is middleware that stashes the extracted credential on the
// request context. Absence is not an error; unauthenticated reads narrow to
// the default access window further down the stack
func Credentials() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cred := ExtractCredential(r)
			if !cred.Empty() {
				r = r.WithContext(pnet.WithCredential(r.Context(), cred))
			}
			next.ServeHTTP(w, r)
		})
	}
}
