// Package net provides request context utilities shared by transports
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const keyCredential ctxKey = "credential"

// Credential is the caller's access credential as extracted from the request.
// Exactly one of Token or Hash is set: Token is the raw secret from the
// Authorization header or query param, Hash is the pre-hashed reference a
// session cookie carries
type Credential struct {
	Token string
	Hash  string
}

// Empty reports whether no credential was presented
func (c Credential) Empty() bool { return c.Token == "" && c.Hash == "" }

// WithRequest annotates context with the request id so chimw.GetReqID finds it
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	return ctx
}

// WithCredential stashes the caller credential on the context
func WithCredential(ctx context.Context, cred Credential) context.Context {
	if cred.Empty() {
		return ctx
	}
	return context.WithValue(ctx, keyCredential, cred)
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}

// CredentialFrom returns the caller credential on the context if present
func CredentialFrom(ctx context.Context) (Credential, bool) {
	v, ok := ctx.Value(keyCredential).(Credential)
	return v, ok
}
