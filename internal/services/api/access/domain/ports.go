package domain

import (
	"context"

	"paperscope/internal/core/datescope"
	pnet "paperscope/internal/platform/net"
)

// ResolverPort narrows a caller credential to the dates it may read.
// Resolution never rejects: an absent, unknown, revoked, or expired
// credential narrows to the default trailing window
type ResolverPort interface {
	Resolve(ctx context.Context, cred pnet.Credential, remoteIP string) (datescope.Scope, error)
}

// ServicePort is the full access contract
type ServicePort interface {
	ResolverPort
	// Validate checks a raw token explicitly and returns grant details.
	// Unlike Resolve it fails on an unusable credential
	Validate(ctx context.Context, token string) (GrantInfo, error)
}
