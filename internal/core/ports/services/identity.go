package services

import (
	"context"

	"github.com/SscSPs/invoice_workflow_app/internal/core/domain"
)

// IdentityProvider resolves the actor behind a request. The boolean is false
// when no identity is attached.
type IdentityProvider interface {
	CurrentIdentity(ctx context.Context) (domain.Identity, bool)
}

// IdentityDirectory looks up known identities by email. It backs the demo
// login and is absent in production.
type IdentityDirectory interface {
	LookupByEmail(ctx context.Context, email string) (domain.Identity, bool)
}
