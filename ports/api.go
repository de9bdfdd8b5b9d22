package ports

import (
	"context"

	"github.com/lil-gargs/portal/core"
)

// SessionAPI is the typed gateway to the verification backend. Implementations
// classify failures into the core error taxonomy and never retry; transient
// failures propagate to the caller verbatim.
type SessionAPI interface {
	// FetchSession resolves a session by its opaque token.
	FetchSession(ctx context.Context, token string) (*core.VerificationSession, error)

	// SubmitSignature submits a base58-encoded signature over the session's
	// challenge message. Username is optional and may be empty.
	SubmitSignature(ctx context.Context, token, signatureBase58, username string) (*core.VerificationResult, error)
}
