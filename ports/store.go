package ports

import (
	"context"
	"time"

	"github.com/lil-gargs/portal/core"
)

// PersistedState is the subset of session store state that survives process
// restarts. Load status and error are deliberately absent: they are re-derived
// on every start and never trusted from storage.
type PersistedState struct {
	Token         string                    `json:"token"`
	Session       *core.VerificationSession `json:"session,omitempty"`
	LastFetchedAt *time.Time                `json:"last_fetched_at,omitempty"`
}

// Persistence stores the single namespaced session record.
type Persistence interface {
	Save(ctx context.Context, state PersistedState) error

	// Load returns the persisted record, or (nil, nil) when none exists.
	Load(ctx context.Context) (*PersistedState, error)

	Clear(ctx context.Context) error
}
