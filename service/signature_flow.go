package service

import (
	"context"
	"sync"
	"time"

	"github.com/mr-tron/base58"

	"github.com/lil-gargs/portal/core"
	"github.com/lil-gargs/portal/internal/log"
	"github.com/lil-gargs/portal/ports"
)

const (
	msgConnectWallet  = "Connect your wallet to sign the verification message."
	msgWalletMismatch = "Connected wallet does not match the session wallet. Switch wallets and try again."
	msgSessionExpired = "This verification session has expired. Request a new link from Discord."
	msgSignFallback   = "Failed to sign or submit the verification message."
)

// SignatureFlow drives the sign-and-submit state machine: idle -> signing ->
// {success, error}, returning to idle on the next attempt or on token change.
// The wallet identity check before signing is the trust boundary: a signature
// is never requested from a wallet the session did not authorize.
type SignatureFlow struct {
	store   *SessionStore
	api     ports.SessionAPI
	wallets ports.WalletDirectory
	events  ports.EventPublisher
	now     func() time.Time

	mu     sync.Mutex
	state  core.SigningState
	errMsg string
	result *core.VerificationResult
	token  string // token the current state belongs to
}

// NewSignatureFlow creates a signature flow in the idle state
func NewSignatureFlow(store *SessionStore, api ports.SessionAPI, wallets ports.WalletDirectory, events ports.EventPublisher) *SignatureFlow {
	return &SignatureFlow{
		store:   store,
		api:     api,
		wallets: wallets,
		events:  events,
		now:     time.Now,
		state:   core.SigningIdle,
	}
}

// Sign runs one full attempt: preconditions, wallet signature, submission and
// session re-fetch. Preconditions fail fast without partial side effects.
// Failures are caught here and surfaced through the error state; a fresh
// user-initiated call restarts the sequence from the first precondition.
func (f *SignatureFlow) Sign(ctx context.Context) {
	token := f.store.Token()
	session := f.store.State().Session
	wallet := f.wallets.Active()

	// The action should not have been offered without a token, a pending
	// challenge message and a signing-capable wallet.
	if token == "" || session == nil || session.Message == "" || wallet == nil {
		return
	}

	if !wallet.Connected() || wallet.PublicKey() == "" {
		f.fail(ctx, token, msgConnectWallet)
		return
	}

	// Case-sensitive base58 string equality; never request a signature from
	// a wallet the session did not authorize.
	if session.WalletAddress != "" && session.WalletAddress != wallet.PublicKey() {
		log.Warn(ctx, "refusing signature request", "reason", core.ErrWalletMismatch.Error(), "wallet", wallet.Name())
		f.fail(ctx, token, msgWalletMismatch)
		return
	}

	if core.Expired(session.ExpiresAt, f.now()) {
		f.fail(ctx, token, msgSessionExpired)
		return
	}

	f.transition(ctx, token, core.SigningPending, "")

	// The exact message string, UTF-8 bytes, no transformation.
	signature, err := wallet.SignMessage(ctx, []byte(session.Message))
	if err != nil {
		log.Warn(ctx, "wallet declined signature request", "wallet", wallet.Name(), "reason", err.Error())
		f.fail(ctx, token, messageOr(err, msgSignFallback))
		return
	}

	result, err := f.api.SubmitSignature(ctx, token, base58.Encode(signature), session.Username)
	if err != nil {
		f.fail(ctx, token, messageOr(err, msgSignFallback))
		return
	}

	f.mu.Lock()
	if stale := f.store.Token() != token; stale {
		// The active token changed mid-flight; the outcome belongs to a
		// session that is no longer on screen.
		f.state = core.SigningIdle
		f.errMsg = ""
		f.result = nil
		f.mu.Unlock()
		log.Debug(ctx, "discarding stale signing outcome", "token", token)
		return
	}
	f.state = core.SigningSuccess
	f.errMsg = ""
	f.result = result
	f.token = token
	f.mu.Unlock()

	f.publish(ctx, token, core.SigningSuccess, "")

	// Exactly one re-fetch, to pick up the updated status and summaries.
	f.store.LoadSession(ctx, token)
}

// State returns the current signing state and error message. A token change
// since the state was produced resets the flow to idle first.
func (f *SignatureFlow) State() (core.SigningState, string) {
	current := f.store.Token()

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != core.SigningIdle && f.token != current {
		f.state = core.SigningIdle
		f.errMsg = ""
		f.result = nil
	}
	return f.state, f.errMsg
}

// Result returns the verification outcome of the last successful attempt
func (f *SignatureFlow) Result() *core.VerificationResult {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.result
}

// Reset returns the flow to idle
func (f *SignatureFlow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.state = core.SigningIdle
	f.errMsg = ""
	f.result = nil
}

func (f *SignatureFlow) fail(ctx context.Context, token, message string) {
	f.transition(ctx, token, core.SigningError, message)
}

func (f *SignatureFlow) transition(ctx context.Context, token string, state core.SigningState, message string) {
	f.mu.Lock()
	f.state = state
	f.errMsg = message
	f.token = token
	if state != core.SigningSuccess {
		f.result = nil
	}
	f.mu.Unlock()

	f.publish(ctx, token, state, message)
}

func (f *SignatureFlow) publish(ctx context.Context, token string, state core.SigningState, message string) {
	change := core.StateChange{
		Token:        token,
		SigningState: state,
		Error:        message,
		OccurredAt:   f.now(),
	}
	if err := f.events.PublishStateChange(ctx, change); err != nil {
		log.Warn(ctx, "failed to publish state change", "reason", err.Error())
	}
}

// messageOr returns the error's message, or the fallback when it is empty.
func messageOr(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}
