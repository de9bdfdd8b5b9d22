package service

import (
	"context"
	"sync"
	"time"

	"github.com/lil-gargs/portal/core"
	"github.com/lil-gargs/portal/ports"
)

// fakeAPI is a scriptable SessionAPI that records every call.
type fakeAPI struct {
	mu          sync.Mutex
	fetch       func(ctx context.Context, token string) (*core.VerificationSession, error)
	submit      func(ctx context.Context, token, signature, username string) (*core.VerificationResult, error)
	fetchCalls  []string
	submitCalls []submitCall
}

type submitCall struct {
	token     string
	signature string
	username  string
}

func (f *fakeAPI) FetchSession(ctx context.Context, token string) (*core.VerificationSession, error) {
	f.mu.Lock()
	f.fetchCalls = append(f.fetchCalls, token)
	fetch := f.fetch
	f.mu.Unlock()

	if fetch == nil {
		return nil, core.ErrSessionNotFound
	}
	return fetch(ctx, token)
}

func (f *fakeAPI) SubmitSignature(ctx context.Context, token, signature, username string) (*core.VerificationResult, error) {
	f.mu.Lock()
	f.submitCalls = append(f.submitCalls, submitCall{token: token, signature: signature, username: username})
	submit := f.submit
	f.mu.Unlock()

	if submit == nil {
		return &core.VerificationResult{}, nil
	}
	return submit(ctx, token, signature, username)
}

func (f *fakeAPI) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.fetchCalls)
}

func (f *fakeAPI) submitted() []submitCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]submitCall, len(f.submitCalls))
	copy(out, f.submitCalls)
	return out
}

// fakeWallet is a scriptable wallet capability that records signed payloads.
type fakeWallet struct {
	mu         sync.Mutex
	name       string
	ready      ports.ReadyState
	connected  bool
	publicKey  string
	signature  []byte
	signErr    error
	connectErr error
	signCalls  [][]byte

	// connectGate, when set, blocks Connect until the channel closes.
	connectGate chan struct{}
}

func (w *fakeWallet) Name() string { return w.name }

func (w *fakeWallet) Icon() string { return "" }

func (w *fakeWallet) ReadyState() ports.ReadyState { return w.ready }

func (w *fakeWallet) Connect(ctx context.Context) error {
	if w.connectGate != nil {
		<-w.connectGate
	}
	if w.connectErr != nil {
		return w.connectErr
	}
	w.mu.Lock()
	w.connected = true
	w.mu.Unlock()
	return nil
}

func (w *fakeWallet) Disconnect(ctx context.Context) error {
	w.mu.Lock()
	w.connected = false
	w.mu.Unlock()
	return nil
}

func (w *fakeWallet) Connected() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.connected
}

func (w *fakeWallet) PublicKey() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.connected {
		return ""
	}
	return w.publicKey
}

func (w *fakeWallet) SignMessage(ctx context.Context, message []byte) ([]byte, error) {
	w.mu.Lock()
	w.signCalls = append(w.signCalls, append([]byte(nil), message...))
	w.mu.Unlock()

	if w.signErr != nil {
		return nil, w.signErr
	}
	return w.signature, nil
}

func (w *fakeWallet) signed() [][]byte {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([][]byte, len(w.signCalls))
	copy(out, w.signCalls)
	return out
}

// countingLock records scroll lock acquire/release balance.
type countingLock struct {
	mu       sync.Mutex
	acquires int
	releases int
}

func (l *countingLock) Acquire() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.acquires++
}

func (l *countingLock) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.releases++
}

func (l *countingLock) held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.acquires - l.releases
}

func pendingSession(token, expectedWallet, message string, expiresAt time.Time) *core.VerificationSession {
	return &core.VerificationSession{
		ID:            "session-" + token,
		DiscordID:     "discord-1",
		GuildID:       "guild-1",
		WalletAddress: expectedWallet,
		Status:        core.StatusPending,
		ExpiresAt:     expiresAt,
		CreatedAt:     expiresAt.Add(-5 * time.Minute),
		Message:       message,
	}
}
