package service

import (
	"context"
	"sync"
	"time"

	"github.com/lil-gargs/portal/core"
	"github.com/lil-gargs/portal/internal/log"
	"github.com/lil-gargs/portal/ports"
)

// StoreState is the observable state of the session store. Session points at
// an immutable snapshot; callers must not mutate it.
type StoreState struct {
	Token         string
	Session       *core.VerificationSession
	Status        core.FetchStatus
	Err           string
	LastFetchedAt *time.Time
}

// SessionStore owns the current verification session and its fetch lifecycle.
// It is the single state container for one logical session flow: mutated only
// through LoadSession, ClearSession and Resume, persisted through an injected
// adapter, and observed through State and the event publisher.
type SessionStore struct {
	api         ports.SessionAPI
	persistence ports.Persistence
	events      ports.EventPublisher
	now         func() time.Time

	mu      sync.Mutex
	state   StoreState
	loadSeq uint64
}

// NewSessionStore creates a session store with the idle baseline state
func NewSessionStore(api ports.SessionAPI, persistence ports.Persistence, events ports.EventPublisher) *SessionStore {
	return &SessionStore{
		api:         api,
		persistence: persistence,
		events:      events,
		now:         time.Now,
		state:       StoreState{Status: core.FetchIdle},
	}
}

// LoadSession fetches the session for the token and applies the result with
// last-call-wins semantics: each fetch is tagged when issued, and a resolution
// whose tag no longer matches the latest load is discarded rather than applied
// over newer state. Failures are caught here and surfaced through the error
// status; callers decide whether to re-invoke.
func (s *SessionStore) LoadSession(ctx context.Context, token string) {
	s.mu.Lock()
	s.loadSeq++
	seq := s.loadSeq
	s.state.Token = token
	s.state.Status = core.FetchLoading
	s.state.Err = ""
	snapshot := s.state
	s.mu.Unlock()

	s.publish(ctx, snapshot)

	session, err := s.api.FetchSession(ctx, token)

	s.mu.Lock()
	if seq != s.loadSeq || s.state.Token != token {
		s.mu.Unlock()
		log.Debug(ctx, "discarding stale session fetch", "token", token)
		return
	}
	if err != nil {
		s.state.Status = core.FetchError
		s.state.Err = err.Error()
		s.state.Session = nil
		s.state.LastFetchedAt = nil
	} else {
		fetchedAt := s.now()
		s.state.Status = core.FetchLoaded
		s.state.Session = session
		s.state.Err = ""
		s.state.LastFetchedAt = &fetchedAt
	}
	snapshot = s.state
	s.mu.Unlock()

	if err != nil {
		log.Warn(ctx, "session load failed", "token", token, "reason", err.Error())
	}

	s.persist(ctx, snapshot)
	s.publish(ctx, snapshot)
}

// ClearSession resets the store to the idle baseline and discards the
// persisted record.
func (s *SessionStore) ClearSession(ctx context.Context) {
	s.mu.Lock()
	s.loadSeq++ // invalidates any in-flight fetch
	s.state = StoreState{Status: core.FetchIdle}
	snapshot := s.state
	s.mu.Unlock()

	if err := s.persistence.Clear(ctx); err != nil {
		log.Error(ctx, "failed to clear persisted session", err)
	}
	s.publish(ctx, snapshot)
}

// Resume restores the persisted record and immediately re-fetches the session.
// The persisted status is never trusted: until the fetch resolves the restored
// session is only stale display data. Returns false when there is nothing to
// resume.
func (s *SessionStore) Resume(ctx context.Context) bool {
	persisted, err := s.persistence.Load(ctx)
	if err != nil {
		log.Error(ctx, "failed to load persisted session", err)
		return false
	}
	if persisted == nil || persisted.Token == "" {
		return false
	}

	s.mu.Lock()
	s.state.Token = persisted.Token
	s.state.Session = persisted.Session
	s.state.LastFetchedAt = persisted.LastFetchedAt
	s.state.Status = core.FetchIdle
	s.state.Err = ""
	s.mu.Unlock()

	log.Info(ctx, "resuming persisted session", "token", persisted.Token)
	s.LoadSession(ctx, persisted.Token)
	return true
}

// State returns a snapshot of the current store state
func (s *SessionStore) State() StoreState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Token returns the currently active token, or empty
func (s *SessionStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Token
}

func (s *SessionStore) persist(ctx context.Context, state StoreState) {
	record := ports.PersistedState{
		Token:         state.Token,
		Session:       state.Session,
		LastFetchedAt: state.LastFetchedAt,
	}
	if err := s.persistence.Save(ctx, record); err != nil {
		log.Error(ctx, "failed to persist session state", err)
	}
}

func (s *SessionStore) publish(ctx context.Context, state StoreState) {
	change := core.StateChange{
		Token:       state.Token,
		FetchStatus: state.Status,
		Error:       state.Err,
		OccurredAt:  s.now(),
	}
	if state.Session != nil {
		change.SessionStatus = state.Session.Status
	}
	if err := s.events.PublishStateChange(ctx, change); err != nil {
		log.Warn(ctx, "failed to publish state change", "reason", err.Error())
	}
}
