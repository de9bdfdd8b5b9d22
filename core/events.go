package core

import "time"

// StateChange is published whenever the session store or the signature flow
// moves to a new state, so other components can observe the flow without
// polling the store.
type StateChange struct {
	Token         string        `json:"token"`
	FetchStatus   FetchStatus   `json:"fetch_status,omitempty"`
	SigningState  SigningState  `json:"signing_state,omitempty"`
	SessionStatus SessionStatus `json:"session_status,omitempty"`
	Error         string        `json:"error,omitempty"`
	OccurredAt    time.Time     `json:"occurred_at"`
}
