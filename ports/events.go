package ports

import (
	"context"

	"github.com/lil-gargs/portal/core"
)

// EventPublisher publishes state changes so observers (UI, other instances)
// can follow the verification flow.
type EventPublisher interface {
	PublishStateChange(ctx context.Context, change core.StateChange) error
}

// ScrollLock suppresses background page scroll while a modal sheet is open.
// Acquire and Release must balance exactly across open/close cycles.
type ScrollLock interface {
	Acquire()
	Release()
}
