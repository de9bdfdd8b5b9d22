package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/lil-gargs/portal/core"
	"github.com/lil-gargs/portal/ports"
)

// StateChangeTopic is the topic verification state changes are published on.
const StateChangeTopic = "portal.session.state"

// WatermillPublisher implements the EventPublisher interface using Watermill
type WatermillPublisher struct {
	publisher message.Publisher
	topic     string
}

// NewWatermillPublisher creates a new Watermill publisher
func NewWatermillPublisher(publisher message.Publisher) ports.EventPublisher {
	return &WatermillPublisher{
		publisher: publisher,
		topic:     StateChangeTopic,
	}
}

// PublishStateChange publishes a verification state change event
func (p *WatermillPublisher) PublishStateChange(ctx context.Context, change core.StateChange) error {
	payload, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)

	if err := p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// NopPublisher discards state changes; used when no observer is wired.
type NopPublisher struct{}

// PublishStateChange implements ports.EventPublisher
func (NopPublisher) PublishStateChange(context.Context, core.StateChange) error {
	return nil
}
