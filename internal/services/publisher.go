package services

import (
	"context"

	"employee-system/pkg/eventbus"
)

// EventPublisher is satisfied by *eventbus.Bus.
type EventPublisher interface {
	Publish(ctx context.Context, event eventbus.Event)
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, eventbus.Event) {}

func publisherOrNoop(p EventPublisher) EventPublisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}
