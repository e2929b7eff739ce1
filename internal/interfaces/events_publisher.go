package interfaces

import "context"

type EventPublisher interface {
	Publish(ctx context.Context, eventType, key string, event any) error
}
