package eventbus

import (
	"context"
	"fmt"
	"sync"
	"time"

	"opsbridge/internal/shared/logger"
)

// Event represents a generic event
type Event interface {
	Type() string
	Data() interface{}
	Timestamp() time.Time
}

// Handler defines the event handler function type
type Handler func(ctx context.Context, event Event) error

// EventBus is an in-memory publish/subscribe bus. Handlers run synchronously in
// subscription order unless PublishAndForget is used.
type EventBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   logger.Logger
}

// NewEventBus creates a new event bus instance
func NewEventBus(log logger.Logger) *EventBus {
	if log == nil {
		log = &noopLogger{}
	}
	return &EventBus{
		handlers: make(map[string][]Handler),
		logger:   log,
	}
}

// Subscribe registers a handler for an event type
func (b *EventBus) Subscribe(eventType string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Publish delivers the event to every subscriber; the first handler error is
// returned after all handlers have run.
func (b *EventBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	var firstErr error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			b.logger.Error("event handler failed", "eventType", event.Type(), "error", err)
			if firstErr == nil {
				firstErr = fmt.Errorf("handler for %s failed: %w", event.Type(), err)
			}
		}
	}
	return firstErr
}

// PublishAndForget delivers the event asynchronously; handler errors are logged only.
func (b *EventBus) PublishAndForget(ctx context.Context, event Event) {
	go func() {
		_ = b.Publish(context.WithoutCancel(ctx), event)
	}()
}

// SubscriberCount returns the number of handlers for an event type
func (b *EventBus) SubscriberCount(eventType string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType])
}

type noopLogger struct{}

func (n *noopLogger) Debug(args ...interface{})                          {}
func (n *noopLogger) Info(args ...interface{})                           {}
func (n *noopLogger) Warn(args ...interface{})                           {}
func (n *noopLogger) Error(args ...interface{})                          {}
func (n *noopLogger) Fatal(args ...interface{})                          {}
func (n *noopLogger) Debugf(format string, args ...interface{})          {}
func (n *noopLogger) Infof(format string, args ...interface{})           {}
func (n *noopLogger) Warnf(format string, args ...interface{})           {}
func (n *noopLogger) Errorf(format string, args ...interface{})          {}
func (n *noopLogger) Fatalf(format string, args ...interface{})          {}
func (n *noopLogger) WithFields(map[string]interface{}) logger.Logger    { return n }
func (n *noopLogger) WithComponent(string) logger.Logger                 { return n }
