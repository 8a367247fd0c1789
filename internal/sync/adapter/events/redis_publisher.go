package events

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"opsbridge/internal/shared/eventbus"
	"opsbridge/internal/shared/logger"
	"opsbridge/internal/sync/domain/model"
)

// OutcomeEventType is the bus event type every engine operation publishes on
// completion.
const OutcomeEventType = "sync.outcome"

// outcomeStream is the Redis stream holding the operation audit trail.
const outcomeStream = "sync:outcomes"

// OutcomeEvent summarizes one completed engine operation for downstream
// consumers (audit trail, dashboards).
type OutcomeEvent struct {
	CorrelationID string
	Operation     string
	Outcome       model.OutcomeClass
	Succeeded     int
	Failed        int
	Skipped       int
	At            time.Time
}

func (e OutcomeEvent) Type() string { return OutcomeEventType }

func (e OutcomeEvent) Data() interface{} { return e }

func (e OutcomeEvent) Timestamp() time.Time { return e.At }

// RedisPublisher persists outcome events to a Redis Stream. Stream entries are
// flat string maps so they can be consumed without a schema.
type RedisPublisher struct {
	client *redis.Client
	logger logger.Logger
}

// NewRedisPublisher creates a publisher backed by the given Redis client.
func NewRedisPublisher(client *redis.Client, log logger.Logger) *RedisPublisher {
	return &RedisPublisher{
		client: client,
		logger: log,
	}
}

// Register subscribes the publisher to outcome events on the bus.
func (p *RedisPublisher) Register(bus *eventbus.EventBus) {
	bus.Subscribe(OutcomeEventType, p.Handle)
}

// Handle appends one outcome event to the audit stream.
func (p *RedisPublisher) Handle(ctx context.Context, event eventbus.Event) error {
	outcome, ok := event.Data().(OutcomeEvent)
	if !ok {
		p.logger.Warn("unexpected event payload on outcome stream",
			zap.String("eventType", event.Type()))
		return nil
	}

	_, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: outcomeStream,
		Values: map[string]interface{}{
			"correlationId": outcome.CorrelationID,
			"operation":     outcome.Operation,
			"outcome":       outcome.Outcome.String(),
			"succeeded":     outcome.Succeeded,
			"failed":        outcome.Failed,
			"skipped":       outcome.Skipped,
			"timestamp":     outcome.At.UnixNano(),
		},
	}).Result()

	if err != nil {
		p.logger.Error("Failed to store outcome event in Redis",
			zap.String("stream", outcomeStream),
			zap.String("correlationId", outcome.CorrelationID),
			zap.Error(err))
		return err
	}

	p.logger.Debug("Outcome event stored in Redis",
		zap.String("stream", outcomeStream),
		zap.String("operation", outcome.Operation),
		zap.String("outcome", outcome.Outcome.String()))
	return nil
}
