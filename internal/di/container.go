package di

import (
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"opsbridge/internal/shared/eventbus"
	"opsbridge/internal/shared/logger"
	"opsbridge/internal/sync/adapter/events"
	synchttp "opsbridge/internal/sync/adapter/http"
	"opsbridge/internal/sync/adapter/workspace"
	"opsbridge/internal/sync/config"
	"opsbridge/internal/sync/usecase"
)

// Container wires the sync module's dependencies with proper lifecycle
// management. Everything is constructed once in InitializeSync and torn down
// in Close.
type Container struct {
	mu sync.Mutex

	Logger   logger.Logger
	Config   *config.Config
	EventBus *eventbus.EventBus
	Engine   *usecase.Engine
	Handler  *synchttp.Handler

	redisClient *redis.Client
}

// NewContainer creates an empty DI container.
func NewContainer(log logger.Logger) *Container {
	return &Container{Logger: log}
}

// InitializeSync builds the workspace client, engine, event bus and HTTP
// handler from the given configuration. When Redis is configured the outcome
// publisher is subscribed to the bus; otherwise outcomes stay in the logs.
func (c *Container) InitializeSync(cfg *config.Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cfg == nil {
		return fmt.Errorf("sync configuration must be loaded before initialization")
	}
	if c.Logger == nil {
		c.Logger = logger.NewLogger()
	}

	c.Config = cfg
	c.EventBus = eventbus.NewEventBus(c.Logger)

	workspaceClient := workspace.NewHTTPClient(cfg, c.Logger)
	c.Engine = usecase.NewEngine(workspaceClient, c.Logger)

	if cfg.RedisAddr != "" {
		c.redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		publisher := events.NewRedisPublisher(c.redisClient, c.Logger)
		publisher.Register(c.EventBus)
		c.Logger.Info("Outcome event publisher registered", "addr", cfg.RedisAddr)
	} else {
		c.Logger.Warn("REDIS_ADDR not set, outcome events will not be persisted")
	}

	c.Handler = synchttp.NewHandler(c.Engine, cfg, c.Logger, c.EventBus)
	return nil
}

// Close releases held resources.
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.redisClient != nil {
		if err := c.redisClient.Close(); err != nil {
			return fmt.Errorf("failed to close redis client: %w", err)
		}
		c.redisClient = nil
	}
	return nil
}
