package usecase

import (
	"context"
	"sort"

	"opsbridge/internal/shared/logger"
	"opsbridge/internal/sync/domain/client"
)

// Engine implements the synchronization engine. It owns no state across
// invocations: each call builds its own schema cache, cursor and counters.
// All processing is sequential, in input order; the remote API is rate
// limited and first-success locator capture must follow input order.
type Engine struct {
	client client.WorkspaceClient
	logger logger.Logger
}

// NewEngine creates the engine with an injected client handle. The engine
// never reads process-wide globals or the environment.
func NewEngine(c client.WorkspaceClient, log logger.Logger) *Engine {
	return &Engine{
		client: c,
		logger: log.WithComponent("sync_engine"),
	}
}

var _ SyncUsecase = (*Engine)(nil)

// ListAttributes returns the attribute name/type pairs of a collection, sorted
// by name, for callers that need the available fields for filters or display.
func (e *Engine) ListAttributes(ctx context.Context, collectionID string) ([]AttributeInfo, error) {
	registry := e.newSchemaRegistry()
	schema, err := registry.GetSchema(ctx, collectionID)
	if err != nil {
		return nil, err
	}

	infos := make([]AttributeInfo, 0, len(schema.Attributes))
	for name, attrType := range schema.Attributes {
		infos = append(infos, AttributeInfo{Name: name, Type: attrType.String()})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}
