package usecase

import (
	"context"
	"time"

	apperrors "opsbridge/internal/shared/errors"
	"opsbridge/internal/shared/logger"
	"opsbridge/internal/sync/domain/client"
	"opsbridge/internal/sync/domain/model"
)

// SchemaRegistry fetches and caches collection schemas for the duration of one
// engine invocation. Schemas are never mutated after the fetch; a re-fetch
// builds a new value. The registry is not safe for concurrent use; each
// invocation owns its own instance.
type SchemaRegistry struct {
	client client.WorkspaceClient
	logger logger.Logger
	cache  map[string]*model.CollectionSchema
}

// NewSchemaRegistry creates an empty per-invocation registry.
func NewSchemaRegistry(c client.WorkspaceClient, log logger.Logger) *SchemaRegistry {
	return &SchemaRegistry{
		client: c,
		logger: log,
		cache:  make(map[string]*model.CollectionSchema),
	}
}

func (e *Engine) newSchemaRegistry() *SchemaRegistry {
	return NewSchemaRegistry(e.client, e.logger)
}

// GetSchema returns the attribute map of a collection, fetching it on first
// use. A fetch failure is fatal to the calling operation: returning an empty
// schema instead would make every filter silently drop.
func (r *SchemaRegistry) GetSchema(ctx context.Context, collectionID string) (*model.CollectionSchema, error) {
	if collectionID == "" {
		return nil, apperrors.NewConfigurationError("collection identifier missing for schema fetch")
	}
	if cached, ok := r.cache[collectionID]; ok {
		return cached, nil
	}

	attrs, err := r.client.GetCollectionSchema(ctx, collectionID)
	if err != nil {
		r.logger.WithFields(map[string]interface{}{
			"collectionID": collectionID,
			"error":        err,
		}).Error("failed to fetch collection schema")
		return nil, apperrors.NewSchemaFetchError(collectionID, err)
	}

	schema := &model.CollectionSchema{
		CollectionID: collectionID,
		Attributes:   attrs,
		FetchedAt:    time.Now().UTC(),
	}
	r.cache[collectionID] = schema
	return schema, nil
}
