package client

import (
	"context"
	"errors"
	"fmt"

	"opsbridge/internal/sync/domain/model"
)

// WorkspaceClient is the engine's only boundary: an abstract document-store
// client. Implementations must report remote failures as *RemoteError so the
// engine can distinguish client errors from server errors.
type WorkspaceClient interface {
	// GetCollectionSchema returns the attribute name to type map of a collection.
	GetCollectionSchema(ctx context.Context, collectionID string) (map[string]model.AttributeType, error)
	// Query fetches one page of records matching the AND of the conditions.
	Query(ctx context.Context, collectionID string, conditions []model.FilterCondition, startCursor string, pageSize int) (*model.QueryPage, error)
	// CreateRecord creates a record in a collection and returns its snapshot.
	CreateRecord(ctx context.Context, collectionID string, attributes map[string]any) (*model.ExternalRecord, error)
	// UpdateRecord updates attributes of a record and returns its fresh snapshot.
	UpdateRecord(ctx context.Context, recordID string, attributes map[string]any) (*model.ExternalRecord, error)
}

// RemoteError carries the remote status classification for a failed call.
type RemoteError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("workspace api error (status %d, code %s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("workspace api error (status %d): %s", e.StatusCode, e.Message)
}

// IsClientError reports a 4xx remote status.
func (e *RemoteError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// IsServerError reports a 5xx remote status.
func (e *RemoteError) IsServerError() bool {
	return e.StatusCode >= 500
}

// ErrorKind classifies an error from a client call as "client_error",
// "server_error" or "transport_error" for per-target accounting.
func ErrorKind(err error) string {
	var remote *RemoteError
	if errors.As(err, &remote) {
		if remote.IsClientError() {
			return "client_error"
		}
		return "server_error"
	}
	return "transport_error"
}
