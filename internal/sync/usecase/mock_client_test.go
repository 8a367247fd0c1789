package usecase_test

import (
	"context"
	"fmt"

	"opsbridge/internal/shared/logger"
	"opsbridge/internal/sync/domain/model"
	"opsbridge/internal/sync/usecase"
)

// mockWorkspaceClient is a function-field mock for the workspace port. Call
// counters let tests assert on the number of remote round-trips.
type mockWorkspaceClient struct {
	getSchemaFn func(ctx context.Context, collectionID string) (map[string]model.AttributeType, error)
	queryFn     func(ctx context.Context, collectionID string, conditions []model.FilterCondition, startCursor string, pageSize int) (*model.QueryPage, error)
	createFn    func(ctx context.Context, collectionID string, attributes map[string]any) (*model.ExternalRecord, error)
	updateFn    func(ctx context.Context, recordID string, attributes map[string]any) (*model.ExternalRecord, error)

	getSchemaCalls int
	queryCalls     int
	createCalls    int
	updateCalls    int
}

func (m *mockWorkspaceClient) GetCollectionSchema(ctx context.Context, collectionID string) (map[string]model.AttributeType, error) {
	m.getSchemaCalls++
	if m.getSchemaFn == nil {
		return nil, fmt.Errorf("unexpected GetCollectionSchema call for %s", collectionID)
	}
	return m.getSchemaFn(ctx, collectionID)
}

func (m *mockWorkspaceClient) Query(ctx context.Context, collectionID string, conditions []model.FilterCondition, startCursor string, pageSize int) (*model.QueryPage, error) {
	m.queryCalls++
	if m.queryFn == nil {
		return nil, fmt.Errorf("unexpected Query call for %s", collectionID)
	}
	return m.queryFn(ctx, collectionID, conditions, startCursor, pageSize)
}

func (m *mockWorkspaceClient) CreateRecord(ctx context.Context, collectionID string, attributes map[string]any) (*model.ExternalRecord, error) {
	m.createCalls++
	if m.createFn == nil {
		return nil, fmt.Errorf("unexpected CreateRecord call for %s", collectionID)
	}
	return m.createFn(ctx, collectionID, attributes)
}

func (m *mockWorkspaceClient) UpdateRecord(ctx context.Context, recordID string, attributes map[string]any) (*model.ExternalRecord, error) {
	m.updateCalls++
	if m.updateFn == nil {
		return nil, fmt.Errorf("unexpected UpdateRecord call for %s", recordID)
	}
	return m.updateFn(ctx, recordID, attributes)
}

func (m *mockWorkspaceClient) totalCalls() int {
	return m.getSchemaCalls + m.queryCalls + m.createCalls + m.updateCalls
}

func newTestEngine(client *mockWorkspaceClient) *usecase.Engine {
	return usecase.NewEngine(client, logger.NewLogger())
}

// singlePage wires the mock to serve one static page of records.
func singlePage(records ...model.ExternalRecord) func(context.Context, string, []model.FilterCondition, string, int) (*model.QueryPage, error) {
	return func(context.Context, string, []model.FilterCondition, string, int) (*model.QueryPage, error) {
		return &model.QueryPage{Records: records}, nil
	}
}

func staticSchema(attrs map[string]model.AttributeType) func(context.Context, string) (map[string]model.AttributeType, error) {
	return func(context.Context, string) (map[string]model.AttributeType, error) {
		return attrs, nil
	}
}
