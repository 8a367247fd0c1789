package workspace_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opsbridge/internal/shared/logger"
	"opsbridge/internal/sync/adapter/workspace"
	"opsbridge/internal/sync/config"
	"opsbridge/internal/sync/domain/client"
	"opsbridge/internal/sync/domain/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *workspace.HTTPClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{
		WorkspaceToken:      "secret-token",
		WorkspaceBaseURL:    server.URL,
		WorkspaceAPIVersion: "2022-06-28",
		RequestTimeout:      5 * time.Second,
	}
	return workspace.NewHTTPClient(cfg, logger.NewLogger())
}

func TestGetCollectionSchema(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/databases/db-1", r.URL.Path)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		assert.Equal(t, "2022-06-28", r.Header.Get("Notion-Version"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"properties": map[string]any{
				"Estatus": map[string]any{"type": "select"},
				"Fecha":   map[string]any{"type": "date"},
				"Raro":    map[string]any{"type": "rollup"},
			},
		})
	})

	attrs, err := c.GetCollectionSchema(context.Background(), "db-1")

	require.NoError(t, err)
	assert.Equal(t, map[string]model.AttributeType{
		"Estatus": model.AttributeSingleChoice,
		"Fecha":   model.AttributeDate,
		"Raro":    model.AttributeUnknown,
	}, attrs)
}

func TestQuery_ComposesANDFilter(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/databases/db-1/query", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(50), body["page_size"])
		filter, ok := body["filter"].(map[string]any)
		require.True(t, ok)
		and, ok := filter["and"].([]any)
		require.True(t, ok)
		assert.Len(t, and, 2)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []any{
				map[string]any{"id": "r1", "url": "https://ws/r1"},
			},
			"has_more":    true,
			"next_cursor": "cur-2",
		})
	})

	conditions := []model.FilterCondition{
		{Attribute: "Estatus", Payload: map[string]any{"select": map[string]any{"equals": "Pendiente"}}},
		{Attribute: "Urgente", Payload: map[string]any{"checkbox": map[string]any{"equals": true}}},
	}
	page, err := c.Query(context.Background(), "db-1", conditions, "", 50)

	require.NoError(t, err)
	require.Len(t, page.Records, 1)
	assert.Equal(t, "r1", page.Records[0].ID)
	assert.True(t, page.HasMore)
	assert.Equal(t, "cur-2", page.NextCursor)
}

func TestQuery_SingleConditionSentBare(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		filter, ok := body["filter"].(map[string]any)
		require.True(t, ok)
		assert.NotContains(t, filter, "and")
		assert.Equal(t, "Estatus", filter["property"])

		_ = json.NewEncoder(w).Encode(map[string]any{"results": []any{}})
	})

	conditions := []model.FilterCondition{
		{Attribute: "Estatus", Payload: map[string]any{"select": map[string]any{"equals": "Pendiente"}}},
	}
	_, err := c.Query(context.Background(), "db-1", conditions, "", 10)
	require.NoError(t, err)
}

func TestQuery_ForwardsCursor(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "cur-2", body["start_cursor"])
		assert.NotContains(t, body, "filter")

		_ = json.NewEncoder(w).Encode(map[string]any{"results": []any{}})
	})

	_, err := c.Query(context.Background(), "db-1", nil, "cur-2", 10)
	require.NoError(t, err)
}

func TestCreateRecord(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/pages", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		parent, ok := body["parent"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "db-1", parent["database_id"])

		_ = json.NewEncoder(w).Encode(map[string]any{"id": "rec-1", "url": "https://ws/rec-1"})
	})

	record, err := c.CreateRecord(context.Background(), "db-1", map[string]any{
		"Estatus": model.SelectProperty("Pendiente"),
	})

	require.NoError(t, err)
	assert.Equal(t, "rec-1", record.ID)
	assert.Equal(t, "https://ws/rec-1", record.URL)
}

func TestUpdateRecord(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/pages/rec-1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "rec-1"})
	})

	record, err := c.UpdateRecord(context.Background(), "rec-1", map[string]any{
		"Fecha": model.DateProperty("2024-01-15T13:00:00", ""),
	})

	require.NoError(t, err)
	assert.Equal(t, "rec-1", record.ID)
}

func TestRemoteErrorDecoding(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"code":    "validation_error",
			"message": "property does not exist",
		})
	})

	_, err := c.GetCollectionSchema(context.Background(), "db-1")

	require.Error(t, err)
	var remote *client.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusBadRequest, remote.StatusCode)
	assert.Equal(t, "validation_error", remote.Code)
	assert.True(t, remote.IsClientError())
	assert.Equal(t, "client_error", client.ErrorKind(err))
}

func TestRemoteErrorWithoutBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.GetCollectionSchema(context.Background(), "db-1")

	require.Error(t, err)
	var remote *client.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusText(http.StatusBadGateway), remote.Message)
	assert.True(t, remote.IsServerError())
}
