package workspace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"opsbridge/internal/shared/logger"
	"opsbridge/internal/sync/config"
	"opsbridge/internal/sync/domain/client"
	"opsbridge/internal/sync/domain/model"
)

// HTTPClient implements client.WorkspaceClient against the workspace REST API:
// versioned JSON over HTTPS with bearer auth. Every call is one blocking
// round-trip bounded by the configured request timeout; retries are the
// caller's responsibility.
type HTTPClient struct {
	baseURL    string
	token      string
	apiVersion string
	httpc      *http.Client
	logger     logger.Logger
}

// NewHTTPClient creates a workspace client from engine configuration.
func NewHTTPClient(cfg *config.Config, log logger.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:    cfg.WorkspaceBaseURL,
		token:      cfg.WorkspaceToken,
		apiVersion: cfg.WorkspaceAPIVersion,
		httpc:      &http.Client{Timeout: cfg.RequestTimeout},
		logger:     log.WithComponent("workspace_client"),
	}
}

// GetCollectionSchema retrieves the collection and maps each remote property
// type into the engine's closed attribute enum.
func (c *HTTPClient) GetCollectionSchema(ctx context.Context, collectionID string) (map[string]model.AttributeType, error) {
	var body struct {
		Properties map[string]struct {
			Type string `json:"type"`
		} `json:"properties"`
	}
	path := fmt.Sprintf("/databases/%s", collectionID)
	if err := c.do(ctx, http.MethodGet, path, nil, &body); err != nil {
		return nil, err
	}

	attrs := make(map[string]model.AttributeType, len(body.Properties))
	for name, prop := range body.Properties {
		attrs[name] = model.ParseAttributeType(prop.Type)
	}
	return attrs, nil
}

// Query fetches one page of records. Conditions are ANDed; a single condition
// is sent bare, matching the remote filter grammar.
func (c *HTTPClient) Query(ctx context.Context, collectionID string, conditions []model.FilterCondition, startCursor string, pageSize int) (*model.QueryPage, error) {
	req := map[string]any{"page_size": pageSize}
	if filter := composeFilter(conditions); filter != nil {
		req["filter"] = filter
	}
	if startCursor != "" {
		req["start_cursor"] = startCursor
	}

	var body struct {
		Results []struct {
			ID         string         `json:"id"`
			URL        string         `json:"url"`
			Properties map[string]any `json:"properties"`
		} `json:"results"`
		HasMore    bool   `json:"has_more"`
		NextCursor string `json:"next_cursor"`
	}
	path := fmt.Sprintf("/databases/%s/query", collectionID)
	if err := c.do(ctx, http.MethodPost, path, req, &body); err != nil {
		return nil, err
	}

	page := &model.QueryPage{
		Records:    make([]model.ExternalRecord, 0, len(body.Results)),
		HasMore:    body.HasMore,
		NextCursor: body.NextCursor,
	}
	for _, r := range body.Results {
		page.Records = append(page.Records, model.ExternalRecord{
			ID:         r.ID,
			URL:        r.URL,
			Attributes: r.Properties,
		})
	}
	return page, nil
}

// CreateRecord creates a record in the collection and returns its snapshot.
func (c *HTTPClient) CreateRecord(ctx context.Context, collectionID string, attributes map[string]any) (*model.ExternalRecord, error) {
	req := map[string]any{
		"parent":     map[string]any{"database_id": collectionID},
		"properties": attributes,
	}
	var body recordBody
	if err := c.do(ctx, http.MethodPost, "/pages", req, &body); err != nil {
		return nil, err
	}
	return body.toRecord(), nil
}

// UpdateRecord patches attributes of a record and returns its fresh snapshot.
func (c *HTTPClient) UpdateRecord(ctx context.Context, recordID string, attributes map[string]any) (*model.ExternalRecord, error) {
	req := map[string]any{"properties": attributes}
	var body recordBody
	path := fmt.Sprintf("/pages/%s", recordID)
	if err := c.do(ctx, http.MethodPatch, path, req, &body); err != nil {
		return nil, err
	}
	return body.toRecord(), nil
}

type recordBody struct {
	ID         string         `json:"id"`
	URL        string         `json:"url"`
	Properties map[string]any `json:"properties"`
}

func (b *recordBody) toRecord() *model.ExternalRecord {
	return &model.ExternalRecord{ID: b.ID, URL: b.URL, Attributes: b.Properties}
}

// composeFilter turns engine conditions into the remote filter grammar:
// nil for none, a bare condition for one, {"and": [...]} otherwise.
func composeFilter(conditions []model.FilterCondition) map[string]any {
	if len(conditions) == 0 {
		return nil
	}
	wire := make([]any, 0, len(conditions))
	for _, cond := range conditions {
		entry := map[string]any{"property": cond.Attribute}
		for k, v := range cond.Payload {
			entry[k] = v
		}
		wire = append(wire, entry)
	}
	if len(wire) == 1 {
		return wire[0].(map[string]any)
	}
	return map[string]any{"and": wire}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, reqBody any, out any) error {
	var reader io.Reader
	if reqBody != nil {
		raw, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", c.apiVersion)
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("workspace request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode workspace response: %w", err)
	}
	return nil
}

// decodeError folds a non-2xx response into a RemoteError carrying the remote
// error code and message so the engine can classify client vs server failures.
func (c *HTTPClient) decodeError(resp *http.Response) error {
	remote := &client.RemoteError{StatusCode: resp.StatusCode}
	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil && json.Unmarshal(raw, &body) == nil {
		remote.Code = body.Code
		remote.Message = body.Message
	}
	if remote.Message == "" {
		remote.Message = http.StatusText(resp.StatusCode)
	}
	c.logger.WithFields(map[string]interface{}{
		"status": resp.StatusCode,
		"code":   remote.Code,
	}).Warn("workspace api returned an error")
	return remote
}
