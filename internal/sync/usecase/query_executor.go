package usecase

import (
	"context"

	"opsbridge/internal/sync/domain/model"
)

// QueryAll drives a cursor-paginated query to completion, accumulating records
// in order of arrival. A page failure aborts the walk: whatever was
// accumulated so far is returned with complete=false and the error is logged,
// not raised, so a transient backend failure mid-walk never aborts the
// caller's batch. Callers that need full-result guarantees must check the
// complete flag.
func (e *Engine) QueryAll(ctx context.Context, collectionID string, conditions []model.FilterCondition, pageSize int) ([]model.ExternalRecord, bool) {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	var records []model.ExternalRecord
	cursor := ""
	for {
		page, err := e.client.Query(ctx, collectionID, conditions, cursor, pageSize)
		if err != nil {
			e.logger.WithFields(map[string]interface{}{
				"collectionID": collectionID,
				"accumulated":  len(records),
				"error":        err,
			}).Error("query page failed, returning partial results")
			return records, false
		}

		records = append(records, page.Records...)
		if !page.HasMore {
			break
		}
		cursor = page.NextCursor
	}

	e.logger.WithFields(map[string]interface{}{
		"collectionID": collectionID,
		"total":        len(records),
	}).Info("collection query completed")
	return records, true
}
