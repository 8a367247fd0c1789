package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "opsbridge/internal/shared/errors"
	"opsbridge/internal/sync/domain/model"
	"opsbridge/internal/sync/usecase"
)

func dateRecord(id, start, end string) model.ExternalRecord {
	date := map[string]any{"start": start}
	if end != "" {
		date["end"] = end
	}
	return model.ExternalRecord{
		ID: id,
		Attributes: map[string]any{
			"Date": map[string]any{"date": date},
		},
	}
}

func shiftRequest(hours int, threshold string) usecase.ShiftDatesRequest {
	return usecase.ShiftDatesRequest{
		CollectionID:  "schedule",
		Hours:         hours,
		ThresholdDate: threshold,
		DateAttribute: "Date",
	}
}

func TestShiftDates_ShiftsEligibleAndSkipsBeforeThreshold(t *testing.T) {
	updates := make(map[string]map[string]any)
	client := &mockWorkspaceClient{
		queryFn: singlePage(
			dateRecord("old", "2024-01-09", ""),
			dateRecord("due", "2024-01-15T08:00", ""),
		),
		updateFn: func(_ context.Context, recordID string, attrs map[string]any) (*model.ExternalRecord, error) {
			updates[recordID] = attrs
			return &model.ExternalRecord{ID: recordID}, nil
		},
	}
	engine := newTestEngine(client)

	report, outcome, err := engine.ShiftDates(context.Background(), shiftRequest(5, "2024-01-10"))

	require.NoError(t, err)
	assert.Equal(t, model.OutcomeOK, outcome)
	assert.Equal(t, 2, report.TotalFound)
	assert.Equal(t, 1, report.Updated)
	assert.Equal(t, 1, report.Skipped)
	assert.Zero(t, report.Failed)
	assert.True(t, report.Complete)

	require.Contains(t, updates, "due")
	assert.Equal(t, map[string]any{
		"Date": map[string]any{
			"date": map[string]any{"start": "2024-01-15T13:00:00", "end": nil},
		},
	}, updates["due"])
	assert.NotContains(t, updates, "old")
}

func TestShiftDates_ShiftsEndAlongsideStart(t *testing.T) {
	var got map[string]any
	client := &mockWorkspaceClient{
		queryFn: singlePage(dateRecord("r1", "2024-03-01T10:00:00", "2024-03-01T12:00:00")),
		updateFn: func(_ context.Context, _ string, attrs map[string]any) (*model.ExternalRecord, error) {
			got = attrs
			return &model.ExternalRecord{}, nil
		},
	}
	engine := newTestEngine(client)

	report, outcome, err := engine.ShiftDates(context.Background(), shiftRequest(-2, "2024-01-01"))

	require.NoError(t, err)
	assert.Equal(t, model.OutcomeOK, outcome)
	assert.Equal(t, 1, report.Updated)
	assert.Equal(t, map[string]any{
		"Date": map[string]any{
			"date": map[string]any{"start": "2024-03-01T08:00:00", "end": "2024-03-01T10:00:00"},
		},
	}, got)
}

func TestShiftDates_UnparsableAndMissingDatesAreSkipped(t *testing.T) {
	noDate := model.ExternalRecord{ID: "empty", Attributes: map[string]any{}}
	client := &mockWorkspaceClient{
		queryFn: singlePage(
			noDate,
			dateRecord("garbled", "not-a-date", ""),
			dateRecord("good", "2024-06-01", ""),
		),
		updateFn: func(_ context.Context, recordID string, _ map[string]any) (*model.ExternalRecord, error) {
			return &model.ExternalRecord{ID: recordID}, nil
		},
	}
	engine := newTestEngine(client)

	report, outcome, err := engine.ShiftDates(context.Background(), shiftRequest(1, "2024-01-01"))

	require.NoError(t, err)
	assert.Equal(t, model.OutcomeOK, outcome)
	assert.Equal(t, 3, report.TotalFound)
	assert.Equal(t, 1, report.Updated)
	assert.Equal(t, 2, report.Skipped)
	// Tally invariant: every record reviewed lands in exactly one bucket.
	assert.Equal(t, report.TotalFound, report.Updated+report.Failed+report.Skipped)
}

func TestShiftDates_UpdateFailuresAreTalliedNotRaised(t *testing.T) {
	client := &mockWorkspaceClient{
		queryFn: singlePage(
			dateRecord("ok1", "2024-06-01", ""),
			dateRecord("bad", "2024-06-02", ""),
			dateRecord("ok2", "2024-06-03", ""),
		),
		updateFn: func(_ context.Context, recordID string, _ map[string]any) (*model.ExternalRecord, error) {
			if recordID == "bad" {
				return nil, fmt.Errorf("conflict")
			}
			return &model.ExternalRecord{ID: recordID}, nil
		},
	}
	engine := newTestEngine(client)

	report, outcome, err := engine.ShiftDates(context.Background(), shiftRequest(24, "2024-01-01"))

	require.NoError(t, err)
	assert.Equal(t, model.OutcomePartial, outcome)
	assert.Equal(t, 2, report.Updated)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 3, client.updateCalls)
}

func TestShiftDates_AllUpdatesFailing(t *testing.T) {
	client := &mockWorkspaceClient{
		queryFn: singlePage(dateRecord("r1", "2024-06-01", "")),
		updateFn: func(_ context.Context, _ string, _ map[string]any) (*model.ExternalRecord, error) {
			return nil, fmt.Errorf("backend down")
		},
	}
	engine := newTestEngine(client)

	report, outcome, err := engine.ShiftDates(context.Background(), shiftRequest(1, "2024-01-01"))

	require.NoError(t, err)
	assert.Equal(t, model.OutcomeInternalError, outcome)
	assert.Equal(t, 1, report.Failed)
	assert.Zero(t, report.Updated)
}

func TestShiftDates_EmptyResultIsOK(t *testing.T) {
	client := &mockWorkspaceClient{queryFn: singlePage()}
	engine := newTestEngine(client)

	report, outcome, err := engine.ShiftDates(context.Background(), shiftRequest(1, "2024-01-01"))

	require.NoError(t, err)
	assert.Equal(t, model.OutcomeOK, outcome)
	assert.Zero(t, report.TotalFound)
	assert.NotEmpty(t, report.Summary)
}

func TestShiftDates_InvalidThresholdRejected(t *testing.T) {
	client := &mockWorkspaceClient{}
	engine := newTestEngine(client)

	report, outcome, err := engine.ShiftDates(context.Background(), shiftRequest(1, "10/01/2024"))

	assert.Nil(t, report)
	assert.Equal(t, model.OutcomeValidationError, outcome)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Zero(t, client.totalCalls())
}

func TestShiftDates_FiltersRequireSchemaFetch(t *testing.T) {
	client := &mockWorkspaceClient{
		getSchemaFn: staticSchema(map[string]model.AttributeType{
			"Estatus": model.AttributeSingleChoice,
		}),
		queryFn: func(_ context.Context, _ string, conditions []model.FilterCondition, _ string, _ int) (*model.QueryPage, error) {
			require.Len(t, conditions, 1)
			assert.Equal(t, "Estatus", conditions[0].Attribute)
			return &model.QueryPage{}, nil
		},
	}
	engine := newTestEngine(client)

	req := shiftRequest(1, "2024-01-01")
	req.Filters = map[string]string{"Estatus": "Pendiente"}
	_, outcome, err := engine.ShiftDates(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, model.OutcomeOK, outcome)
	assert.Equal(t, 1, client.getSchemaCalls)
}

func TestShiftDates_SchemaFetchFailureIsServiceUnavailable(t *testing.T) {
	client := &mockWorkspaceClient{
		getSchemaFn: func(context.Context, string) (map[string]model.AttributeType, error) {
			return nil, fmt.Errorf("remote 500")
		},
	}
	engine := newTestEngine(client)

	req := shiftRequest(1, "2024-01-01")
	req.Filters = map[string]string{"Estatus": "Pendiente"}
	report, outcome, err := engine.ShiftDates(context.Background(), req)

	assert.Nil(t, report)
	assert.Equal(t, model.OutcomeServiceUnavailable, outcome)
	assert.True(t, apperrors.IsSchemaFetch(err))
	assert.Zero(t, client.queryCalls)
}
