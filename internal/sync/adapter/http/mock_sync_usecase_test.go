package http_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"opsbridge/internal/sync/domain/model"
	"opsbridge/internal/sync/usecase"
)

// mockSyncUsecase is a shared mock type for the SyncUsecase interface
type mockSyncUsecase struct {
	mock.Mock
}

func (m *mockSyncUsecase) ShiftDates(ctx context.Context, req usecase.ShiftDatesRequest) (*usecase.ShiftReport, model.OutcomeClass, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Get(1).(model.OutcomeClass), args.Error(2)
	}
	return args.Get(0).(*usecase.ShiftReport), args.Get(1).(model.OutcomeClass), args.Error(2)
}

func (m *mockSyncUsecase) Submit(ctx context.Context, req usecase.SubmitRequest) (*usecase.SubmitReport, model.OutcomeClass, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Get(1).(model.OutcomeClass), args.Error(2)
	}
	return args.Get(0).(*usecase.SubmitReport), args.Get(1).(model.OutcomeClass), args.Error(2)
}

func (m *mockSyncUsecase) ListAttributes(ctx context.Context, collectionID string) ([]usecase.AttributeInfo, error) {
	args := m.Called(ctx, collectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]usecase.AttributeInfo), args.Error(1)
}
