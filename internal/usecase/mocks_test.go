package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/deal-sync/internal/entity"
	"github.com/xavierca1/deal-sync/internal/infra/integration/hubspot"
)

// MockCRMClient
type MockCRMClient struct {
	mock.Mock
}

func (m *MockCRMClient) SearchDeals(ctx context.Context, input hubspot.SearchRequest) ([]*entity.Object, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Object), args.Error(1)
}

func (m *MockCRMClient) CreateDeal(ctx context.Context, properties map[string]string) (*entity.Object, error) {
	args := m.Called(ctx, properties)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Object), args.Error(1)
}

func (m *MockCRMClient) GetDeal(ctx context.Context, id string, properties []string) (*entity.Object, error) {
	args := m.Called(ctx, id, properties)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Object), args.Error(1)
}

func (m *MockCRMClient) UpdateDeal(ctx context.Context, id string, properties map[string]string) (*entity.Object, error) {
	args := m.Called(ctx, id, properties)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Object), args.Error(1)
}

func (m *MockCRMClient) ListDeals(ctx context.Context, limit int, archived bool) ([]*entity.Object, error) {
	args := m.Called(ctx, limit, archived)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Object), args.Error(1)
}

// MockSyncRecorder
type MockSyncRecorder struct {
	mock.Mock
}

func (m *MockSyncRecorder) Record(ctx context.Context, event *entity.SyncEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockJournal
type MockJournal struct {
	mock.Mock
}

func (m *MockJournal) Save(ctx context.Context, event *entity.SyncEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishDealSynced(ctx context.Context, event *entity.SyncEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func dealObject(id, name, lastModified string) *entity.Object {
	return &entity.Object{
		ID: id,
		Properties: map[string]string{
			"dealname":            name,
			"amount":              "1000",
			"hs_lastmodifieddate": lastModified,
		},
	}
}

func byName(name string) interface{} {
	return mock.MatchedBy(func(r hubspot.SearchRequest) bool {
		return len(r.Filters) == 1 &&
			r.Filters[0].PropertyName == "dealname" &&
			r.Filters[0].Operator == "EQ" &&
			r.Filters[0].Value == name
	})
}

func amount(v float64) *float64 {
	return &v
}
