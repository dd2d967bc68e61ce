package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/deal-sync/internal/entity"
	"github.com/xavierca1/deal-sync/internal/infra/integration/hubspot"
	"github.com/xavierca1/deal-sync/internal/usecase"
)

func TestFindDealRequestsNewestFirst(t *testing.T) {
	ctx := context.Background()
	crm := new(MockCRMClient)

	crm.On("SearchDeals", ctx, mock.MatchedBy(func(r hubspot.SearchRequest) bool {
		return len(r.Sorts) == 1 &&
			r.Sorts[0].PropertyName == "createdate" &&
			r.Sorts[0].Direction == hubspot.SortDescending &&
			assert.ObjectsAreEqual(entity.LookupProperties, r.Properties)
	})).Return([]*entity.Object{
		dealObject("newest", "Test-Deal", "2024-07-31T10:00:00Z"),
		dealObject("older", "Test-Deal", "2024-07-30T10:00:00Z"),
	}, nil)

	uc := usecase.NewFindDealUseCase(crm, nil)
	out, err := uc.Execute(ctx, "Test-Deal")

	require.NoError(t, err)
	assert.Equal(t, usecase.OutcomeFound, out.Outcome)
	assert.Equal(t, "newest", out.Deal.ID)
}

func TestFindDealNotFoundIsNotAnError(t *testing.T) {
	ctx := context.Background()
	crm := new(MockCRMClient)
	crm.On("SearchDeals", ctx, byName("nope")).Return([]*entity.Object{}, nil)

	uc := usecase.NewFindDealUseCase(crm, nil)
	out, err := uc.Execute(ctx, "nope")

	require.NoError(t, err)
	assert.Equal(t, usecase.OutcomeNotFound, out.Outcome)
	assert.Nil(t, out.Deal)
}

func TestFindDealUpstreamError(t *testing.T) {
	ctx := context.Background()
	crm := new(MockCRMClient)
	crm.On("SearchDeals", ctx, mock.Anything).Return(nil, &hubspot.APIError{Operation: "search", StatusCode: 502, Body: "bad gateway"})

	uc := usecase.NewFindDealUseCase(crm, nil)
	_, err := uc.Execute(ctx, "Test-Deal")

	require.Error(t, err)
	assert.True(t, usecase.IsTechnicalError(err))

	var apiErr *hubspot.APIError
	assert.True(t, errors.As(err, &apiErr))
}

func TestFindDealRequiresName(t *testing.T) {
	uc := usecase.NewFindDealUseCase(new(MockCRMClient), nil)
	_, err := uc.Execute(context.Background(), "  ")
	assert.Equal(t, usecase.CodeValidation, usecase.ErrorCode(err))
}
