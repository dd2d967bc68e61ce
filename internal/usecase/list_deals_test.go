package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/deal-sync/internal/entity"
	"github.com/xavierca1/deal-sync/internal/usecase"
)

func TestListDealsDefaultsToOneHundred(t *testing.T) {
	ctx := context.Background()
	crm := new(MockCRMClient)
	crm.On("ListDeals", ctx, 100, false).Return([]*entity.Object{
		dealObject("1", "A", "2024-07-31T10:00:00Z"),
		{ID: "2", Properties: map[string]string{"amount": "not-a-number"}},
	}, nil)

	uc := usecase.NewListDealsUseCase(crm, nil)
	out, err := uc.Execute(ctx, usecase.ListDealsInput{})

	require.NoError(t, err)
	assert.Equal(t, 2, out.Total)
	assert.Equal(t, "A", out.Deals[0].Name)
	assert.Equal(t, "not-a-number", out.Deals[1].Properties["amount"], "malformed deals are still listed raw")
}

func TestListDealsCapsLimit(t *testing.T) {
	ctx := context.Background()
	crm := new(MockCRMClient)
	crm.On("ListDeals", ctx, 100, false).Return([]*entity.Object{}, nil)

	uc := usecase.NewListDealsUseCase(crm, nil)
	_, err := uc.Execute(ctx, usecase.ListDealsInput{Limit: 1000})

	require.NoError(t, err)
	crm.AssertExpectations(t)
}

func TestListDealsUpstreamError(t *testing.T) {
	ctx := context.Background()
	crm := new(MockCRMClient)
	crm.On("ListDeals", ctx, 10, false).Return(nil, errors.New("401 unauthorized"))

	uc := usecase.NewListDealsUseCase(crm, nil)
	_, err := uc.Execute(ctx, usecase.ListDealsInput{Limit: 10})

	assert.Equal(t, usecase.CodeUpstream, usecase.ErrorCode(err))
}
