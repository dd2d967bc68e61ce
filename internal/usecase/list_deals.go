package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/xavierca1/deal-sync/internal/entity"
	"github.com/xavierca1/deal-sync/internal/infra/integration/hubspot"
)

const DefaultListLimit = 100

type ListDealsUseCase struct {
	CRM    CRMClient
	Logger *zap.Logger
}

func NewListDealsUseCase(crm CRMClient, logger *zap.Logger) *ListDealsUseCase {
	return &ListDealsUseCase{CRM: crm, Logger: nopIfNil(logger)}
}

// Execute busca uma página de deals não arquivados. Sem loop de paginação:
// é só para exibição.
func (uc *ListDealsUseCase) Execute(ctx context.Context, input ListDealsInput) (*ListDealsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > hubspot.MaxPageSize {
		limit = hubspot.MaxPageSize
	}

	objs, err := uc.CRM.ListDeals(ctx, limit, false)
	if err != nil {
		uc.Logger.Error("deal listing failed", zap.Error(err))
		return nil, upstreamError("An error occurred while fetching deals", err)
	}

	deals := make([]*entity.Deal, 0, len(objs))
	for _, obj := range objs {
		deal, err := entity.DealFromObject(obj)
		if err != nil {
			uc.Logger.Warn("deal with malformed properties, showing raw", zap.String("deal_id", obj.ID), zap.Error(err))
			deal = &entity.Deal{ID: obj.ID, Properties: obj.Properties, CreatedAt: obj.CreatedAt, UpdatedAt: obj.UpdatedAt}
		}
		deals = append(deals, deal)
	}

	return &ListDealsOutput{Total: len(deals), Deals: deals}, nil
}
