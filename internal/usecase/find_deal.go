package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

type FindDealUseCase struct {
	CRM    CRMClient
	Logger *zap.Logger
}

func NewFindDealUseCase(crm CRMClient, logger *zap.Logger) *FindDealUseCase {
	return &FindDealUseCase{CRM: crm, Logger: nopIfNil(logger)}
}

// Execute devolve OutcomeFound com o deal mais recente com esse nome, ou
// OutcomeNotFound. Só falhas do CRM viram erro.
func (uc *FindDealUseCase) Execute(ctx context.Context, dealName string) (*DealOutput, error) {
	if strings.TrimSpace(dealName) == "" {
		return nil, validationFailure([]ValidationError{{"dealname", "is required"}})
	}

	deal, err := findDealByName(ctx, uc.CRM, dealName)
	if err != nil {
		uc.Logger.Error("deal lookup failed", zap.String("dealname", dealName), zap.Error(err))
		return nil, err
	}
	if deal == nil {
		return &DealOutput{Outcome: OutcomeNotFound, Message: "Deal not found"}, nil
	}
	return &DealOutput{Outcome: OutcomeFound, Deal: deal}, nil
}
