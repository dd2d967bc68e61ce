package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/xavierca1/deal-sync/internal/entity"
)

// SyncDealUseCase é o fluxo do script: procura pelo nome, cria se não
// existir, senão aplica a atualização condicional.
type SyncDealUseCase struct {
	CRM      CRMClient
	Recorder SyncRecorder
	Logger   *zap.Logger
}

func NewSyncDealUseCase(crm CRMClient, recorder SyncRecorder, logger *zap.Logger) *SyncDealUseCase {
	return &SyncDealUseCase{CRM: crm, Recorder: recorder, Logger: nopIfNil(logger)}
}

func (uc *SyncDealUseCase) Execute(ctx context.Context, input CreateDealInput) (*DealOutput, error) {
	if errs := ValidateCreateDealInput(input); len(errs) > 0 {
		return nil, validationFailure(errs)
	}

	existing, err := findDealByName(ctx, uc.CRM, input.DealName)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		deal, err := createDeal(ctx, uc.CRM, input)
		if err != nil {
			return nil, err
		}
		uc.Logger.Info("deal created", zap.String("deal_id", deal.ID), zap.String("dealname", deal.Name))
		record(ctx, uc.Recorder, uc.Logger, entity.NewSyncEvent(entity.ActionCreated, deal.ID, deal.Name, ""))
		return &DealOutput{Outcome: OutcomeCreated, Deal: deal}, nil
	}

	changes := entity.DealProperties{
		Amount:    input.Amount,
		CloseDate: normalizeDate(input.CloseDate),
		Stage:     input.DealStage,
	}
	return conditionalUpdate(ctx, uc.CRM, uc.Recorder, uc.Logger, existing, input.LastUpdated, changes)
}
