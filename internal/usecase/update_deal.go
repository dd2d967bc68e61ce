package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/xavierca1/deal-sync/internal/entity"
)

type UpdateDealUseCase struct {
	CRM      CRMClient
	Recorder SyncRecorder
	Logger   *zap.Logger
}

func NewUpdateDealUseCase(crm CRMClient, recorder SyncRecorder, logger *zap.Logger) *UpdateDealUseCase {
	return &UpdateDealUseCase{CRM: crm, Recorder: recorder, Logger: nopIfNil(logger)}
}

// Execute resolve o deal por ID (GET) ou por nome (busca) e só envia o
// amount quando last_updated é mais novo que hs_lastmodifieddate.
func (uc *UpdateDealUseCase) Execute(ctx context.Context, input UpdateDealInput) (*DealOutput, error) {
	if errs := ValidateUpdateDealInput(input); len(errs) > 0 {
		return nil, validationFailure(errs)
	}

	var (
		deal *entity.Deal
		err  error
	)
	if input.ID != "" {
		deal, err = findDealByID(ctx, uc.CRM, input.ID)
	} else {
		deal, err = findDealByName(ctx, uc.CRM, input.DealName)
	}
	if err != nil {
		uc.Logger.Error("deal resolution failed",
			zap.String("id", input.ID),
			zap.String("dealname", input.DealName),
			zap.Error(err))
		return nil, err
	}
	if deal == nil {
		return &DealOutput{Outcome: OutcomeNotFound, Message: "Deal not found"}, nil
	}

	changes := entity.DealProperties{
		Amount: input.Amount,
		Stage:  input.DealStage,
	}
	if input.CloseDate != "" {
		changes.CloseDate = normalizeDate(input.CloseDate)
	}

	return conditionalUpdate(ctx, uc.CRM, uc.Recorder, uc.Logger, deal, input.LastUpdated, changes)
}
