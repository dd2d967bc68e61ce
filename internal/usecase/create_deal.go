package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/xavierca1/deal-sync/internal/entity"
)

type CreateDealUseCase struct {
	CRM             CRMClient
	Recorder        SyncRecorder
	Logger          *zap.Logger
	CheckDuplicates bool
}

func NewCreateDealUseCase(crm CRMClient, recorder SyncRecorder, logger *zap.Logger, checkDuplicates bool) *CreateDealUseCase {
	return &CreateDealUseCase{
		CRM:             crm,
		Recorder:        recorder,
		Logger:          nopIfNil(logger),
		CheckDuplicates: checkDuplicates,
	}
}

// Execute cria o deal sem o last_updated. Com CheckDuplicates, um deal com o
// mesmo nome já existente faz a criação falhar. A checagem não é atômica:
// duas chamadas concorrentes ainda podem criar duplicatas.
func (uc *CreateDealUseCase) Execute(ctx context.Context, input CreateDealInput) (*DealOutput, error) {
	if errs := ValidateCreateDealInput(input); len(errs) > 0 {
		return nil, validationFailure(errs)
	}

	if uc.CheckDuplicates {
		existing, err := findDealByName(ctx, uc.CRM, input.DealName)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			uc.Logger.Warn("duplicate deal rejected",
				zap.String("dealname", input.DealName),
				zap.String("existing_id", existing.ID))
			record(ctx, uc.Recorder, uc.Logger,
				entity.NewSyncEvent(entity.ActionDuplicateRejected, existing.ID, input.DealName, ""))
			return nil, &DomainError{
				Code:    CodeDuplicate,
				Message: fmt.Sprintf("Deal with name %q already exists", input.DealName),
			}
		}
	}

	deal, err := createDeal(ctx, uc.CRM, input)
	if err != nil {
		uc.Logger.Error("deal creation failed", zap.String("dealname", input.DealName), zap.Error(err))
		return nil, err
	}

	uc.Logger.Info("deal created", zap.String("deal_id", deal.ID), zap.String("dealname", deal.Name))
	record(ctx, uc.Recorder, uc.Logger, entity.NewSyncEvent(entity.ActionCreated, deal.ID, deal.Name, ""))

	return &DealOutput{Outcome: OutcomeCreated, Deal: deal}, nil
}
