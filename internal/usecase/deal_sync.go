package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/xavierca1/deal-sync/internal/entity"
	"github.com/xavierca1/deal-sync/internal/infra/integration/hubspot"
)

// findDealByName returns the newest-created deal whose dealname matches
// exactly, or nil when there is none. Duplicated names are not an error.
func findDealByName(ctx context.Context, crm CRMClient, name string) (*entity.Deal, error) {
	objs, err := crm.SearchDeals(ctx, hubspot.SearchRequest{
		Filters: []hubspot.Filter{
			{PropertyName: entity.PropDealName, Operator: hubspot.OperatorEQ, Value: name},
		},
		Sorts: []hubspot.Sort{
			{PropertyName: entity.PropCreateDate, Direction: hubspot.SortDescending},
		},
		Properties: entity.LookupProperties,
		Limit:      1,
	})
	if err != nil {
		return nil, upstreamError("An error occurred while searching for the deal", err)
	}
	if len(objs) == 0 {
		return nil, nil
	}
	return toDeal(objs[0])
}

// findDealByID usa o GET do CRM; 404 vira nil, não erro.
func findDealByID(ctx context.Context, crm CRMClient, id string) (*entity.Deal, error) {
	obj, err := crm.GetDeal(ctx, id, entity.LookupProperties)
	if errors.Is(err, hubspot.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, upstreamError("An error occurred while fetching the deal", err)
	}
	return toDeal(obj)
}

func toDeal(obj *entity.Object) (*entity.Deal, error) {
	deal, err := entity.DealFromObject(obj)
	if err == nil {
		return deal, nil
	}
	code := CodeValidation
	if errors.Is(err, entity.ErrInvalidTimestamp) {
		code = CodeInvalidTimestamp
	}
	return nil, &DomainError{Code: code, Message: err.Error(), Err: err}
}

func createDeal(ctx context.Context, crm CRMClient, input CreateDealInput) (*entity.Deal, error) {
	props := entity.DealProperties{
		Name:      input.DealName,
		Amount:    input.Amount,
		CloseDate: normalizeDate(input.CloseDate),
		Stage:     input.DealStage,
	}.ToProperties()

	obj, err := crm.CreateDeal(ctx, props)
	if err != nil {
		return nil, upstreamError("An error occurred while creating a new deal", err)
	}
	return toDeal(obj)
}

// conditionalUpdate aplica a regra: só escreve se a data do cliente (meia-noite
// UTC) for estritamente maior que hs_lastmodifieddate.
func conditionalUpdate(
	ctx context.Context,
	crm CRMClient,
	recorder SyncRecorder,
	logger *zap.Logger,
	deal *entity.Deal,
	lastUpdated string,
	changes entity.DealProperties,
) (*DealOutput, error) {
	clientDate, err := entity.ParseClientDate(lastUpdated)
	if err != nil {
		return nil, &DomainError{Code: CodeInvalidTimestamp, Message: err.Error(), Err: err}
	}

	if deal.LastModified == nil {
		err := fmt.Errorf("%w: %s not found in deal properties", entity.ErrInvalidTimestamp, entity.PropLastModified)
		return nil, &DomainError{Code: CodeInvalidTimestamp, Message: err.Error(), Err: err}
	}

	event := entity.NewSyncEvent(entity.ActionSkipped, deal.ID, deal.Name, "")
	event.ClientLastUpdated = &clientDate
	event.CRMLastModified = deal.LastModified

	if !entity.IsNewer(clientDate, *deal.LastModified) {
		logger.Info("deal already current, skipping update",
			zap.String("deal_id", deal.ID),
			zap.Time("last_updated", clientDate),
			zap.Time("hs_lastmodifieddate", *deal.LastModified))
		record(ctx, recorder, logger, event)
		return &DealOutput{Outcome: OutcomeSkipped, Deal: deal, Message: MsgAlreadyCurrent}, nil
	}

	obj, err := crm.UpdateDeal(ctx, deal.ID, changes.ToProperties())
	if err != nil {
		return nil, upstreamError("An error occurred while updating the deal", err)
	}
	updated, err := toDeal(obj)
	if err != nil {
		return nil, err
	}

	logger.Info("deal updated", zap.String("deal_id", deal.ID), zap.Time("last_updated", clientDate))
	event.Action = entity.ActionUpdated
	record(ctx, recorder, logger, event)

	return &DealOutput{Outcome: OutcomeUpdated, Deal: updated}, nil
}

func record(ctx context.Context, recorder SyncRecorder, logger *zap.Logger, event *entity.SyncEvent) {
	if recorder == nil {
		return
	}
	if err := recorder.Record(ctx, event); err != nil {
		logger.Warn("failed to record sync event",
			zap.String("event_id", event.ID),
			zap.String("action", string(event.Action)),
			zap.Error(err))
	}
}

func nopIfNil(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
