package usecase

import "github.com/xavierca1/deal-sync/internal/entity"

// CreateDealInput é o DealCreateRequest. LastUpdated é só um aviso do
// cliente e nunca é enviado ao CRM.
type CreateDealInput struct {
	Amount      *float64 `json:"amount"`
	CloseDate   string   `json:"closedate"`
	DealName    string   `json:"dealname"`
	DealStage   string   `json:"dealstage"`
	LastUpdated string   `json:"last_updated"`
}

// UpdateDealInput identifies the deal by ID or by DealName, never both.
type UpdateDealInput struct {
	ID          string   `json:"id,omitempty"`
	DealName    string   `json:"dealname,omitempty"`
	Amount      *float64 `json:"amount"`
	CloseDate   string   `json:"closedate,omitempty"`
	DealStage   string   `json:"dealstage,omitempty"`
	LastUpdated string   `json:"last_updated"`
}

type ListDealsInput struct {
	Limit int
}

type Outcome string

const (
	OutcomeFound    Outcome = "FOUND"
	OutcomeNotFound Outcome = "NOT_FOUND"
	OutcomeCreated  Outcome = "CREATED"
	OutcomeUpdated  Outcome = "UPDATED"
	OutcomeSkipped  Outcome = "SKIPPED"
)

const MsgAlreadyCurrent = "Deal already contains latest information"

type DealOutput struct {
	Outcome Outcome      `json:"outcome"`
	Deal    *entity.Deal `json:"deal,omitempty"`
	Message string       `json:"message,omitempty"`
}

type ListDealsOutput struct {
	Total int            `json:"total"`
	Deals []*entity.Deal `json:"results"`
}
