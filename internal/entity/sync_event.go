package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type SyncAction string

const (
	ActionCreated           SyncAction = "CREATED"
	ActionUpdated           SyncAction = "UPDATED"
	ActionSkipped           SyncAction = "SKIPPED"
	ActionDuplicateRejected SyncAction = "DUPLICATE_REJECTED"
)

// SyncEvent registra uma decisão do gateway. Nunca guarda o estado do deal.
type SyncEvent struct {
	ID                string     `json:"id"`
	Action            SyncAction `json:"action"`
	DealID            string     `json:"deal_id,omitempty"`
	DealName          string     `json:"deal_name"`
	ClientLastUpdated *time.Time `json:"client_last_updated,omitempty"`
	CRMLastModified   *time.Time `json:"crm_last_modified,omitempty"`
	Source            string     `json:"source"`
	CreatedAt         time.Time  `json:"created_at"`
}

func NewSyncEvent(action SyncAction, dealID, dealName, source string) *SyncEvent {
	return &SyncEvent{
		ID:        uuid.New().String(),
		Action:    action,
		DealID:    dealID,
		DealName:  dealName,
		Source:    source,
		CreatedAt: time.Now().UTC(),
	}
}

type SyncEventRepositoryInterface interface {
	Save(ctx context.Context, event *SyncEvent) error
}
