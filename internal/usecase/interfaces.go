package usecase

import (
	"context"

	"github.com/xavierca1/deal-sync/internal/entity"
	"github.com/xavierca1/deal-sync/internal/infra/integration/hubspot"
)

// CRMClient is the slice of the HubSpot client the use cases need.
type CRMClient interface {
	SearchDeals(ctx context.Context, input hubspot.SearchRequest) ([]*entity.Object, error)
	CreateDeal(ctx context.Context, properties map[string]string) (*entity.Object, error)
	GetDeal(ctx context.Context, id string, properties []string) (*entity.Object, error)
	UpdateDeal(ctx context.Context, id string, properties map[string]string) (*entity.Object, error)
	ListDeals(ctx context.Context, limit int, archived bool) ([]*entity.Object, error)
}

// SyncRecorder observa as decisões do gateway (journal, fila). Falhas
// aqui nunca derrubam a operação.
type SyncRecorder interface {
	Record(ctx context.Context, event *entity.SyncEvent) error
}

type EventPublisher interface {
	PublishDealSynced(ctx context.Context, event *entity.SyncEvent) error
}
