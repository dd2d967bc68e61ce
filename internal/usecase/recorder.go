package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/xavierca1/deal-sync/internal/entity"
)

// SyncEventRecorder grava o evento no journal e publica na fila, quando
// configurados. Source identifica a entrada (HTTP, CLI).
type SyncEventRecorder struct {
	Source    string
	Journal   entity.SyncEventRepositoryInterface
	Publisher EventPublisher
}

func NewSyncEventRecorder(source string, journal entity.SyncEventRepositoryInterface, publisher EventPublisher) *SyncEventRecorder {
	return &SyncEventRecorder{Source: source, Journal: journal, Publisher: publisher}
}

func (r *SyncEventRecorder) Record(ctx context.Context, event *entity.SyncEvent) error {
	if event.Source == "" {
		event.Source = r.Source
	}

	var errs []error
	if r.Journal != nil {
		if err := r.Journal.Save(ctx, event); err != nil {
			errs = append(errs, fmt.Errorf("journal: %w", err))
		}
	}
	if r.Publisher != nil {
		if err := r.Publisher.PublishDealSynced(ctx, event); err != nil {
			errs = append(errs, fmt.Errorf("publisher: %w", err))
		}
	}
	return errors.Join(errs...)
}
