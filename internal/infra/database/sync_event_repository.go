package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/xavierca1/deal-sync/internal/entity"
)

var ErrDuplicateEvent = errors.New("sync event already recorded")

const createSyncEventsTable = `
	CREATE TABLE IF NOT EXISTS sync_events (
		id                  UUID PRIMARY KEY,
		action              TEXT NOT NULL,
		deal_id             TEXT,
		deal_name           TEXT NOT NULL,
		client_last_updated TIMESTAMPTZ,
		crm_last_modified   TIMESTAMPTZ,
		source              TEXT NOT NULL,
		created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// SyncEventRepository é o journal das decisões do gateway. Não guarda deals.
type SyncEventRepository struct {
	DB *sql.DB
}

func NewSyncEventRepository(db *sql.DB) *SyncEventRepository {
	return &SyncEventRepository{DB: db}
}

func (r *SyncEventRepository) Migrate(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, createSyncEventsTable); err != nil {
		return fmt.Errorf("erro ao criar tabela sync_events: %w", err)
	}
	return nil
}

func (r *SyncEventRepository) Save(ctx context.Context, e *entity.SyncEvent) error {
	query := `
		INSERT INTO sync_events (id, action, deal_id, deal_name, client_last_updated, crm_last_modified, source, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.DB.ExecContext(ctx, query,
		e.ID,
		string(e.Action),
		nullString(e.DealID),
		e.DealName,
		nullTime(e.ClientLastUpdated),
		nullTime(e.CRMLastModified),
		e.Source,
		e.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateEvent
		}
		return err
	}
	return nil
}

// ListByDealName devolve os eventos mais recentes primeiro.
func (r *SyncEventRepository) ListByDealName(ctx context.Context, dealName string, limit int) ([]*entity.SyncEvent, error) {
	query := `
		SELECT id, action, COALESCE(deal_id, ''), deal_name, client_last_updated, crm_last_modified, source, created_at
		FROM sync_events
		WHERE deal_name = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.DB.QueryContext(ctx, query, dealName, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*entity.SyncEvent
	for rows.Next() {
		var (
			e                    entity.SyncEvent
			action               string
			clientDate, crmStamp sql.NullTime
		)
		if err := rows.Scan(&e.ID, &action, &e.DealID, &e.DealName, &clientDate, &crmStamp, &e.Source, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Action = entity.SyncAction(action)
		if clientDate.Valid {
			t := clientDate.Time.UTC()
			e.ClientLastUpdated = &t
		}
		if crmStamp.Valid {
			t := crmStamp.Time.UTC()
			e.CRMLastModified = &t
		}
		events = append(events, &e)
	}
	return events, rows.Err()
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}
