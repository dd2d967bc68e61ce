package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/deal-sync/internal/entity"
)

// DealSyncedMessage é o corpo publicado em k.deal.synced.
type DealSyncedMessage struct {
	EventID           string `json:"event_id"`
	Action            string `json:"action"`
	DealID            string `json:"deal_id,omitempty"`
	DealName          string `json:"deal_name"`
	ClientLastUpdated string `json:"client_last_updated,omitempty"`
	CRMLastModified   string `json:"crm_last_modified,omitempty"`
	Source            string `json:"source"`
	OccurredAt        string `json:"occurred_at"`
}

// Publisher is the part of *amqp.Channel the producer uses.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	Ch Publisher
}

func NewProducer(ch Publisher) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func NewDealSyncedMessage(e *entity.SyncEvent) DealSyncedMessage {
	msg := DealSyncedMessage{
		EventID:    e.ID,
		Action:     string(e.Action),
		DealID:     e.DealID,
		DealName:   e.DealName,
		Source:     e.Source,
		OccurredAt: e.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
	if e.ClientLastUpdated != nil {
		msg.ClientLastUpdated = e.ClientLastUpdated.UTC().Format("2006-01-02")
	}
	if e.CRMLastModified != nil {
		msg.CRMLastModified = e.CRMLastModified.UTC().Format("2006-01-02T15:04:05.000Z07:00")
	}
	return msg
}

func (p *RabbitMQProducer) PublishDealSynced(ctx context.Context, event *entity.SyncEvent) error {
	body, err := json.Marshal(NewDealSyncedMessage(event))
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    event.ID,
			Type:         string(event.Action),
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %w", err)
	}

	return nil
}
