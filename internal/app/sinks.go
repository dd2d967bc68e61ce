package app

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/xavierca1/deal-sync/internal/config"
	"github.com/xavierca1/deal-sync/internal/entity"
	"github.com/xavierca1/deal-sync/internal/infra/database"
	"github.com/xavierca1/deal-sync/internal/infra/queue"
	"github.com/xavierca1/deal-sync/internal/usecase"
)

// Sinks guarda o journal (Postgres) e o publisher (RabbitMQ) opcionais.
// Campos ficam nil quando a URL correspondente não está configurada.
type Sinks struct {
	DB       *sql.DB
	Journal  *database.SyncEventRepository
	RabbitMQ *queue.RabbitMQ
	Producer *queue.RabbitMQProducer

	logger *zap.Logger
}

// OpenSinks conecta no que estiver configurado. Falha de conexão é fatal:
// quem configurou DATABASE_URL espera o journal funcionando.
func OpenSinks(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Sinks, error) {
	s := &Sinks{logger: logger}

	if cfg.DatabaseURL != "" {
		db, err := database.NewDBConnection(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		repo := database.NewSyncEventRepository(db)
		if err := repo.Migrate(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate sync_events: %w", err)
		}
		s.DB = db
		s.Journal = repo
		logger.Info("sync journal enabled")
	}

	if cfg.AMQPURL != "" {
		rmq, err := queue.NewRabbitMQ(cfg.AMQPURL)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.RabbitMQ = rmq
		s.Producer = queue.NewProducer(rmq.Ch)
		logger.Info("deal.synced publisher enabled", zap.String("exchange", queue.ExchangeName))
	}

	return s, nil
}

// Recorder monta o SyncEventRecorder sem passar interfaces com nil tipado.
func (s *Sinks) Recorder(source string) *usecase.SyncEventRecorder {
	var (
		journal   entity.SyncEventRepositoryInterface
		publisher usecase.EventPublisher
	)
	if s.Journal != nil {
		journal = s.Journal
	}
	if s.Producer != nil {
		publisher = s.Producer
	}
	return usecase.NewSyncEventRecorder(source, journal, publisher)
}

// Broker devolve a conexão para o health check, ou nil sem AMQP_URL.
func (s *Sinks) Broker() interface{ IsClosed() bool } {
	if s.RabbitMQ == nil {
		return nil
	}
	return s.RabbitMQ
}

func (s *Sinks) Close() {
	if s.RabbitMQ != nil {
		s.RabbitMQ.Close()
	}
	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			s.logger.Warn("closing database", zap.Error(err))
		}
	}
}
