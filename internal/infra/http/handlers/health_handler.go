package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"
)

// CRMPinger checks that the CRM answers with the configured token.
type CRMPinger interface {
	Ping(ctx context.Context) error
}

type BrokerConnection interface {
	IsClosed() bool
}

type HealthHandler struct {
	CRM       CRMPinger
	DB        *sql.DB
	RabbitMQ  BrokerConnection
	StartTime time.Time
	Version   string
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

func NewHealthHandler(crm CRMPinger, db *sql.DB, rabbitMQ BrokerConnection, version string) *HealthHandler {
	return &HealthHandler{
		CRM:       crm,
		DB:        db,
		RabbitMQ:  rabbitMQ,
		StartTime: time.Now(),
		Version:   version,
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deps := make(map[string]string)

	// Check HubSpot
	if h.CRM != nil {
		if err := h.CRM.Ping(ctx); err != nil {
			deps["hubspot"] = fmt.Sprintf("unhealthy: %v", err)
		} else {
			deps["hubspot"] = "healthy"
		}
	} else {
		deps["hubspot"] = "not configured"
	}

	// Check Database (journal opcional)
	if h.DB != nil {
		if err := h.DB.PingContext(ctx); err != nil {
			deps["database"] = fmt.Sprintf("unhealthy: %v", err)
		} else {
			deps["database"] = "healthy"
		}
	} else {
		deps["database"] = "not configured"
	}

	// Check RabbitMQ
	if h.RabbitMQ != nil {
		if h.RabbitMQ.IsClosed() {
			deps["rabbitmq"] = "unhealthy: connection closed"
		} else {
			deps["rabbitmq"] = "healthy"
		}
	} else {
		deps["rabbitmq"] = "not configured"
	}

	status := "healthy"
	for _, v := range deps {
		if v != "healthy" && v != "not configured" {
			status = "degraded"
			break
		}
	}

	response := HealthResponse{
		Status:       status,
		Version:      h.Version,
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	}

	code := http.StatusOK
	if status == "degraded" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, response)
}
