package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/deal-sync/internal/app"
	"github.com/xavierca1/deal-sync/internal/config"
	"github.com/xavierca1/deal-sync/internal/infra/http/handlers"
	"github.com/xavierca1/deal-sync/internal/infra/integration/hubspot"
	"github.com/xavierca1/deal-sync/internal/logger"
	"github.com/xavierca1/deal-sync/internal/usecase"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zl.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Sinks opcionais (journal + publisher)
	sinks, err := app.OpenSinks(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("failed to open sinks", zap.Error(err))
	}
	defer sinks.Close()

	// 2. Gateway
	crm := hubspot.NewClient(cfg.HubSpotToken, cfg.HubSpotBaseURL, cfg.HubSpotTimeout)
	recorder := sinks.Recorder("HTTP")

	// 3. UseCases
	findUC := usecase.NewFindDealUseCase(crm, zl)
	createUC := usecase.NewCreateDealUseCase(crm, recorder, zl, cfg.CheckDuplicates)
	updateUC := usecase.NewUpdateDealUseCase(crm, recorder, zl)
	listUC := usecase.NewListDealsUseCase(crm, zl)

	// 4. Handlers + Router
	dealHandler := handlers.NewDealHandler(findUC, createUC, updateUC, listUC, zl)
	healthHandler := handlers.NewHealthHandler(crm, sinks.DB, sinks.Broker(), version)
	router := handlers.NewRouter(dealHandler, healthHandler, cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("deal sync gateway listening",
			zap.String("addr", srv.Addr),
			zap.Bool("check_duplicates", cfg.CheckDuplicates))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}
}
