// Command dealsync runs the deal gateway operations from the console.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xavierca1/deal-sync/internal/app"
	"github.com/xavierca1/deal-sync/internal/config"
	"github.com/xavierca1/deal-sync/internal/entity"
	"github.com/xavierca1/deal-sync/internal/infra/integration/hubspot"
	"github.com/xavierca1/deal-sync/internal/logger"
	"github.com/xavierca1/deal-sync/internal/usecase"
)

type historyReader interface {
	ListByDealName(ctx context.Context, dealName string, limit int) ([]*entity.SyncEvent, error)
}

// cliApp guarda as dependências montadas no PersistentPreRunE.
// Testes preenchem crm antes de executar e o setup é pulado.
type cliApp struct {
	logLevel string

	logger   *zap.Logger
	crm      usecase.CRMClient
	recorder usecase.SyncRecorder
	history  historyReader
	sinks    *app.Sinks
}

func main() {
	if err := newRootCmd(&cliApp{}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd(a *cliApp) *cobra.Command {
	root := &cobra.Command{
		Use:   "dealsync",
		Short: "Find, create and conditionally update HubSpot deals",
		Long: `dealsync talks to the HubSpot CRM deals API with the same rules as the
HTTP gateway: lookups by name return the newest deal, and updates only
happen when last_updated is newer than hs_lastmodifieddate.

Configuration comes from .env and the environment (HUBSPOT_ACCESS_TOKEN
is required).`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override LOG_LEVEL (debug, info, warn, error)")

	root.AddCommand(
		a.demoCmd(),
		a.listCmd(),
		a.findCmd(),
		a.createCmd(),
		a.updateCmd(),
		a.historyCmd(),
	)
	return root
}

func (a *cliApp) setup(cmd *cobra.Command, args []string) error {
	if a.crm != nil {
		if a.logger == nil {
			a.logger = zap.NewNop()
		}
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level := cfg.LogLevel
	if a.logLevel != "" {
		level = a.logLevel
	}
	a.logger, err = logger.New(level)
	if err != nil {
		return err
	}

	a.sinks, err = app.OpenSinks(cmd.Context(), cfg, a.logger)
	if err != nil {
		return err
	}
	a.crm = hubspot.NewClient(cfg.HubSpotToken, cfg.HubSpotBaseURL, cfg.HubSpotTimeout)
	a.recorder = a.sinks.Recorder("CLI")
	if a.sinks.Journal != nil {
		a.history = a.sinks.Journal
	}
	return nil
}

func (a *cliApp) teardown(cmd *cobra.Command, args []string) error {
	if a.sinks != nil {
		a.sinks.Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	return nil
}
