package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xavierca1/deal-sync/internal/entity"
	"github.com/xavierca1/deal-sync/internal/usecase"
)

var errJournalDisabled = errors.New("sync journal disabled: set DATABASE_URL")

func (a *cliApp) listCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of deals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := usecase.NewListDealsUseCase(a.crm, a.logger).
				Execute(cmd.Context(), usecase.ListDealsInput{Limit: limit})
			if err != nil {
				return err
			}
			printDeals(cmd.OutOrStdout(), out.Deals)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", usecase.DefaultListLimit, "page size (max 100)")
	return cmd
}

func (a *cliApp) findCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find NAME",
		Short: "Find the newest deal with an exact dealname",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := usecase.NewFindDealUseCase(a.crm, a.logger).Execute(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if out.Outcome == usecase.OutcomeNotFound {
				fmt.Fprintf(w, "Deal '%s' not found.\n", args[0])
				return nil
			}
			printDeal(w, out.Deal)
			return nil
		},
	}
}

// dealFlags são compartilhadas entre create e update.
type dealFlags struct {
	id          string
	name        string
	amount      float64
	closeDate   string
	stage       string
	lastUpdated string
}

func (f *dealFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "dealname")
	cmd.Flags().Float64Var(&f.amount, "amount", 0, "deal amount")
	cmd.Flags().StringVar(&f.closeDate, "closedate", "", "close date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.stage, "stage", "", "deal stage")
	cmd.Flags().StringVar(&f.lastUpdated, "last-updated", "", "client last update date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("last-updated")
}

// amountPtr devolve nil quando --amount não foi passado.
func (f *dealFlags) amountPtr(cmd *cobra.Command) *float64 {
	if !cmd.Flags().Changed("amount") {
		return nil
	}
	v := f.amount
	return &v
}

func (a *cliApp) createCmd() *cobra.Command {
	var (
		f               dealFlags
		checkDuplicates bool
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a deal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := usecase.CreateDealInput{
				Amount:      f.amountPtr(cmd),
				CloseDate:   f.closeDate,
				DealName:    f.name,
				DealStage:   f.stage,
				LastUpdated: f.lastUpdated,
			}
			out, err := usecase.NewCreateDealUseCase(a.crm, a.recorder, a.logger, checkDuplicates).
				Execute(cmd.Context(), input)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "New deal created:")
			printDeal(w, out.Deal)
			return nil
		},
	}
	f.register(cmd)
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().BoolVar(&checkDuplicates, "check-duplicates", true, "reject when a deal with the same name exists")
	return cmd
}

func (a *cliApp) updateCmd() *cobra.Command {
	var f dealFlags
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a deal when last_updated is newer than the CRM copy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := usecase.UpdateDealInput{
				ID:          f.id,
				DealName:    f.name,
				Amount:      f.amountPtr(cmd),
				CloseDate:   f.closeDate,
				DealStage:   f.stage,
				LastUpdated: f.lastUpdated,
			}
			out, err := usecase.NewUpdateDealUseCase(a.crm, a.recorder, a.logger).Execute(cmd.Context(), input)
			if err != nil {
				return err
			}
			printOutcome(cmd.OutOrStdout(), out)
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&f.id, "id", "", "deal id (alternative to --name)")
	cmd.MarkFlagsMutuallyExclusive("id", "name")
	return cmd
}

func (a *cliApp) historyCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history NAME",
		Short: "Show recorded sync decisions for a deal name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.history == nil {
				return errJournalDisabled
			}
			events, err := a.history.ListByDealName(cmd.Context(), args[0], limit)
			if err != nil {
				return fmt.Errorf("reading sync journal: %w", err)
			}
			w := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintf(w, "No sync events for '%s'.\n", args[0])
				return nil
			}
			for _, e := range events {
				fmt.Fprintf(w, "%s  %-18s deal=%s source=%s\n",
					e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"), e.Action, e.DealID, e.Source)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "max entries")
	return cmd
}

func printOutcome(w io.Writer, out *usecase.DealOutput) {
	switch out.Outcome {
	case usecase.OutcomeNotFound:
		fmt.Fprintln(w, "Deal not found.")
	case usecase.OutcomeSkipped:
		fmt.Fprintln(w, out.Message)
	case usecase.OutcomeCreated:
		fmt.Fprintln(w, "New deal created:")
		printDeal(w, out.Deal)
	default:
		fmt.Fprintln(w, "Deal updated:")
		printDeal(w, out.Deal)
	}
}

func printDeals(w io.Writer, deals []*entity.Deal) {
	if len(deals) == 0 {
		fmt.Fprintln(w, "No deals to display.")
		return
	}
	fmt.Fprintf(w, "Total deals fetched: %d\n", len(deals))
	for _, d := range deals {
		printDeal(w, d)
		fmt.Fprintln(w, strings.Repeat("-", 50))
	}
}

func printDeal(w io.Writer, d *entity.Deal) {
	fmt.Fprintf(w, "Deal ID: %s\n", d.ID)
	fmt.Fprintln(w, "Properties:")
	// fmt imprime mapas com as chaves ordenadas
	fmt.Fprintln(w, d.Properties)
}
