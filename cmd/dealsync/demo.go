package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xavierca1/deal-sync/internal/usecase"
)

const testDealName = "Test-Deal"

func scriptDealInput() usecase.CreateDealInput {
	amount := 3000.0
	return usecase.CreateDealInput{
		Amount:      &amount,
		CloseDate:   "2024-09-30",
		DealName:    "Script-deal2",
		DealStage:   "contractsent",
		LastUpdated: "2024-8-1",
	}
}

func (a *cliApp) demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the console sync sequence (list, sync Script-deal2, update Test-Deal)",
		Long: `Runs the fixed console sequence:
  1. list up to 100 deals and print them
  2. create Script-deal2, or conditionally update it when it exists
  3. find Test-Deal and set amount 7777 if 2024-07-31 is newer

Failures are printed and the next step still runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			w := cmd.OutOrStdout()

			// 1. List
			list, err := usecase.NewListDealsUseCase(a.crm, a.logger).Execute(ctx, usecase.ListDealsInput{})
			if err != nil {
				fmt.Fprintf(w, "An error occurred while fetching deals: %v\n", err)
			} else {
				printDeals(w, list.Deals)
			}

			// 2. Sync Script-deal2
			out, err := usecase.NewSyncDealUseCase(a.crm, a.recorder, a.logger).Execute(ctx, scriptDealInput())
			if err != nil {
				fmt.Fprintf(w, "An error occurred while syncing Script-deal2: %v\n", err)
			} else {
				printOutcome(w, out)
			}

			// 3. Test-Deal -> 7777
			amount := 7777.0
			upd, err := usecase.NewUpdateDealUseCase(a.crm, a.recorder, a.logger).Execute(ctx, usecase.UpdateDealInput{
				DealName:    testDealName,
				Amount:      &amount,
				LastUpdated: "2024-07-31",
			})
			switch {
			case err != nil:
				fmt.Fprintf(w, "An error occurred while updating %s: %v\n", testDealName, err)
			case upd.Outcome == usecase.OutcomeNotFound:
				fmt.Fprintf(w, "Deal '%s' not found.\n", testDealName)
			case upd.Outcome == usecase.OutcomeSkipped:
				fmt.Fprintln(w, "No update was necessary.")
			default:
				fmt.Fprintf(w, "Deal '%s' updated successfully. New amount: %s\n",
					testDealName, upd.Deal.Properties["amount"])
			}
			return nil
		},
	}
}
