package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"carwash/internal/app"
	"carwash/internal/services"
	"carwash/internal/utils"

	"github.com/spf13/cobra"
)

func newRebalanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rebalance",
		Short: "Move jobs off over-assigned or unavailable employees",
		Long:  "carwash-ops rebalance [--date YYYY-MM-DD] [--days N]\n\nRuns the rebalancer against the configured database.",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, _ := cmd.Flags().GetString("date")
			days, _ := cmd.Flags().GetInt("days")

			from := utils.StartOfDay(time.Now())
			if date != "" {
				parsed, err := utils.ParseDate(date)
				if err != nil {
					return fmt.Errorf("invalid --date: %w", err)
				}
				from = parsed
			}
			application, err := app.New()
			if err != nil {
				return err
			}
			defer func() { _ = application.Close() }()

			summaries, err := sweep(cmd.Context(), application.Services.Rebalance, from, days)
			if err != nil {
				return err
			}

			printSummaries(cmd, summaries)
			return nil
		},
	}

	cmd.Flags().String("date", "", "first day to rebalance, default today")
	cmd.Flags().Int("days", 1, "number of days to rebalance")

	return cmd
}

type rangeRebalancer interface {
	RebalanceRange(ctx context.Context, from time.Time, days int) ([]*services.RebalanceSummary, error)
}

// sweep rebalances days calendar days starting at from. RebalanceRange
// counts the days after from, so one day is an offset of zero.
func sweep(
	ctx context.Context,
	rebalancer rangeRebalancer,
	from time.Time,
	days int,
) ([]*services.RebalanceSummary, error) {
	if days < 1 {
		days = 1
	}
	return rebalancer.RebalanceRange(ctx, from, days-1)
}

func printSummaries(cmd *cobra.Command, summaries []*services.RebalanceSummary) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-12s  %-6s  %-13s  %-10s  %s\n", "DATE", "JOBS", "OVER-ASSIGNED", "REASSIGNED", "FAILED")
	fmt.Fprintln(out, strings.Repeat("─", 60))
	for _, summary := range summaries {
		fmt.Fprintf(out, "%-12s  %-6d  %-13d  %-10d  %d\n",
			summary.Date,
			summary.TotalJobs,
			summary.OverAssignedCount,
			summary.ReassignedCount,
			len(summary.Failures),
		)
		for _, failure := range summary.Failures {
			fmt.Fprintf(out, "  job %s (employee %s): %s\n", failure.JobID, failure.EmployeeID, failure.Reason)
		}
	}
}
