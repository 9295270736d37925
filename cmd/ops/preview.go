package main

import (
	"fmt"
	"time"

	"carwash/internal/scheduling"
	"carwash/internal/types"
	"carwash/internal/utils"

	"github.com/spf13/cobra"
)

func newPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "List the wash dates a subscription would produce",
		Long:  "carwash-ops preview --start YYYY-MM-DD [--end YYYY-MM-DD] --frequency CODE",
		RunE: func(cmd *cobra.Command, args []string) error {
			startRaw, _ := cmd.Flags().GetString("start")
			endRaw, _ := cmd.Flags().GetString("end")
			frequency, _ := cmd.Flags().GetString("frequency")

			start, err := utils.ParseDate(startRaw)
			if err != nil {
				return fmt.Errorf("invalid --start: %w", err)
			}

			var end time.Time
			if endRaw == "" {
				end = utils.AddMonthsClamped(start, 1)
			} else {
				end, err = utils.ParseDate(endRaw)
				if err != nil {
					return fmt.Errorf("invalid --end: %w", err)
				}
			}

			dates, err := scheduling.Materialize(start, end, frequency)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, date := range dates {
				fmt.Fprintln(out, date.Format(types.DateLayout))
			}
			fmt.Fprintf(out, "%d washes\n", len(dates))
			return nil
		},
	}

	cmd.Flags().String("start", "", "subscription start date")
	cmd.Flags().String("end", "", "subscription end date, default one month after start")
	cmd.Flags().String("frequency", "", "recurrence code, e.g. weekly-once")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("frequency")

	return cmd
}
