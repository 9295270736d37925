package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "carwash-ops",
		Short: "Car wash operations CLI",
		Long: "-------------------------------------------------------------------\n" +
			"                     Car Wash Operations CLI\n" +
			"-------------------------------------------------------------------",
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	cobra.EnableCommandSorting = false
	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.AddCommand(newRebalanceCmd())
	cmd.AddCommand(newPreviewCmd())
	cmd.AddCommand(newTokenCmd())

	return cmd
}
