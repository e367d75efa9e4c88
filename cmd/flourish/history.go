package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flourish-sh/flourish/internal/config"
	"github.com/flourish-sh/flourish/internal/history"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent tool calls from the latest session",
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := config.NewLoader()
			svc := history.NewService(loader.LogsPath())

			calls, err := svc.RecentToolCalls(limit)
			if err != nil {
				return err
			}
			if len(calls) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tool calls recorded yet.")
				return nil
			}

			for _, call := range calls {
				outcome := "ok"
				if !call.Success {
					outcome = "failed"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-22s %s\n", call.Timestamp, call.Tool, outcome)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", history.DefaultLimit, "maximum number of entries to show")
	return cmd
}
