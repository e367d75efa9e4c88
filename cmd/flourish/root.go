package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "flourish",
		Short:         "AI-assisted shell with a command authorization gate",
		Long:          "flourish lets a language model run shell commands on your behalf.\nEvery command passes an allowlist/blacklist policy check before it executes,\nand all activity is recorded in per-session logs.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.AddCommand(newAskCmd())
	cmd.AddCommand(newAgentCmd())
	cmd.AddCommand(newHistoryCmd())
	return cmd
}
