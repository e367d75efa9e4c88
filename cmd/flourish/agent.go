package main

import (
	"strings"

	"github.com/spf13/cobra"
)

func newAgentCmd() *cobra.Command {
	opts := appOptions{}

	cmd := &cobra.Command{
		Use:   "agent [goal]",
		Short: "Start an interactive agent session",
		Long:  "Starts an interactive conversation. The agent can run shell commands\nthrough the policy gate; type 'exit' or 'quit' (or an empty line) to leave.",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := buildApp(cmd.Context(), opts)
			if err != nil {
				return err
			}

			goal := strings.Join(args, " ")
			if goal == "" {
				goal = "Introduce yourself briefly and ask what to do."
			}
			return application.run(func() error {
				return application.orch.Run(cmd.Context(), goal)
			})
		},
	}

	addPolicyFlags(cmd, &opts)
	return cmd
}

func addPolicyFlags(cmd *cobra.Command, opts *appOptions) {
	cmd.Flags().StringSliceVarP(&opts.allowlist, "allowlist", "a", nil,
		"session-only allowlist override (not persisted)")
	cmd.Flags().StringSliceVarP(&opts.blacklist, "blacklist", "b", nil,
		"session-only blacklist override (not persisted)")
	cmd.Flags().BoolVar(&opts.autoAllow, "auto-allow", false,
		"add unknown commands to the allowlist instead of asking for confirmation")
	cmd.Flags().StringVarP(&opts.model, "model", "m", "",
		"model to use for this session")
}
