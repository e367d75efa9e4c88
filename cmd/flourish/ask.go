package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAskCmd() *cobra.Command {
	opts := appOptions{noTools: true}

	cmd := &cobra.Command{
		Use:   "ask <prompt>",
		Short: "Ask a single question (no command execution)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := buildApp(cmd.Context(), opts)
			if err != nil {
				return err
			}

			prompt := strings.Join(args, " ")
			return application.run(func() error {
				answer, err := application.orch.Ask(cmd.Context(), prompt)
				if err != nil {
					return fmt.Errorf("ask failed: %w", err)
				}
				application.ui.WriteMessage(answer)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&opts.model, "model", "m", "",
		"model to use for this session")
	return cmd
}
