package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"showcase/internal/greeting"
)

// greetCmd advances the homepage greeting rotation and prints the result.
func greetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "greet",
		Short: "Advance and print the homepage greeting",
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := greeting.NewStore(cfg.Greeting.StatePath).Next(len(greeting.Default))
			if err != nil {
				return err
			}
			logger.Debug("greeting", zap.Int("index", idx), zap.String("state", cfg.Greeting.StatePath))
			fmt.Fprintln(cmd.OutOrStdout(), greeting.Pick(greeting.Default, idx))
			return nil
		},
	}
}
