package cli

import (
	"github.com/spf13/cobra"
)

func newBotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bot",
		Short: "Bot commands",
	}

	cmd.AddCommand(newBotAddCmd())

	return cmd
}

func newBotAddCmd() *cobra.Command {
	var strategy string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Queue a bot opponent",
		Long: `Queue a bot for matchmaking. Run "bsgame match join" afterwards to be
paired with it.

Strategies:
  random  fires at random untried cells
  hunt    fires on a checkerboard until it hits, then finishes the ship`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"strategy": strategy}
			var result Player

			if err := client.Post("/api/v1/bots", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", "random", "Bot strategy: random, hunt")

	return cmd
}
