package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Matchmaking and in-match commands",
	}

	cmd.AddCommand(newMatchJoinCmd())
	cmd.AddCommand(newMatchGetCmd())
	cmd.AddCommand(newMatchPlaceCmd())
	cmd.AddCommand(newMatchFireCmd())
	cmd.AddCommand(newMatchLeaveCmd())

	return cmd
}

func newMatchJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join",
		Short: "Join the matchmaking queue",
		Long: `Join the matchmaking queue. You are paired with the next waiting player;
the player who queued first takes the first shot.

Notifications are only delivered while an events stream is open, so run
"bsgame events" in another terminal to follow the match.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result MatchView

			if err := client.Post("/api/v1/match/join", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show your queue or match state",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result MatchView

			if err := client.Get("/api/v1/match", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchPlaceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "place <ship> <x> <y> <H|V>",
		Short: "Place a ship on your board",
		Long: `Place a ship with its origin at (x, y). Horizontal ships extend to the
right and vertical ships extend downwards.

Ships: Carrier (5), Battleship (4), Cruiser (3), Submarine (3), Destroyer (2)`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, y, err := parseCoords(args[1], args[2])
			if err != nil {
				return err
			}

			req := map[string]any{
				"ship_kind":   shipKindArg(args[0]),
				"x":           x,
				"y":           y,
				"orientation": strings.ToUpper(args[3]),
			}
			var result MatchView

			if err := client.Post("/api/v1/match/ships", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchFireCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fire <x> <y>",
		Short: "Fire a shot at your opponent's board",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, y, err := parseCoords(args[0], args[1])
			if err != nil {
				return err
			}

			req := map[string]int{"x": x, "y": y}
			var result ShotResult

			if err := client.Post("/api/v1/match/shots", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave",
		Short: "Leave the queue or forfeit your current match",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/match/leave", nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Left match")
			return nil
		},
	}
}

func parseCoords(xs, ys string) (int, int, error) {
	x, err := strconv.Atoi(xs)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid x: %w", err)
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid y: %w", err)
	}
	return x, y, nil
}

// shipKindArg accepts ship names in any case
func shipKindArg(s string) string {
	if s == "" {
		return s
	}
	s = strings.ToLower(s)
	return strings.ToUpper(s[:1]) + s[1:]
}
