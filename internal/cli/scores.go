package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newScoresCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scores",
		Short: "Per-game score commands",
	}

	cmd.AddCommand(newScoresSubmitCmd())
	cmd.AddCommand(newScoresGetCmd())
	cmd.AddCommand(newScoresLeaderboardCmd())

	return cmd
}

func newScoresSubmitCmd() *cobra.Command {
	var score, credits int64

	cmd := &cobra.Command{
		Use:   "submit <game>",
		Short: "Submit a score for a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requirePlayer()
			if err != nil {
				return err
			}

			req := map[string]any{
				"id":      id,
				"score":   score,
				"credits": credits,
			}
			var result GameScoreResult

			path := fmt.Sprintf("/scores/%s", url.PathEscape(args[0]))
			if err := client.Post(path, req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().Int64Var(&score, "score", 0, "Score to submit")
	cmd.Flags().Int64Var(&credits, "credits", 0, "Credits to store")

	return cmd
}

func newScoresGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <game>",
		Short: "Get your score for a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requirePlayer()
			if err != nil {
				return err
			}

			var result GameScoreResult

			path := fmt.Sprintf("/scores/%s?id=%s", url.PathEscape(args[0]), url.QueryEscape(id))
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newScoresLeaderboardCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "leaderboard <game>",
		Short: "Show a game's leaderboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result LeaderboardResult

			path := fmt.Sprintf("/scores/%s/leaderboard?limit=%d", url.PathEscape(args[0]), limit)
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of entries")

	return cmd
}
