package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newClickCmd() *cobra.Command {
	var clicks int64

	cmd := &cobra.Command{
		Use:   "click <code>",
		Short: "Record a batch of clicks against a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requirePlayer()
			if err != nil {
				return err
			}

			req := map[string]any{
				"session": args[0],
				"id":      id,
				"click":   clicks,
			}
			var result ClickResult

			if err := client.Post("/poire", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().Int64Var(&clicks, "count", 1, "Number of raw clicks to record")

	return cmd
}

func newScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score <code>",
		Short: "Show a session's accumulated score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ScoreResult

			path := fmt.Sprintf("/get_poires?session=%s", url.QueryEscape(args[0]))
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newUpgradeCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "upgrade <code>",
		Short: "Purchase a click multiplier upgrade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requirePlayer()
			if err != nil {
				return err
			}

			req := map[string]string{
				"session": args[0],
				"id":      id,
				"kind":    kind,
			}
			var result UpgradeResult

			if err := client.Post("/upgrade", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "session", "Upgrade kind: session, player")

	return cmd
}
