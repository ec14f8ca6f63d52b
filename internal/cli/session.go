package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Session membership commands",
	}

	cmd.AddCommand(newSessionCreateCmd())
	cmd.AddCommand(newSessionJoinCmd())
	cmd.AddCommand(newSessionLeaveCmd())
	cmd.AddCommand(newSessionRenameCmd())
	cmd.AddCommand(newSessionStatusCmd())
	cmd.AddCommand(newSessionCheckCmd())

	return cmd
}

func requirePlayer() (string, error) {
	if cfg.PlayerID == "" {
		return "", fmt.Errorf("no player id set; use --player or log in first")
	}
	return cfg.PlayerID, nil
}

func newSessionCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Ensure your personal session exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requirePlayer()
			if err != nil {
				return err
			}

			req := map[string]string{"id": id}
			var result SessionResult

			if err := client.Post("/create", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <code>",
		Short: "Join another player's session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requirePlayer()
			if err != nil {
				return err
			}

			req := map[string]string{"code": args[0], "id": id}
			var result MembersResult

			if err := client.Post("/join", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave <code>",
		Short: "Leave a joined session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requirePlayer()
			if err != nil {
				return err
			}

			req := map[string]string{"code": args[0], "id": id}
			var result LeaveResult

			if err := client.Post("/leave", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <old-code> <new-code>",
		Short: "Rename a session you created",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requirePlayer()
			if err != nil {
				return err
			}

			req := map[string]string{
				"id":       id,
				"old_code": args[0],
				"new_code": args[1],
			}
			var result SessionResult

			if err := client.Post("/change_session", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show your active session and its roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requirePlayer()
			if err != nil {
				return err
			}

			var result SessionInfo

			path := fmt.Sprintf("/verify_session?id=%s", url.QueryEscape(id))
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <code>",
		Short: "Check whether you belong to a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requirePlayer()
			if err != nil {
				return err
			}

			path := fmt.Sprintf("/verify_player_in_session?username=%s&session_code=%s",
				url.QueryEscape(id), url.QueryEscape(args[0]))
			if err := client.Get(path, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("%s is in session %s", id, args[0]))
			return nil
		},
	}
}
