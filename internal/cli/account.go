package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account management commands",
	}

	cmd.AddCommand(newAccountSignupCmd())
	cmd.AddCommand(newAccountLoginCmd())
	cmd.AddCommand(newAccountLogoutCmd())

	return cmd
}

func newAccountSignupCmd() *cobra.Command {
	var id, pass string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" || pass == "" {
				return fmt.Errorf("--id and --pass are required")
			}

			req := map[string]string{"id": id, "password": pass}

			if err := client.Post("/signup", req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Account %s created", id))
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Player id (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newAccountLoginCmd() *cobra.Command {
	var id, pass string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and come online",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" || pass == "" {
				return fmt.Errorf("--id and --pass are required")
			}

			req := map[string]string{"id": id, "password": pass}
			var result LoginResult

			if err := client.Post("/login", req, &result); err != nil {
				return err
			}

			// Remember the player id for subsequent commands
			if err := cfg.SavePlayer(id); err != nil {
				return fmt.Errorf("failed to save player id: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Player id (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newAccountLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and go offline",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.PlayerID == "" {
				return fmt.Errorf("no player id set; use --player or log in first")
			}

			req := map[string]string{"id": cfg.PlayerID}

			if err := client.Post("/logout", req, nil); err != nil {
				return err
			}

			if err := cfg.ClearPlayer(); err != nil {
				return fmt.Errorf("failed to clear saved player: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Logged out")
			return nil
		},
	}
}
