package cli

import (
	"github.com/spf13/cobra"
)

func newLobbyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lobby",
		Short: "Channel lobby management commands",
	}

	cmd.AddCommand(newLobbyCreateCmd())
	cmd.AddCommand(newLobbyShowCmd())
	cmd.AddCommand(newLobbyJoinCmd())
	cmd.AddCommand(newLobbyLeaveCmd())
	cmd.AddCommand(newLobbyDeleteCmd())

	return cmd
}

func newLobbyCreateCmd() *cobra.Command {
	var allowSolo bool

	cmd := &cobra.Command{
		Use:   "create <channel>",
		Short: "Open a lobby in a channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]bool{"allow_solo": allowSolo}
			var result Lobby

			if err := client.Post("/api/v1/channels/"+args[0]+"/lobby", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&allowSolo, "allow-solo", false, "Allow starting the game alone")

	return cmd
}

func newLobbyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <channel>",
		Short: "Show the channel's session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session

			if err := client.Get("/api/v1/channels/"+args[0]+"/session", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newLobbyJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <channel>",
		Short: "Join the channel's lobby",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Lobby

			if err := client.Post("/api/v1/channels/"+args[0]+"/join", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newLobbyLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave <channel>",
		Short: "Leave the channel's lobby",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Lobby

			if err := client.Post("/api/v1/channels/"+args[0]+"/leave", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newLobbyDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <channel>",
		Short: "Delete the channel's session (host only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/channels/" + args[0] + "/session"); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Session deleted")
			return nil
		},
	}
}
