package cli

import (
	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game lifecycle commands",
	}

	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameStatusCmd())
	cmd.AddCommand(newGameStopCmd())

	return cmd
}

func newGameStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <channel>",
		Short: "Start the game from the channel's lobby (host only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameState

			if err := client.Post("/api/v1/channels/"+args[0]+"/start", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <channel>",
		Short: "Show the channel's running game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameState

			if err := client.Get("/api/v1/channels/"+args[0]+"/game", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop <channel>",
		Short: "Stop the channel's game (host only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/channels/"+args[0]+"/stop", nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Game stopped")
			return nil
		},
	}
}
