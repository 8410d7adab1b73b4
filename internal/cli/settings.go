package cli

import (
	"github.com/spf13/cobra"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Lobby settings commands",
	}

	cmd.AddCommand(newSettingsShowCmd())
	cmd.AddCommand(newSettingsToggleCmd())
	cmd.AddCommand(newSettingsTimeoutCmd())

	return cmd
}

func newSettingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <channel>",
		Short: "Show the channel's lobby settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Settings

			if err := client.Get("/api/v1/channels/"+args[0]+"/settings", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSettingsToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <channel> <setting>",
		Short: "Flip a boolean setting (host only)",
		Long: `Flip one boolean setting on the channel's lobby.

Settings:
  kick-on-timeout      kick players whose turn times out
  allow-skipping       allow skipping your turn
  anti-sabotage        block obviously hostile play
  allow-stacking       allow stacking draw cards
  randomize-list       shuffle the player order at start
  resend-game-message  repost the game message on turn change
  7-and-0              sevens swap hands, zeros rotate them
  can-rejoin           allow players to rejoin a running game`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"setting": args[1]}
			var result Settings

			if err := client.Post("/api/v1/channels/"+args[0]+"/settings/toggle", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSettingsTimeoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "timeout <channel> <seconds>",
		Short: "Set the turn timeout (host only)",
		Long: `Set the turn timeout on the channel's lobby.

Valid values are 20 to 3600 seconds. Any negative value disables the
turn timer entirely.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"value": args[1]}
			var result Settings

			if err := client.Put("/api/v1/channels/"+args[0]+"/settings/timeout", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
