package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"eve-pricebot/internal/discord"
	"eve-pricebot/internal/logger"
)

func newRegisterCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Register the slash commands with Discord",
		Long: `Overwrite the application's global slash commands with /price.
Needs DISCORD_APP_ID and DISCORD_BOT_TOKEN. Run once per deployment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.RequireDiscord(false); err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			client := discord.NewClient(a.cfg.Discord.APIBase, a.cfg.Discord.AppID, a.cfg.Discord.BotToken)
			cmds, err := client.RegisterCommands(ctx, discord.Commands())
			if err != nil {
				return fmt.Errorf("register commands: %w", err)
			}
			for _, c := range cmds {
				logger.Debug("DISCORD", fmt.Sprintf("registered /%s id=%s", c.Name, c.ID))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %d command(s) successfully.\n", len(cmds))
			return nil
		},
	}
}
