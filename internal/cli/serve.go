package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"eve-pricebot/internal/api"
	"eve-pricebot/internal/discord"
	"eve-pricebot/internal/logger"
)

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the Discord interactions endpoint",
		Long: `Listen for Discord interactions, verify their signatures and answer
/price commands. Needs DISCORD_APP_ID and DISCORD_BOT_PUBLIC_KEY.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.Banner(a.version)
			if err := a.cfg.RequireDiscord(true); err != nil {
				return err
			}
			verifier, err := discord.NewVerifier(a.cfg.Discord.PublicKey)
			if err != nil {
				return err
			}
			if a.cfg.Logging.Level != "debug" {
				gin.SetMode(gin.ReleaseMode)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			client := a.esiClient()
			checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			if client.HealthCheck(checkCtx) {
				logger.Success("ESI", "Reachable")
			} else {
				logger.Warn("ESI", "Status check failed, serving anyway")
			}
			cancel()

			logger.Section("Configuration")
			logger.Stats("ESI", a.cfg.ESI.BaseURL)
			logger.Stats("Workers", a.cfg.Engine.Workers)
			logger.Stats("Max pages", a.cfg.ESI.MaxPages)
			logger.Stats("Command timeout", a.cfg.Server.CommandTimeout)

			responder := discord.NewClient(a.cfg.Discord.APIBase, a.cfg.Discord.AppID, a.cfg.Discord.BotToken)
			srv := api.NewServer(a.cfg, a.comparer(client), responder, verifier)
			if err := srv.ListenAndServe(ctx); err != nil {
				return fmt.Errorf("server: %w", err)
			}
			return nil
		},
	}
}
