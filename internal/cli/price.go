package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"eve-pricebot/internal/discord"
	"eve-pricebot/internal/engine"
	"eve-pricebot/internal/logger"
)

func newPriceCommand(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "price <system> <item...>",
		Short: "Compare an item's prices in a system with Jita",
		Long: `Resolve the system and item names, scan both order books and print
the same report the /price slash command posts. Everything after the system
name is the item name, so quoting is optional.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			system := args[0]
			item := strings.Join(args[1:], " ")

			ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.Server.CommandTimeout)
			defer cancel()

			rep, err := a.comparer(a.esiClient()).Compare(ctx, system, item)
			if err != nil {
				logger.Debug("PRICE", fmt.Sprintf("comparison failed: %v", err))
				return errors.New(engine.UserMessage(err))
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rep)
			}
			fmt.Fprint(out, discord.PlainText(discord.BuildPriceEmbed(rep)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw report as JSON")
	return cmd
}
