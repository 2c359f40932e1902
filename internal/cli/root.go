package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"eve-pricebot/internal/config"
	"eve-pricebot/internal/engine"
	"eve-pricebot/internal/esi"
	"eve-pricebot/internal/logger"
)

// app carries state shared by the subcommands once the config is loaded.
type app struct {
	version    string
	configPath string
	cfg        *config.Config
}

// NewRootCommand creates the root command for the CLI.
func NewRootCommand(version string) *cobra.Command {
	a := &app{version: version}

	rootCmd := &cobra.Command{
		Use:   "eve-pricebot",
		Short: "EVE Online market price comparisons against Jita",
		Long: `eve-pricebot compares the buy and sell prices of an item in any
known-space system with the Jita trade hub, using live ESI order books.

Examples:
  eve-pricebot price Amarr Tritanium
  eve-pricebot price Hek Large Shield Extender II
  eve-pricebot serve
  eve-pricebot register`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			logger.SetLevel(logger.ParseLevel(cfg.Logging.Level))
			return nil
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "",
		"Path to a config file (default ./config.yaml or ./configs/config.yaml)")

	rootCmd.AddCommand(newPriceCommand(a))
	rootCmd.AddCommand(newServeCommand(a))
	rootCmd.AddCommand(newRegisterCommand(a))

	return rootCmd
}

// Execute runs the root command.
func Execute(version string) {
	if err := NewRootCommand(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) esiClient() *esi.Client {
	c := a.cfg.ESI
	return esi.NewClient(esi.Options{
		BaseURL:           c.BaseURL,
		UserAgent:         c.UserAgent,
		Timeout:           c.Timeout,
		RequestsPerSecond: c.RateLimit.Requests,
		Burst:             c.RateLimit.Burst,
		MaxConcurrent:     c.MaxConcurrent,
	})
}

func (a *app) comparer(client *esi.Client) *engine.Comparer {
	return engine.NewComparer(client, a.cfg.Engine.Workers, a.cfg.ESI.MaxPages)
}
