package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. PRICEBOT_ESI_TIMEOUT.
const EnvPrefix = "PRICEBOT"

// Config holds application settings.
type Config struct {
	ESI     ESIConfig     `mapstructure:"esi"`
	Engine  EngineConfig  `mapstructure:"engine"`
	Server  ServerConfig  `mapstructure:"server"`
	Discord DiscordConfig `mapstructure:"discord"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ESIConfig configures the ESI HTTP client.
type ESIConfig struct {
	BaseURL       string          `mapstructure:"base_url" validate:"required,url"`
	UserAgent     string          `mapstructure:"user_agent" validate:"required"`
	Timeout       time.Duration   `mapstructure:"timeout" validate:"required,gt=0"`
	RateLimit     RateLimitConfig `mapstructure:"rate_limit"`
	MaxConcurrent int             `mapstructure:"max_concurrent" validate:"min=1"`
	// MaxPages bounds how many order pages a single region scan may request.
	MaxPages int `mapstructure:"max_pages" validate:"min=1"`
}

// RateLimitConfig is a token bucket: Requests per second refill, Burst capacity.
type RateLimitConfig struct {
	Requests float64 `mapstructure:"requests" validate:"gt=0"`
	Burst    int     `mapstructure:"burst" validate:"min=1"`
}

// EngineConfig tunes the comparison engine.
type EngineConfig struct {
	// Workers is the number of remote calls a comparison runs in parallel. 1 = sequential.
	Workers int `mapstructure:"workers" validate:"min=1,max=32"`
}

// ServerConfig configures the interactions HTTP endpoint.
type ServerConfig struct {
	Addr           string        `mapstructure:"addr" validate:"required"`
	CommandTimeout time.Duration `mapstructure:"command_timeout" validate:"required,gt=0"`
}

// DiscordConfig holds application credentials. They are only required by the
// commands that talk to Discord, see RequireDiscord.
type DiscordConfig struct {
	APIBase   string `mapstructure:"api_base" validate:"required,url"`
	AppID     string `mapstructure:"app_id"`
	BotToken  string `mapstructure:"bot_token"`
	PublicKey string `mapstructure:"public_key" validate:"omitempty,hexadecimal,len=64"`
}

// LoggingConfig controls console logging.
type LoggingConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		ESI: ESIConfig{
			BaseURL:   "https://esi.evetech.net/latest",
			UserAgent: "eve-pricebot/1.0 (github.com)",
			Timeout:   30 * time.Second,
			RateLimit: RateLimitConfig{
				Requests: 20,
				Burst:    20,
			},
			MaxConcurrent: 20,
			MaxPages:      100,
		},
		Engine: EngineConfig{
			Workers: 4,
		},
		Server: ServerConfig{
			Addr:           "127.0.0.1:13380",
			CommandTimeout: 2 * time.Minute,
		},
		Discord: DiscordConfig{
			APIBase: "https://discord.com/api/v10",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration with increasing priority from defaults, an optional
// config.yaml, a .env file and the environment. configPath may be empty.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v, Default())

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	// Bare names used by the Discord developer portal docs.
	bindBare(v, "discord.app_id", "DISCORD_APP_ID")
	bindBare(v, "discord.bot_token", "DISCORD_BOT_TOKEN")
	bindBare(v, "discord.public_key", "DISCORD_BOT_PUBLIC_KEY")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// RequireDiscord reports an error when the credentials needed to talk to Discord are missing.
// The public key is only needed to verify inbound interactions.
func (c *Config) RequireDiscord(needPublicKey bool) error {
	var missing []string
	if c.Discord.AppID == "" {
		missing = append(missing, "DISCORD_APP_ID")
	}
	if needPublicKey && c.Discord.PublicKey == "" {
		missing = append(missing, "DISCORD_BOT_PUBLIC_KEY")
	}
	if !needPublicKey && c.Discord.BotToken == "" {
		missing = append(missing, "DISCORD_BOT_TOKEN")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing Discord settings: %s", strings.Join(missing, ", "))
	}
	return nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("esi.base_url", d.ESI.BaseURL)
	v.SetDefault("esi.user_agent", d.ESI.UserAgent)
	v.SetDefault("esi.timeout", d.ESI.Timeout)
	v.SetDefault("esi.rate_limit.requests", d.ESI.RateLimit.Requests)
	v.SetDefault("esi.rate_limit.burst", d.ESI.RateLimit.Burst)
	v.SetDefault("esi.max_concurrent", d.ESI.MaxConcurrent)
	v.SetDefault("esi.max_pages", d.ESI.MaxPages)
	v.SetDefault("engine.workers", d.Engine.Workers)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.command_timeout", d.Server.CommandTimeout)
	v.SetDefault("discord.api_base", d.Discord.APIBase)
	v.SetDefault("discord.app_id", "")
	v.SetDefault("discord.bot_token", "")
	v.SetDefault("discord.public_key", "")
	v.SetDefault("logging.level", d.Logging.Level)
}

func bindBare(v *viper.Viper, key, env string) {
	if val := os.Getenv(env); val != "" && v.GetString(key) == "" {
		v.Set(key, val)
	}
}
