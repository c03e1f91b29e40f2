package bot

import (
	"log/slog"
	"reflect"

	"github.com/caarlos0/env/v11"
	"github.com/disgoorg/snowflake/v2"
)

// Config holds the host configuration loaded from environment variables.
type Config struct {
	// DiscordToken is optional. Without it the host runs headless: modules are
	// initialized for the game server but no operator console is exposed.
	DiscordToken string `env:"DISCORD_TOKEN"`

	// GuildID scopes slash commands to one guild. Zero registers them globally.
	GuildID snowflake.ID `env:"DISCORD_GUILD_ID"`

	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"info"`
}

// Headless reports whether the host runs without a Discord connection.
func (c *Config) Headless() bool {
	return c.DiscordToken == ""
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	err := env.ParseWithOptions(cfg, env.Options{
		FuncMap: map[reflect.Type]env.ParserFunc{
			reflect.TypeOf(snowflake.ID(0)): func(v string) (any, error) {
				return snowflake.Parse(v)
			},
		},
	})
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
