package blocklocker

import (
	"reflect"

	"github.com/caarlos0/env/v11"
	"github.com/disgoorg/snowflake/v2"
)

// Config holds the blocklocker module configuration.
type Config struct {
	DataFile     string `env:"BLOCKLOCKER_DATA_FILE"     envDefault:"data/protected_blocks.json"`
	CatalogFile  string `env:"BLOCKLOCKER_CATALOG_FILE"`
	WatchCatalog bool   `env:"BLOCKLOCKER_WATCH_CATALOG" envDefault:"true"`
	ListLimit    int    `env:"BLOCKLOCKER_LIST_LIMIT"    envDefault:"10"`

	// AuditChannelID is zero when no audit channel is configured.
	AuditChannelID snowflake.ID `env:"BLOCKLOCKER_AUDIT_CHANNEL_ID"`
}

// ParseConfig reads Config from the environment.
func ParseConfig() (*Config, error) {
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
