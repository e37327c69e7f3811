// Package bot parses bot command flags and composes the shop conversation
// service.
package bot

import (
	"context"
	"flag"
	"fmt"
	"time"

	entrypoint "github.com/louisbranch/bazaar.chat/internal/platform/cmd"
)

// Config holds bot command configuration.
type Config struct {
	WSAddr   string `env:"BAZAAR_CHAT_WS_ADDR"   envDefault:":8080"`
	OpsAddr  string `env:"BAZAAR_CHAT_OPS_ADDR"  envDefault:":8081"`
	GRPCAddr string `env:"BAZAAR_CHAT_GRPC_ADDR" envDefault:":8082"`

	// StoreBackend selects persistence: memory, sqlite, or redis. sqlite
	// covers catalog and orders; redis covers carts and sessions. Concerns
	// a backend does not cover stay in memory.
	StoreBackend string `env:"BAZAAR_CHAT_STORE_BACKEND" envDefault:"memory"`
	SQLitePath   string `env:"BAZAAR_CHAT_SQLITE_PATH"   envDefault:"bazaar.db"`
	RedisAddr    string `env:"BAZAAR_CHAT_REDIS_ADDR"    envDefault:"localhost:6379"`

	AdminIDs    []int64       `env:"BAZAAR_CHAT_ADMIN_IDS" envSeparator:","`
	JWTSecret   string        `env:"BAZAAR_CHAT_JWT_SECRET"`
	Locale      string        `env:"BAZAAR_CHAT_LOCALE"       envDefault:"ru"`
	IdleTimeout time.Duration `env:"BAZAAR_CHAT_IDLE_TIMEOUT" envDefault:"30m"`
	SeedCatalog bool          `env:"BAZAAR_CHAT_SEED_CATALOG" envDefault:"true"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.WSAddr, "ws-addr", cfg.WSAddr, "websocket gateway listen address")
	fs.StringVar(&cfg.OpsAddr, "ops-addr", cfg.OpsAddr, "ops HTTP listen address")
	fs.StringVar(&cfg.GRPCAddr, "grpc-addr", cfg.GRPCAddr, "gRPC health listen address")
	fs.StringVar(&cfg.StoreBackend, "store-backend", cfg.StoreBackend, "persistence backend: memory, sqlite, or redis")
	fs.StringVar(&cfg.SQLitePath, "sqlite-path", cfg.SQLitePath, "sqlite database path")
	fs.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "redis address")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "user-facing locale")
	fs.DurationVar(&cfg.IdleTimeout, "idle-timeout", cfg.IdleTimeout, "stalled workflow expiry, 0 disables")
	fs.BoolVar(&cfg.SeedCatalog, "seed-catalog", cfg.SeedCatalog, "seed starter products into an empty catalog")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run builds the bot service and serves it until the context ends.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceBot, func(context.Context) error {
		if err := serve(ctx, cfg); err != nil {
			return fmt.Errorf("serve bot: %w", err)
		}
		return nil
	})
}
