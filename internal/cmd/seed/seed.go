// Package seed parses seed command flags and fills the catalog with demo data.
package seed

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	entrypoint "github.com/louisbranch/beveragebuddy/internal/platform/cmd"
	adminserver "github.com/louisbranch/beveragebuddy/internal/services/admin"
	"github.com/louisbranch/beveragebuddy/internal/services/admin/catalog"
)

// Config holds seed command configuration.
type Config struct {
	DBPath string `env:"BEVERAGE_BUDDY_ADMIN_DB_PATH" envDefault:"data/admin.db"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "Catalog SQLite path")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run seeds the catalog at cfg.DBPath and reports the outcome to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSeed, func(ctx context.Context) error {
		store, err := adminserver.OpenStore(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		c, err := catalog.New(store)
		if err != nil {
			return err
		}
		seeded, err := c.SeedDemo(ctx, time.Now().UTC())
		if err != nil {
			return err
		}
		if !seeded {
			fmt.Fprintln(out, "catalog already has data; nothing seeded")
			return nil
		}
		fmt.Fprintf(out, "seeded %d categories\n", len(catalog.DemoCategories))
		return nil
	})
}
