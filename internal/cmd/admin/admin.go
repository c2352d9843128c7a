// Package admin parses admin command flags and launches the categories UI.
package admin

import (
	"context"
	"flag"
	"time"

	entrypoint "github.com/louisbranch/beveragebuddy/internal/platform/cmd"
	adminserver "github.com/louisbranch/beveragebuddy/internal/services/admin"
	"github.com/louisbranch/beveragebuddy/internal/services/admin/jsdialog"
)

// Config holds admin command configuration.
type Config struct {
	HTTPAddr      string        `env:"BEVERAGE_BUDDY_ADMIN_ADDR" envDefault:":8082"`
	DBPath        string        `env:"BEVERAGE_BUDDY_ADMIN_DB_PATH" envDefault:"data/admin.db"`
	LoadSteps     int           `env:"BEVERAGE_BUDDY_LOAD_STEPS" envDefault:"3"`
	LoadStepDelay time.Duration `env:"BEVERAGE_BUDDY_LOAD_STEP_DELAY" envDefault:"2s"`
	SeedDemo      bool          `env:"BEVERAGE_BUDDY_SEED_DEMO" envDefault:"true"`

	JQueryURL      string `env:"BEVERAGE_BUDDY_JQUERY_URL"`
	JQueryUIURL    string `env:"BEVERAGE_BUDDY_JQUERY_UI_URL"`
	JQueryUICSSURL string `env:"BEVERAGE_BUDDY_JQUERY_UI_CSS_URL"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "Catalog SQLite path")
	fs.IntVar(&cfg.LoadSteps, "load-steps", cfg.LoadSteps, "Steps in the pushed load sequence")
	fs.DurationVar(&cfg.LoadStepDelay, "load-step-delay", cfg.LoadStepDelay, "Pause between pushed load steps")
	fs.BoolVar(&cfg.SeedDemo, "seed-demo", cfg.SeedDemo, "Fill an empty catalog with demo data at startup")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) serverConfig() adminserver.Config {
	return adminserver.Config{
		HTTPAddr:      c.HTTPAddr,
		DBPath:        c.DBPath,
		LoadSteps:     c.LoadSteps,
		LoadStepDelay: c.LoadStepDelay,
		SeedDemo:      c.SeedDemo,
		Dependencies: jsdialog.Dependencies{
			JQueryURL:      c.JQueryURL,
			JQueryUIURL:    c.JQueryUIURL,
			JQueryUICSSURL: c.JQueryUICSSURL,
		},
	}
}

// Run starts the admin web server.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceAdmin, func(ctx context.Context) error {
		server, err := adminserver.NewServer(ctx, cfg.serverConfig())
		if err != nil {
			return err
		}
		defer server.Close()
		return server.ListenAndServe(ctx)
	})
}
