package main

import (
	"fmt"
	"os"

	"atelier/internal/config"
	"atelier/internal/pricing"
	"atelier/pkg/logger"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// ENTRY POINT

type appContext struct {
	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	app := &cli.App{
		Name:  "atelier",
		Usage: "Atelier Premium website backend: price calculator and order intake",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if lvl := c.String("log-level"); lvl != "" {
				cfg.LogLevel = lvl
			}

			zapLogger, err := logger.New(cfg.LogLevel, !cfg.IsProduction())
			if err != nil {
				return err
			}

			c.App.Metadata = map[string]interface{}{
				"app": &appContext{cfg: cfg, logger: zapLogger},
			}
			return nil
		},
		After: func(c *cli.Context) error {
			if a := fromContext(c); a != nil {
				_ = a.logger.Sync()
			}
			return nil
		},
		Commands: []*cli.Command{
			serveCommand(),
			quoteCommand(),
			migrateCommand(),
			exportCommand(),
			orderStatusCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func fromContext(c *cli.Context) *appContext {
	a, _ := c.App.Metadata["app"].(*appContext)
	return a
}

func loadCatalog(path string) (*pricing.Catalog, error) {
	if path == "" {
		return pricing.DefaultCatalog(), nil
	}
	return pricing.LoadCatalog(path)
}
