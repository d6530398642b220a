package main

import (
	"fmt"
	"io"

	"atelier/internal/pricing"
	"atelier/internal/storage"

	"github.com/urfave/cli/v2"
)

func quoteCommand() *cli.Command {
	return &cli.Command{
		Name:      "quote",
		Usage:     "Print a price estimate",
		ArgsUsage: " ",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "garment", Aliases: []string{"g"}, Required: true},
			&cli.StringFlag{Name: "fabric", Aliases: []string{"f"}, Required: true},
			&cli.StringSliceFlag{Name: "service", Aliases: []string{"s"}, Usage: "Add-on service id, repeatable"},
			&cli.StringFlag{Name: "catalog", Usage: "YAML pricing schedule", EnvVars: []string{"CATALOG_PATH"}},
		},
		Action: func(c *cli.Context) error {
			catalog, err := loadCatalog(c.String("catalog"))
			if err != nil {
				return err
			}

			sel := pricing.Selection{
				GarmentID:  c.String("garment"),
				FabricID:   c.String("fabric"),
				ServiceIDs: pricing.NewServiceSet(c.StringSlice("service")...),
			}
			b, ok := pricing.Calculate(sel, catalog)
			if !ok {
				return fmt.Errorf("no estimate: unknown garment %q or fabric %q", sel.GarmentID, sel.FabricID)
			}

			printBreakdown(c.App.Writer, b)
			return nil
		},
	}
}

func printBreakdown(w io.Writer, b pricing.Breakdown) {
	fmt.Fprintf(w, "%s, %s\n", b.Garment.Name, b.Fabric.Name)
	fmt.Fprintf(w, "  base            %10s\n", b.Base.StringFixed(2))
	fmt.Fprintf(w, "  fabric (x%s) %10s\n", b.Fabric.Multiplier.String(), b.FabricSurcharge.StringFixed(2))
	for _, s := range b.Services {
		fmt.Fprintf(w, "  + %-30s %10s\n", s.Name, s.Price.StringFixed(2))
	}
	fmt.Fprintf(w, "Total: %s ₽\n", b.Total.StringFixed(0))
}

func migrateCommand() *cli.Command {
	run := func(fn func(a *appContext, pg *storage.PostgresStorage, c *cli.Context) error) cli.ActionFunc {
		return func(c *cli.Context) error {
			a := fromContext(c)
			if !a.cfg.Database.Enabled() {
				return fmt.Errorf("DB_HOST is not set")
			}
			pg, err := storage.NewPostgresStorage(c.Context, a.cfg.Database, a.logger)
			if err != nil {
				return err
			}
			defer pg.Close()
			return fn(a, pg, c)
		}
	}

	return &cli.Command{
		Name:  "migrate",
		Usage: "Manage the orders database schema",
		Subcommands: []*cli.Command{
			{
				Name:  "up",
				Usage: "Apply all pending migrations",
				Action: run(func(a *appContext, pg *storage.PostgresStorage, c *cli.Context) error {
					return storage.RunMigrations(c.Context, pg.DB(), a.logger)
				}),
			},
			{
				Name:  "down",
				Usage: "Roll back the last migration",
				Action: run(func(a *appContext, pg *storage.PostgresStorage, c *cli.Context) error {
					return storage.RollbackMigration(c.Context, pg.DB(), a.logger)
				}),
			},
			{
				Name:  "status",
				Usage: "Print migration status",
				Action: run(func(a *appContext, pg *storage.PostgresStorage, c *cli.Context) error {
					return storage.Status(c.Context, pg.DB(), a.logger)
				}),
			},
		},
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export all orders to an Excel report",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "Report file name without extension"},
		},
		Action: func(c *cli.Context) error {
			a := fromContext(c)
			if !a.cfg.Database.Enabled() {
				return fmt.Errorf("DB_HOST is not set")
			}
			pg, err := storage.NewPostgresStorage(c.Context, a.cfg.Database, a.logger)
			if err != nil {
				return err
			}
			defer pg.Close()

			list, err := pg.ListOrders(c.Context)
			if err != nil {
				return err
			}

			path, err := storage.ExportOrdersToExcel(list, a.cfg.Orders.ReportsDir, c.String("name"))
			if err != nil {
				return err
			}

			fmt.Fprintf(c.App.Writer, "Exported %d orders to %s\n", len(list), path)
			return nil
		},
	}
}

func orderStatusCommand() *cli.Command {
	return &cli.Command{
		Name:      "order-status",
		Usage:     "Set an order's status (new, processing, done, cancelled)",
		ArgsUsage: "<order-id> <status>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return fmt.Errorf("expected <order-id> <status>")
			}
			a := fromContext(c)
			if !a.cfg.Database.Enabled() {
				return fmt.Errorf("DB_HOST is not set")
			}
			pg, err := storage.NewPostgresStorage(c.Context, a.cfg.Database, a.logger)
			if err != nil {
				return err
			}
			defer pg.Close()

			return pg.UpdateOrderStatus(c.Context, c.Args().Get(0), c.Args().Get(1))
		},
	}
}
