// Command opsctl runs maintenance jobs against the focus group database.
//
//	opsctl campaign-health [-dry-run]
//	opsctl seed-settings
//	opsctl seed-admin -email admin@example.com -password ... [-first-name ...] [-last-name ...]
//
// Database and logging settings come from the server configuration
// (environment, -c JSON file, -d DSN).
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/focusgroup/internal/flagx"
	"github.com/dmitrijs2005/focusgroup/internal/logging"
	"github.com/dmitrijs2005/focusgroup/internal/ops/campaignhealth"
	"github.com/dmitrijs2005/focusgroup/internal/ops/seed"
	"github.com/dmitrijs2005/focusgroup/internal/server/cache"
	"github.com/dmitrijs2005/focusgroup/internal/server/config"
	"github.com/dmitrijs2005/focusgroup/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/focusgroup/internal/server/services"
)

const usage = "usage: opsctl campaign-health [-dry-run] | seed-settings | seed-admin -email E -password P"

func main() {
	if len(os.Args) < 2 {
		log.Fatal(usage)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(os.Stdout, cfg.LogFormat, cfg.LogLevel).With("module", "opsctl")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Args[1], os.Args[2:], logger); err != nil {
		logger.Error(ctx, "command failed", "command", os.Args[1], "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, command string, args []string, logger logging.Logger) error {
	switch command {
	case "campaign-health", "seed-settings", "seed-admin":
	default:
		return fmt.Errorf("unknown command %q\n%s", command, usage)
	}

	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	dryRun := fs.Bool("dry-run", false, "report changes without writing them")
	var admin seed.AdminOptions
	fs.StringVar(&admin.Email, "email", "", "admin email")
	fs.StringVar(&admin.Password, "password", "", "admin password")
	fs.StringVar(&admin.FirstName, "first-name", "", "admin first name")
	fs.StringVar(&admin.LastName, "last-name", "", "admin last name")

	own := flagx.FilterArgs(args, []string{
		"-dry-run", "--dry-run", "-email", "--email", "-password", "--password",
		"-first-name", "--first-name", "-last-name", "--last-name",
	})
	if err := fs.Parse(own); err != nil {
		return err
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	switch command {
	case "campaign-health":
		_, err := campaignhealth.Recompute(ctx, rm.Campaigns(db), *dryRun, logger)
		return err
	case "seed-settings":
		// The cache is left alone; a missing row means it holds defaults anyway.
		settings := services.NewSettingsService(db, rm, cache.NewSettingsCache(nil, 0), logger)
		return seed.SeedMenuSettings(ctx, settings, logger)
	default:
		_, err := seed.SeedAdmin(ctx, rm.Users(db), admin, logger)
		return err
	}
}
