// Command reconcile re-rounds legacy charge amounts and repairs charge statuses
// outside the API process, e.g. from a cron job or after a data import.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/TeamSoftLion/crm/internal/config"
	"github.com/TeamSoftLion/crm/internal/database"
	"github.com/TeamSoftLion/crm/internal/repository"
	"github.com/TeamSoftLion/crm/internal/services"
	"github.com/TeamSoftLion/crm/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "report changes without writing them")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Setup(cfg.Environment)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svcs := services.NewServices(repository.NewRepositories(db), nil, cfg)
	report, err := svcs.Reconcile.Run(ctx, *dryRun)
	if err != nil {
		logger.Error("Reconcile failed", "error", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		logger.Error("Failed to write report", "error", err)
		os.Exit(1)
	}
}
