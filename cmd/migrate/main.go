package main

// Apply or inspect record store migrations:
//   RECORD_STORE=postgres DATABASE_URL=... go run ./cmd/migrate [up|status]

import (
	"context"
	"log"
	"os"

	"scholarship-intake/internal/bootstrap"
	"scholarship-intake/internal/shared/config"
	"scholarship-intake/internal/shared/storage/db"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	driverName, dsn, err := bootstrap.SQLTarget(cfg)
	if err != nil {
		log.Printf("migrate: %v", err)
		os.Exit(1)
	}

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, driverName, dsn, opts)
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	switch command {
	case "up":
		err = db.RunMigrations(ctx, sqlDB, driverName)
	case "status":
		err = db.MigrationStatus(ctx, sqlDB, driverName)
	default:
		log.Printf("unknown command %q (want up or status)", command)
		os.Exit(2)
	}
	if err != nil {
		log.Printf("migrate %s failed: %v", command, err)
		os.Exit(1)
	}
}
