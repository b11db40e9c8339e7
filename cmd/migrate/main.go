package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"

	"github.com/wearhaus/wearhaus-backend/pkg/config"
	"github.com/wearhaus/wearhaus-backend/pkg/db"
	"github.com/wearhaus/wearhaus-backend/pkg/logger"
	"github.com/wearhaus/wearhaus-backend/pkg/migrate"
)

func main() {
	dir := flag.String("dir", migrate.DefaultDir, "directory with migration files")
	flag.Parse()

	command := "up"
	args := flag.Args()
	if len(args) > 0 {
		command = args[0]
		args = args[1:]
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logg := logger.New(logger.Options{
		ServiceName: "wearhaus-migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	ctx := context.Background()

	client, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "database bootstrap failed", err)
		os.Exit(1)
	}
	defer func() { _ = client.Close() }()

	sqlDB, err := client.DB().DB()
	if err != nil {
		logg.Error(ctx, "extracting sql handle failed", err)
		os.Exit(1)
	}

	ctx = logg.WithFields(ctx, map[string]any{"command": command, "dir": *dir})
	logg.Info(ctx, "running migrations")

	if err := migrate.Run(ctx, sqlDB, *dir, command, args...); err != nil {
		logg.Error(ctx, "migration failed", err)
		os.Exit(1)
	}

	logg.Info(ctx, "migrations finished")
}
