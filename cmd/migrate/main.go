package main

import (
	"context"
	"os"

	"storefront/config"
	"storefront/internal/database"
	"storefront/internal/hashing"
	"storefront/internal/logger"
	"storefront/internal/migrate"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)

	db := database.ConnectDB(&cfg.DB, log)
	defer database.CloseDB(db, log)

	ctx := context.Background()
	opts := migrate.DefaultMigrateOptions()

	if err := migrate.MigrateShopDB(ctx, db, log, opts); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	if cfg.Admin.Email != "" {
		if cfg.Admin.Password == "" {
			log.Fatal("ADMIN_EMAIL is set but ADMIN_PASSWORD is empty")
		}
		hash, err := hashing.NewBcrypt(0).Hash(cfg.Admin.Password)
		if err != nil {
			log.Fatal("failed to hash admin password", zap.Error(err))
		}
		if err := migrate.SeedAdmin(ctx, db, log, cfg.Admin.Email, hash, "Administrator"); err != nil {
			log.Fatal("failed to seed admin account", zap.Error(err))
		}
	}

	log.Info("migration completed")
}
