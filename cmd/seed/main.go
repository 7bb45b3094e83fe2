package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	product "github.com/angelmondragon/storefront/internal/products"
	"github.com/angelmondragon/storefront/internal/users"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/db"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront-seed"})
	ctx := context.Background()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}
	logg = logger.New(logger.Options{
		ServiceName: "storefront-seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})
	ctx = logg.WithField(ctx, "env", cfg.App.Env)

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := run(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "seed failed", multierr.Append(err, dbClient.Close()))
		os.Exit(1)
	}
	if err := dbClient.Close(); err != nil {
		logg.Error(ctx, "error closing database", err)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger, dbClient *db.Client) error {
	if err := migrate.MaybeRun(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	userService, err := users.NewService(users.ServiceParams{
		Repo: users.NewRepository(dbClient.DB()),
		DB:   dbClient,
	})
	if err != nil {
		return err
	}
	productService, err := product.NewService(product.NewRepository(dbClient.DB()), dbClient)
	if err != nil {
		return err
	}

	s := &seeder{
		users:    userService,
		products: productService,
		password: cfg.Password,
		seed:     cfg.Seed,
		logg:     logg,
	}
	return s.Run(ctx)
}
