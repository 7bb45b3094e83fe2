package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/angelmondragon/storefront/internal/policy"
	product "github.com/angelmondragon/storefront/internal/products"
	"github.com/angelmondragon/storefront/internal/users"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/security"
)

type sampleProduct struct {
	name        string
	description string
	price       string
	category    string
}

var sampleCatalog = []sampleProduct{
	{name: "Desk Lamp", description: "Adjustable LED lamp with warm and cool modes.", price: "34.99", category: "Home"},
	{name: "Ceramic Mug", description: "12oz stoneware mug.", price: "12.50", category: "Kitchen"},
	{name: "Canvas Tote", description: "Heavy cotton tote bag.", price: "18.00", category: "Accessories"},
	{name: "Notebook", description: "A5 dotted notebook, 160 pages.", price: "9.75", category: "Stationery"},
	{name: "Gift Card", price: "25.00"},
}

type seeder struct {
	users    users.Service
	products product.Service
	password config.PasswordConfig
	seed     config.SeedConfig
	logg     *logger.Logger
}

// Run creates the admin account when missing and fills an empty catalog with
// sample products. Running it twice changes nothing.
func (s *seeder) Run(ctx context.Context) error {
	admin, err := s.ensureAdmin(ctx)
	if err != nil {
		return err
	}
	return s.seedCatalog(ctx, policy.Authenticated(admin.ID, admin.Username, true))
}

func (s *seeder) ensureAdmin(ctx context.Context) (*users.UserDTO, error) {
	username := strings.TrimSpace(s.seed.AdminUsername)
	if username == "" {
		return nil, fmt.Errorf("admin username is required")
	}

	existing, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("lookup admin: %w", err)
	}
	if existing != nil {
		if !existing.IsAdmin {
			return nil, fmt.Errorf("user %q exists but is not an admin", username)
		}
		s.logg.Info(s.logg.WithField(ctx, "username", username), "seed.admin_exists")
		return existing, nil
	}

	if s.seed.AdminPassword == "" {
		return nil, fmt.Errorf("admin password is required to create %q", username)
	}
	hash, err := security.HashPassword(s.seed.AdminPassword, s.password)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	admin, err := s.users.CreateAdmin(ctx, users.RegisterInput{
		Username:     username,
		Email:        s.seed.AdminEmail,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	s.logg.Info(s.logg.WithField(ctx, "username", username), "seed.admin_created")
	return admin, nil
}

func (s *seeder) seedCatalog(ctx context.Context, admin policy.Identity) error {
	existing, err := s.products.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}
	if len(existing) > 0 {
		s.logg.Info(s.logg.WithField(ctx, "products", len(existing)), "seed.catalog_present")
		return nil
	}

	var errs error
	created := 0
	for _, sample := range sampleCatalog {
		input := product.CreateProductInput{
			Name:  sample.name,
			Price: decimal.RequireFromString(sample.price),
		}
		if sample.description != "" {
			input.Description = &sample.description
		}
		if sample.category != "" {
			input.Category = &sample.category
		}
		if _, err := s.products.Create(ctx, admin, input); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("create %q: %w", sample.name, err))
			continue
		}
		created++
	}
	s.logg.Info(s.logg.WithField(ctx, "created", created), "seed.catalog_done")
	return errs
}
