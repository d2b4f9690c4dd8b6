package migrate

import (
	"context"

	"storefront/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MigrateOptions struct {
	CreateFunctionalIdx bool // unique index on lower(email)
	CreateFKsViaSQL     bool // FKs created via Exec after AutoMigrate
}

func DefaultMigrateOptions() MigrateOptions {
	return MigrateOptions{
		CreateFunctionalIdx: true,
		CreateFKsViaSQL:     true,
	}
}

func MigrateShopDB(ctx context.Context, db *gorm.DB, log *zap.Logger, opt MigrateOptions) error {
	log.Info("starting storefront database migration")

	if err := db.WithContext(ctx).Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		log.Error("failed to enable pgcrypto extension", zap.Error(err))
		return err
	}
	if err := db.WithContext(ctx).Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		log.Error("failed to enable uuid-ossp extension", zap.Error(err))
		return err
	}

	if err := db.WithContext(ctx).AutoMigrate(
		&models.Customer{},
		&models.Product{},
		&models.Reservation{},
	); err != nil {
		log.Error("failed to create tables", zap.Error(err))
		return err
	}
	log.Info("base tables created")

	if opt.CreateFunctionalIdx {
		if err := db.WithContext(ctx).Exec(
			`CREATE UNIQUE INDEX IF NOT EXISTS ux_customers_email ON customers (lower(email))`,
		).Error; err != nil {
			log.Error("failed to create unique index on lower(email)", zap.Error(err))
			return err
		}
	}

	// Single-claim exclusivity: at most one unpaid reservation per product.
	// Concurrent reserve attempts race on this index instead of on
	// application-level checks.
	if err := db.WithContext(ctx).Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_reservations_product_unpaid
		 ON reservations (product_id) WHERE NOT paid`,
	).Error; err != nil {
		log.Error("failed to create partial unique reservation index", zap.Error(err))
		return err
	}

	if opt.CreateFKsViaSQL {
		if err := db.WithContext(ctx).Exec(`
ALTER TABLE reservations
  DROP CONSTRAINT IF EXISTS fk_reservations_product,
  ADD CONSTRAINT fk_reservations_product FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE;
`).Error; err != nil {
			log.Error("failed to create FK reservations.product_id -> products.id", zap.Error(err))
			return err
		}
		if err := db.WithContext(ctx).Exec(`
ALTER TABLE reservations
  DROP CONSTRAINT IF EXISTS fk_reservations_customer,
  ADD CONSTRAINT fk_reservations_customer FOREIGN KEY (customer_id) REFERENCES customers(id) ON DELETE CASCADE;
`).Error; err != nil {
			log.Error("failed to create FK reservations.customer_id -> customers.id", zap.Error(err))
			return err
		}
	}

	if err := db.WithContext(ctx).Exec(`
CREATE OR REPLACE FUNCTION set_updated_at() RETURNS trigger AS $$
BEGIN NEW.updated_at = now(); RETURN NEW; END; $$ LANGUAGE plpgsql;
DROP TRIGGER IF EXISTS trg_customers_updated ON customers;
CREATE TRIGGER trg_customers_updated BEFORE UPDATE ON customers
FOR EACH ROW EXECUTE FUNCTION set_updated_at();
DROP TRIGGER IF EXISTS trg_products_updated ON products;
CREATE TRIGGER trg_products_updated BEFORE UPDATE ON products
FOR EACH ROW EXECUTE FUNCTION set_updated_at();
`).Error; err != nil {
		log.Error("failed to create updated_at trigger", zap.Error(err))
		return err
	}

	log.Info("storefront database migration completed")
	return nil
}

// SeedAdmin creates the administrator account when it does not exist yet.
// passwordHash must already be a bcrypt hash.
func SeedAdmin(ctx context.Context, db *gorm.DB, log *zap.Logger, email, passwordHash, name string) error {
	if email == "" {
		log.Info("no admin email configured, skipping admin seed")
		return nil
	}

	var count int64
	if err := db.WithContext(ctx).Model(&models.Customer{}).
		Where("lower(email) = lower(?)", email).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info("admin account already exists", zap.String("email", email))
		return nil
	}

	admin := &models.Customer{
		Email:    email,
		Password: passwordHash,
		Name:     name,
		Role:     models.RoleAdmin,
	}
	if err := db.WithContext(ctx).Create(admin).Error; err != nil {
		log.Error("failed to seed admin account", zap.Error(err))
		return err
	}
	log.Info("admin account created", zap.String("email", email))
	return nil
}
