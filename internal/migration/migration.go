package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	catalogdomain "github.com/smallbiznis/varejo/internal/catalog/domain"
	customerdomain "github.com/smallbiznis/varejo/internal/customer/domain"
	groupdomain "github.com/smallbiznis/varejo/internal/group/domain"
	marketingdomain "github.com/smallbiznis/varejo/internal/marketing/domain"
	salesdomain "github.com/smallbiznis/varejo/internal/sales/domain"
	"github.com/smallbiznis/varejo/pkg/db"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

const migrationsDir = "migrations"

// Run brings the schema up to date. Postgres runs the versioned SQL files so
// foreign keys carry their ON DELETE rules; other dialects use AutoMigrate.
func Run(conn *gorm.DB, driver db.Driver) error {
	if driver == db.DriverPostgres {
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}
	return AutoMigrate(conn)
}

func RunMigrations(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	upErr := migrator.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	// Do not call migrator.Close here because it would close the shared *sql.DB.

	return nil
}

// Models lists every persisted model in dependency order.
func Models() []any {
	return []any{
		&catalogdomain.Category{},
		&catalogdomain.Brand{},
		&catalogdomain.Product{},
		&customerdomain.CustomerDocument{},
		&customerdomain.Customer{},
		&customerdomain.Address{},
		&customerdomain.CustomerAddress{},
		&customerdomain.LoyaltyProgram{},
		&groupdomain.Group{},
		&groupdomain.GroupAddress{},
		&groupdomain.Store{},
		&marketingdomain.Contact{},
		&groupdomain.StoreContact{},
		&marketingdomain.SocialMedia{},
		&marketingdomain.Campaign{},
		&marketingdomain.Offer{},
		&marketingdomain.OfferProduct{},
		&marketingdomain.Coupon{},
		&salesdomain.Order{},
		&salesdomain.OrderItem{},
	}
}

func AutoMigrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
