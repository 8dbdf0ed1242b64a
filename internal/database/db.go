package database

import (
	"errors"

	"delivery-admin/internal/config"
	"delivery-admin/internal/logger"
	"delivery-admin/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	DB  *gorm.DB
	log = logger.New("database")
)

func Init(cfg *config.Config) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	DB = db
	log.Info("database connected, migration complete")
}

// Migrate creates or updates every table the dashboard reads or writes.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.AuditLog{},
		&models.Category{},
		&models.Restaurant{},
		&models.MenuItem{},
		&models.Addon{},
		&models.AddonOption{},
		&models.Event{},
		&models.PartyRequest{},
		&models.Notification{},
		&models.SpecialOffer{},
		&models.Rider{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderTracking{},
		&models.File{},
		&models.AppConfig{},
		&models.Content{},
	)
}

// IsUniqueViolation reports duplicate-key failures from either the
// translated gorm error or a raw Postgres error.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// IsNotFound reports gorm's record-not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
