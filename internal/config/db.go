package config

import (
	"planify-backend/internal/models"
	"time"

	"github.com/go-faster/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func ConnectDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	// Get underlying sql.DB for connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get database instance")
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Info("database connected")
	return db, nil
}

// AllModels lists every table the service owns, parents first.
func AllModels() []any {
	return []any{
		&models.Board{},
		&models.List{},
		&models.Card{},
		&models.AuditLog{},
		&models.OrgLimit{},
		&models.OrgSubscription{},
	}
}

func MigrateAllModels(db *gorm.DB, run bool) error {
	if !run {
		log.Info("skipping migration")
		return nil
	}
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return errors.Wrap(err, "failed to migrate database")
	}
	log.Info("database migration completed")
	return nil
}

func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
