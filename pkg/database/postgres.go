package database

import (
	"log"

	"github.com/Phenoo/bookkeep-server/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Property{},
		&models.Booking{},
		&models.Activity{},
		&models.Sale{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Exclusion constraint: the database rejects overlapping date ranges for
	// the same property unless the booking is cancelled, backstopping the
	// in-transaction conflict check.
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	db.Exec(`
		DO $$
		BEGIN
			IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'bookings_no_overlap') THEN
				ALTER TABLE bookings
					ADD CONSTRAINT bookings_no_overlap
					EXCLUDE USING gist (
						property_id WITH =,
						daterange(start_date, end_date) WITH &&
					) WHERE (status <> 'cancelled');
			END IF;
		END $$;
	`)

	return db
}
