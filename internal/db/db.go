package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gym-backend/config"
	"gym-backend/internal/model"
)

// Init initializes the database connection and runs migrations.
func Init(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	if cfg.EnableSlotIndexes {
		if err := ApplySlotIndexes(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}

// Migrate creates or updates the schema for all models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Member{},
		&model.GymCenter{},
		&model.GymCenterPhoto{},
		&model.Trainer{},
		&model.TrainerActivity{},
		&model.Activity{},
		&model.Appointment{},
		&model.ChatMessage{},
		&model.PushSubscription{},
	); err != nil {
		return fmt.Errorf("automigrate failed: %w", err)
	}
	return nil
}

// ApplySlotIndexes installs partial unique indexes that make the
// approved-slot invariant hold at the storage level: at most one approved
// appointment per (trainer, date, minute slot) and per (member, date,
// minute slot). With these in place, two transactions racing to approve the
// same slot cannot both commit; the loser gets a duplicate-key error.
//
// The WHERE clause pins status to the approved enum value; pending,
// rejected and completed rows stay out of the index entirely.
func ApplySlotIndexes(db *gorm.DB) error {
	ddls := []string{
		fmt.Sprintf(
			"CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_trainer_slot "+
				"ON appointments (trainer_id, appointment_date, appointment_time) WHERE status = %d;",
			model.StatusApproved),
		fmt.Sprintf(
			"CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_member_slot "+
				"ON appointments (member_id, appointment_date, appointment_time) WHERE status = %d;",
			model.StatusApproved),
	}

	for _, ddl := range ddls {
		if err := db.Exec(ddl).Error; err != nil {
			return fmt.Errorf("DDL failed on %q: %w", ddl, err)
		}
	}
	return nil
}
