package database

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/pageza/recipebox/backend/internal/model"
)

// RunMigrations brings the schema up to date. SQLite uses gorm
// auto-migration; PostgreSQL applies the embedded SQL files.
func RunMigrations(ctx context.Context, db *gorm.DB, files fs.FS, log *logrus.Logger) error {
	if db.Dialector.Name() == "sqlite" {
		log.Info("Using GORM auto-migration for SQLite")
		return db.WithContext(ctx).AutoMigrate(&model.Recipe{})
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}

	applied, err := NewMigrator(sqlDB, files, log).Up(ctx)
	if err != nil {
		return err
	}
	log.WithField("applied", len(applied)).Info("Migrations complete")
	return nil
}
