package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/entity"
	"github.com/Ferdismit7/qmstool-sub002/internal/domain/model"
)

// RecordModels returns an empty model per kind, in kind order.
func RecordModels() []model.Record {
	return []model.Record{
		&model.Process{},
		&model.Document{},
		&model.Objective{},
		&model.Risk{},
		&model.NonConformity{},
		&model.RecordKeepingSystem{},
		&model.Improvement{},
		&model.Evaluation{},
		&model.FeedbackSystem{},
		&model.TrainingSession{},
		&model.Assessment{},
	}
}

// Migrate creates or updates every table.
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	err := db.AutoMigrate(
		&model.User{},
		&model.UserBusinessArea{},
		&model.BusinessArea{},
		&model.AuditLog{},
		&model.DocumentLink{},
	)
	if err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	for _, rec := range RecordModels() {
		kind := rec.RecordKind()
		if err := db.AutoMigrate(rec); err != nil {
			return fmt.Errorf("failed to migrate %s: %w", kind.Table(), err)
		}
		if err := db.Table(kind.FileVersionTable()).AutoMigrate(&model.FileVersion{}); err != nil {
			return fmt.Errorf("failed to migrate %s: %w", kind.FileVersionTable(), err)
		}
	}

	logger.Info("Database migrations completed", zap.Int("record_kinds", len(entity.Kinds())))
	return nil
}
