package database

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/model"
)

type seedFile struct {
	BusinessAreas []model.BusinessArea `yaml:"business_areas"`
}

// LoadBusinessAreas parses the business area seed file.
func LoadBusinessAreas(path string) ([]model.BusinessArea, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return f.BusinessAreas, nil
}

// Seed inserts missing business areas. Existing rows are left alone so the
// seed can run on every start.
func Seed(db *gorm.DB, path string, logger *zap.Logger) error {
	if path == "" {
		return nil
	}

	areas, err := LoadBusinessAreas(path)
	if err != nil {
		return err
	}
	if len(areas) == 0 {
		return nil
	}

	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&areas)
	if result.Error != nil {
		return fmt.Errorf("failed to seed business areas: %w", result.Error)
	}

	logger.Info("Business areas seeded",
		zap.Int("configured", len(areas)),
		zap.Int64("inserted", result.RowsAffected),
	)
	return nil
}
