package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kizora/invoicer/internal/domain/invoicing"
	"github.com/kizora/invoicer/internal/domain/shared"
	"github.com/kizora/invoicer/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSettingsRepository implements SettingsRepository using GORM
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GormSettingsRepository
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// Get returns the value stored under key
func (r *GormSettingsRepository) Get(ctx context.Context, key string) (string, error) {
	var row models.SettingModel
	if err := r.db.WithContext(ctx).First(&row, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", shared.ErrNotFound
		}
		return "", fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	return row.Value, nil
}

// Set stores value under key, replacing any previous value
func (r *GormSettingsRepository) Set(ctx context.Context, key, value string) error {
	row := models.SettingModel{Key: key, Value: value, UpdatedAt: time.Now()}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to store setting %s: %w", key, err)
	}
	return nil
}

var _ invoicing.SettingsRepository = (*GormSettingsRepository)(nil)
