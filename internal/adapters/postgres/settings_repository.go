package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/paymentrails/monei-sync/internal/domain"
)

type settingsRepository struct {
	db *gorm.DB
}

func (r *settingsRepository) Get(ctx context.Context, key string) (string, error) {
	var rec settingModel
	if err := r.db.WithContext(ctx).Where("key = ?", key).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	return rec.Value, nil
}

func (r *settingsRepository) Set(ctx context.Context, key, value string, updatedAt time.Time) error {
	rec := settingModel{Key: key, Value: value, UpdatedAt: updatedAt}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]any{
			"value":      rec.Value,
			"updated_at": rec.UpdatedAt,
		}),
	}).Create(&rec).Error
}
