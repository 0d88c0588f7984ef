package repository

import (
	"context"
	"errors"
	"fmt"

	"salon-booking/internal/domain/entity"
	domainRepo "salon-booking/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type postgresSlotRepository struct {
	db *gorm.DB
}

func NewPostgresSlotRepository(db *gorm.DB) domainRepo.SlotRepository {
	return &postgresSlotRepository{db: db}
}

func (r *postgresSlotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var slot entity.StorageSlot
	err := r.db.WithContext(ctx).Where("slot_key = ?", key).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find slot %s: %w", key, err)
	}
	return []byte(slot.Value), nil
}

func (r *postgresSlotRepository) Set(ctx context.Context, key string, value []byte) error {
	slot := entity.StorageSlot{Key: key, Value: string(value)}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&slot).Error
	if err != nil {
		return fmt.Errorf("upsert slot %s: %w", key, err)
	}
	return nil
}
