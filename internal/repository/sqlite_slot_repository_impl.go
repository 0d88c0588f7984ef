package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	domainRepo "salon-booking/internal/domain/repository"
)

type sqliteSlotRepository struct {
	db *sql.DB
}

// NewSQLiteSlotRepository expects the storage_slots table to exist, see
// database.NewSQLiteConnection.
func NewSQLiteSlotRepository(db *sql.DB) domainRepo.SlotRepository {
	return &sqliteSlotRepository{db: db}
}

func (r *sqliteSlotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM storage_slots WHERE slot_key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select slot %s: %w", key, err)
	}
	return []byte(value), nil
}

func (r *sqliteSlotRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO storage_slots (slot_key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(slot_key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("upsert slot %s: %w", key, err)
	}
	return nil
}
