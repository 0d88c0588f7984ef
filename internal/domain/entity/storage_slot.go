package entity

import "time"

// StorageSlot is one named key of the persistent slot store in SQL backends.
type StorageSlot struct {
	Key       string    `gorm:"column:slot_key;type:varchar(255);primaryKey" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (StorageSlot) TableName() string {
	return "storage_slots"
}
