package model

import (
	"time"

	"gorm.io/gorm"
)

// Note rows are hard-deleted, so there is no DeletedAt column.
type Note struct {
	Id        int64     `gorm:"primaryKey;autoIncrement"`
	Title     *string   `gorm:"type:text"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Note) TableName() string {
	return "notes"
}

// Migrate creates or updates every table owned by the note store.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Note{})
}
