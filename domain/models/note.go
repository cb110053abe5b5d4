package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Note struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid"`
	Content   string    `gorm:"type:text;not null"`
	CreatedBy uuid.UUID `gorm:"type:uuid;index;not null"`
	Author    *User     `gorm:"foreignKey:CreatedBy"`
	TaskID    uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Note) TableName() string {
	return "notes"
}

func (n *Note) BeforeCreate(tx *gorm.DB) error {
	assignID(&n.ID)
	return nil
}
