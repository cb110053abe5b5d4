package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Token รหัส 6 หลักสำหรับยืนยันบัญชีหรือ reset password ใช้ได้ครั้งเดียว
type Token struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid"`
	Token     string    `gorm:"size:6;index;not null"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time
}

func (Token) TableName() string {
	return "tokens"
}

func (t *Token) BeforeCreate(tx *gorm.DB) error {
	assignID(&t.ID)
	return nil
}

// IsExpired ตรวจว่าหมดอายุแล้วหรือยัง
func (t *Token) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
