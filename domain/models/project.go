package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Project struct {
	ID          uuid.UUID `gorm:"primaryKey;type:uuid"`
	ProjectName string    `gorm:"not null"`
	ClientName  string    `gorm:"not null"`
	Description string    `gorm:"not null"`
	Slug        string    `gorm:"index"`
	// Tasks ลำดับ id ของ task ตามลำดับที่สร้าง
	Tasks     UUIDList  `gorm:"serializer:json;type:text"`
	ManagerID uuid.UUID `gorm:"type:uuid;index;not null"`
	Manager   *User     `gorm:"foreignKey:ManagerID"`
	Team      UUIDList  `gorm:"serializer:json;type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Project) TableName() string {
	return "projects"
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	assignID(&p.ID)
	return nil
}

// IsManager ตรวจว่า user เป็น manager ของ project
func (p *Project) IsManager(userID uuid.UUID) bool {
	return p.ManagerID == userID
}

// IsMember manager หรืออยู่ใน team
func (p *Project) IsMember(userID uuid.UUID) bool {
	return p.IsManager(userID) || p.Team.Contains(userID)
}
