package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskStatus สถานะของ task (เปลี่ยนจากสถานะใดไปสถานะใดก็ได้)
type TaskStatus string

const (
	TaskStatusPending     TaskStatus = "pending"
	TaskStatusOnHold      TaskStatus = "onHold"
	TaskStatusInProgress  TaskStatus = "inProgress"
	TaskStatusUnderReview TaskStatus = "underReview"
	TaskStatusCompleted   TaskStatus = "completed"
)

// TaskStatuses ทุกสถานะที่ถูกต้อง
var TaskStatuses = []TaskStatus{
	TaskStatusPending,
	TaskStatusOnHold,
	TaskStatusInProgress,
	TaskStatusUnderReview,
	TaskStatusCompleted,
}

func (s TaskStatus) IsValid() bool {
	for _, v := range TaskStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type Task struct {
	ID          uuid.UUID          `gorm:"primaryKey;type:uuid"`
	Name        string             `gorm:"not null"`
	Description string             `gorm:"not null"`
	Status      TaskStatus         `gorm:"size:20;default:'pending'"`
	ProjectID   uuid.UUID          `gorm:"type:uuid;index;not null"`
	CompletedBy []TaskStatusChange `gorm:"foreignKey:TaskID"`
	Notes       UUIDList           `gorm:"serializer:json;type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Task) TableName() string {
	return "tasks"
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.Status == "" {
		t.Status = TaskStatusPending
	}
	assignID(&t.ID)
	return nil
}

// TaskStatusChange ประวัติการเปลี่ยนสถานะ (ใครเปลี่ยนเป็นอะไร)
type TaskStatusChange struct {
	ID        uuid.UUID  `gorm:"primaryKey;type:uuid"`
	TaskID    uuid.UUID  `gorm:"type:uuid;index;not null"`
	UserID    uuid.UUID  `gorm:"type:uuid;index;not null"`
	User      *User      `gorm:"foreignKey:UserID"`
	Status    TaskStatus `gorm:"size:20;not null"`
	CreatedAt time.Time
}

func (TaskStatusChange) TableName() string {
	return "task_status_changes"
}

func (c *TaskStatusChange) BeforeCreate(tx *gorm.DB) error {
	assignID(&c.ID)
	return nil
}
