package repositories

import (
	"context"

	"github.com/google/uuid"

	"uptask-api/domain/models"
)

type TaskRepository interface {
	// CreateInProject สร้าง task และต่อ id ท้าย project.Tasks ใน transaction เดียว
	CreateInProject(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	// GetDetail โหลด task พร้อม status history และ user ที่เปลี่ยน
	GetDetail(ctx context.Context, id uuid.UUID) (*models.Task, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	// UpdateStatus เขียน status ใหม่และเพิ่ม history ใน transaction เดียว
	UpdateStatus(ctx context.Context, task *models.Task, change *models.TaskStatusChange) error
	// DeleteFromProject เอา id ออกจาก project.Tasks แล้วลบ task + notes + history
	DeleteFromProject(ctx context.Context, task *models.Task) error
}
