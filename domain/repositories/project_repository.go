package repositories

import (
	"context"

	"github.com/google/uuid"

	"uptask-api/domain/models"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	// ListForUser project ที่ user เป็น manager หรืออยู่ใน team
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*models.Project, error)
	// Update แก้ชื่อ, client, description และ slug
	Update(ctx context.Context, project *models.Project) error
	// ModifyTeam lock project แล้วให้ modify คำนวณ team ใหม่จากค่าล่าสุดใน DB
	// error จาก modify ถูกคืนตามเดิมและไม่มีการเขียน
	ModifyTeam(ctx context.Context, projectID uuid.UUID, modify func(team models.UUIDList) (models.UUIDList, error)) (models.UUIDList, error)
	// DeleteCascade ลบ notes, status history, tasks แล้วค่อยลบ project ใน transaction เดียว
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}
