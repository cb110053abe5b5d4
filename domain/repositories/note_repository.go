package repositories

import (
	"context"

	"github.com/google/uuid"

	"uptask-api/domain/models"
)

type NoteRepository interface {
	// CreateForTask สร้าง note และต่อ id ท้าย task.Notes ใน transaction เดียว
	CreateForTask(ctx context.Context, note *models.Note) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Note, error)
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]*models.Note, error)
	// DeleteFromTask เอา id ออกจาก task.Notes แล้วลบ note
	DeleteFromTask(ctx context.Context, note *models.Note) error
}
