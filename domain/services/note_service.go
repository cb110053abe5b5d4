package services

import (
	"context"

	"github.com/google/uuid"

	"uptask-api/domain/dto"
	"uptask-api/domain/models"
)

type NoteService interface {
	CreateNote(ctx context.Context, task *models.Task, userID uuid.UUID, req *dto.NoteRequest) (*models.Note, error)
	ListNotes(ctx context.Context, taskID uuid.UUID) ([]*models.Note, error)
	// DeleteNote ลบได้เฉพาะคนที่สร้าง note
	DeleteNote(ctx context.Context, task *models.Task, noteID, userID uuid.UUID) error
}
