package services

import (
	"context"

	"github.com/google/uuid"

	"uptask-api/domain/dto"
	"uptask-api/domain/models"
)

type TaskService interface {
	CreateTask(ctx context.Context, project *models.Project, req *dto.TaskRequest) (*models.Task, error)
	ListTasks(ctx context.Context, projectID uuid.UUID) ([]*models.Task, error)
	GetTask(ctx context.Context, id uuid.UUID) (*models.Task, error)
	// GetTaskDetail โหลด status history และ notes ของ task
	GetTaskDetail(ctx context.Context, id uuid.UUID) (*models.Task, []*models.Note, error)
	UpdateTask(ctx context.Context, task *models.Task, req *dto.TaskRequest) error
	DeleteTask(ctx context.Context, task *models.Task) error
	UpdateStatus(ctx context.Context, task *models.Task, userID uuid.UUID, status models.TaskStatus) error
}
