package services

import (
	"context"

	"github.com/google/uuid"

	"uptask-api/domain/dto"
	"uptask-api/domain/models"
)

type ProjectService interface {
	CreateProject(ctx context.Context, managerID uuid.UUID, req *dto.ProjectRequest) (*models.Project, error)
	ListProjects(ctx context.Context, userID uuid.UUID) ([]*models.Project, error)
	GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error)
	// GetProjectDetail คืน project พร้อม tasks ถ้า user เป็น manager หรือ team member
	GetProjectDetail(ctx context.Context, project *models.Project, userID uuid.UUID) ([]*models.Task, error)
	UpdateProject(ctx context.Context, project *models.Project, req *dto.ProjectRequest) error
	DeleteProject(ctx context.Context, project *models.Project) error
}
