package serviceimpl

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"uptask-api/domain/dto"
	"uptask-api/domain/models"
	"uptask-api/domain/ports"
	"uptask-api/domain/repositories"
	"uptask-api/domain/services"
	"uptask-api/pkg/logger"
	"uptask-api/pkg/utils"
)

type ProjectServiceImpl struct {
	projectRepo repositories.ProjectRepository
	taskRepo    repositories.TaskRepository
	events      ports.EventPublisherPort
}

func NewProjectService(
	projectRepo repositories.ProjectRepository,
	taskRepo repositories.TaskRepository,
	events ports.EventPublisherPort,
) services.ProjectService {
	return &ProjectServiceImpl{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		events:      events,
	}
}

func (s *ProjectServiceImpl) CreateProject(ctx context.Context, managerID uuid.UUID, req *dto.ProjectRequest) (*models.Project, error) {
	project := &models.Project{
		ProjectName: req.ProjectName,
		ClientName:  req.ClientName,
		Description: req.Description,
		Slug:        slug.Make(req.ProjectName),
		ManagerID:   managerID,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	logger.InfoContext(ctx, "Project created", "project_id", project.ID, "manager_id", managerID)
	return project, nil
}

func (s *ProjectServiceImpl) ListProjects(ctx context.Context, userID uuid.UUID) ([]*models.Project, error) {
	projects, err := s.projectRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func (s *ProjectServiceImpl) GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, utils.ErrNotFound(utils.MsgProjectNotFound)
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return project, nil
}

func (s *ProjectServiceImpl) GetProjectDetail(ctx context.Context, project *models.Project, userID uuid.UUID) ([]*models.Task, error) {
	if !project.IsMember(userID) {
		return nil, utils.ErrNotFound(utils.MsgInvalidAction)
	}

	tasks, err := s.taskRepo.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("list project tasks: %w", err)
	}
	return tasks, nil
}

func (s *ProjectServiceImpl) UpdateProject(ctx context.Context, project *models.Project, req *dto.ProjectRequest) error {
	project.ProjectName = req.ProjectName
	project.ClientName = req.ClientName
	project.Description = req.Description
	project.Slug = slug.Make(req.ProjectName)

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return fmt.Errorf("update project: %w", err)
	}

	logger.InfoContext(ctx, "Project updated", "project_id", project.ID)
	return nil
}

func (s *ProjectServiceImpl) DeleteProject(ctx context.Context, project *models.Project) error {
	if err := s.projectRepo.DeleteCascade(ctx, project.ID); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	publish(ctx, s.events, project.ID, ports.EventProjectDeleted, nil)
	logger.InfoContext(ctx, "Project deleted", "project_id", project.ID)
	return nil
}
