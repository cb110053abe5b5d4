package serviceimpl

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"uptask-api/domain/dto"
	"uptask-api/domain/models"
	"uptask-api/domain/ports"
	"uptask-api/domain/repositories"
	"uptask-api/domain/services"
	"uptask-api/pkg/logger"
	"uptask-api/pkg/utils"
)

type TaskServiceImpl struct {
	taskRepo repositories.TaskRepository
	noteRepo repositories.NoteRepository
	events   ports.EventPublisherPort
}

func NewTaskService(
	taskRepo repositories.TaskRepository,
	noteRepo repositories.NoteRepository,
	events ports.EventPublisherPort,
) services.TaskService {
	return &TaskServiceImpl{
		taskRepo: taskRepo,
		noteRepo: noteRepo,
		events:   events,
	}
}

func (s *TaskServiceImpl) CreateTask(ctx context.Context, project *models.Project, req *dto.TaskRequest) (*models.Task, error) {
	task := &models.Task{
		Name:        req.Name,
		Description: req.Description,
		Status:      models.TaskStatusPending,
		ProjectID:   project.ID,
	}

	if err := s.taskRepo.CreateInProject(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	project.Tasks = append(project.Tasks, task.ID)

	publish(ctx, s.events, project.ID, ports.EventTaskCreated, dto.TaskToTaskResponse(task))
	logger.InfoContext(ctx, "Task created", "task_id", task.ID, "project_id", project.ID)
	return task, nil
}

func (s *TaskServiceImpl) ListTasks(ctx context.Context, projectID uuid.UUID) ([]*models.Task, error) {
	tasks, err := s.taskRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskServiceImpl) GetTask(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, utils.ErrNotFound(utils.MsgTaskNotFound)
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}

func (s *TaskServiceImpl) GetTaskDetail(ctx context.Context, id uuid.UUID) (*models.Task, []*models.Note, error) {
	task, err := s.taskRepo.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, utils.ErrNotFound(utils.MsgTaskNotFound)
		}
		return nil, nil, fmt.Errorf("get task detail: %w", err)
	}

	notes, err := s.noteRepo.ListByTask(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("list task notes: %w", err)
	}
	return task, notes, nil
}

func (s *TaskServiceImpl) UpdateTask(ctx context.Context, task *models.Task, req *dto.TaskRequest) error {
	task.Name = req.Name
	task.Description = req.Description

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return fmt.Errorf("update task: %w", err)
	}

	publish(ctx, s.events, task.ProjectID, ports.EventTaskUpdated, dto.TaskToTaskResponse(task))
	return nil
}

func (s *TaskServiceImpl) DeleteTask(ctx context.Context, task *models.Task) error {
	if err := s.taskRepo.DeleteFromProject(ctx, task); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	publish(ctx, s.events, task.ProjectID, ports.EventTaskDeleted, map[string]uuid.UUID{"_id": task.ID})
	logger.InfoContext(ctx, "Task deleted", "task_id", task.ID, "project_id", task.ProjectID)
	return nil
}

// UpdateStatus ไม่มีตารางการเปลี่ยนสถานะ เปลี่ยนจากสถานะใดไปสถานะใดก็ได้
func (s *TaskServiceImpl) UpdateStatus(ctx context.Context, task *models.Task, userID uuid.UUID, status models.TaskStatus) error {
	if !status.IsValid() {
		return utils.ErrBadRequest("El estado es obligatorio")
	}

	task.Status = status
	change := &models.TaskStatusChange{
		TaskID: task.ID,
		UserID: userID,
		Status: status,
	}

	if err := s.taskRepo.UpdateStatus(ctx, task, change); err != nil {
		return fmt.Errorf("update task status: %w", err)
	}

	publish(ctx, s.events, task.ProjectID, ports.EventTaskStatus, map[string]any{
		"_id":    task.ID,
		"status": task.Status,
		"user":   userID,
	})
	return nil
}
