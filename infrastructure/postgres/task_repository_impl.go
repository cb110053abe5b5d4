package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"uptask-api/domain/models"
	"uptask-api/domain/repositories"
)

type TaskRepositoryImpl struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) repositories.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) CreateInProject(ctx context.Context, task *models.Task) error {
	if task.Notes == nil {
		task.Notes = models.UUIDList{}
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := lockForUpdate(tx).Where("id = ?", task.ProjectID).First(&project).Error; err != nil {
			return translate(err)
		}

		if err := tx.Omit("CompletedBy").Create(task).Error; err != nil {
			return err
		}

		project.Tasks = append(project.Tasks, task.ID)
		return tx.Model(&project).Select("tasks", "updated_at").Updates(&project).Error
	})
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error
	if err != nil {
		return nil, translate(err)
	}
	return &task, nil
}

func (r *TaskRepositoryImpl) GetDetail(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).
		Preload("CompletedBy", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("CompletedBy.User").
		Where("id = ?", id).
		First(&task).Error
	if err != nil {
		return nil, translate(err)
	}
	return &task, nil
}

func (r *TaskRepositoryImpl) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Task, error) {
	var tasks []*models.Task
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepositoryImpl) Update(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).
		Model(task).
		Select("name", "description", "updated_at").
		Updates(task).Error
}

func (r *TaskRepositoryImpl) UpdateStatus(ctx context.Context, task *models.Task, change *models.TaskStatusChange) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(task).Select("status", "updated_at").Updates(task).Error; err != nil {
			return err
		}
		return tx.Omit("User").Create(change).Error
	})
}

func (r *TaskRepositoryImpl) DeleteFromProject(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := lockForUpdate(tx).Where("id = ?", task.ProjectID).First(&project).Error; err != nil {
			return translate(err)
		}

		project.Tasks = project.Tasks.Without(task.ID)
		if err := tx.Model(&project).Select("tasks", "updated_at").Updates(&project).Error; err != nil {
			return err
		}

		if err := tx.Where("task_id = ?", task.ID).Delete(&models.Note{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", task.ID).Delete(&models.TaskStatusChange{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", task.ID).Delete(&models.Task{}).Error
	})
}
