package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"uptask-api/domain/models"
	"uptask-api/domain/repositories"
)

type ProjectRepositoryImpl struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) repositories.ProjectRepository {
	return &ProjectRepositoryImpl{db: db}
}

func (r *ProjectRepositoryImpl) Create(ctx context.Context, project *models.Project) error {
	if project.Tasks == nil {
		project.Tasks = models.UUIDList{}
	}
	if project.Team == nil {
		project.Team = models.UUIDList{}
	}
	return r.db.WithContext(ctx).Omit("Manager").Create(project).Error
}

func (r *ProjectRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error
	if err != nil {
		return nil, translate(err)
	}
	return &project, nil
}

func (r *ProjectRepositoryImpl) ListForUser(ctx context.Context, userID uuid.UUID) ([]*models.Project, error) {
	var projects []*models.Project
	// team เก็บเป็น JSON array ของ uuid string จึงค้นด้วย LIKE ได้
	err := r.db.WithContext(ctx).
		Where("manager_id = ? OR team LIKE ?", userID, "%"+userID.String()+"%").
		Order("created_at ASC").
		Find(&projects).Error
	return projects, err
}

func (r *ProjectRepositoryImpl) Update(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).
		Model(project).
		Select("project_name", "client_name", "description", "slug", "updated_at").
		Updates(project).Error
}

func (r *ProjectRepositoryImpl) ModifyTeam(
	ctx context.Context,
	projectID uuid.UUID,
	modify func(team models.UUIDList) (models.UUIDList, error),
) (models.UUIDList, error) {
	var team models.UUIDList
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := lockForUpdate(tx).Where("id = ?", projectID).First(&project).Error; err != nil {
			return translate(err)
		}

		next, err := modify(project.Team)
		if err != nil {
			return err
		}
		if next == nil {
			next = models.UUIDList{}
		}

		project.Team = next
		if err := tx.Model(&project).Select("team", "updated_at").Updates(&project).Error; err != nil {
			return err
		}
		team = next
		return nil
	})
	return team, err
}

func (r *ProjectRepositoryImpl) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taskIDs []uuid.UUID
		if err := tx.Model(&models.Task{}).Where("project_id = ?", id).Pluck("id", &taskIDs).Error; err != nil {
			return err
		}

		if len(taskIDs) > 0 {
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.Note{}).Error; err != nil {
				return err
			}
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.TaskStatusChange{}).Error; err != nil {
				return err
			}
			if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
				return err
			}
		}

		return tx.Where("id = ?", id).Delete(&models.Project{}).Error
	})
}
