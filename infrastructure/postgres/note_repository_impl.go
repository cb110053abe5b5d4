package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"uptask-api/domain/models"
	"uptask-api/domain/repositories"
)

type NoteRepositoryImpl struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) repositories.NoteRepository {
	return &NoteRepositoryImpl{db: db}
}

func (r *NoteRepositoryImpl) CreateForTask(ctx context.Context, note *models.Note) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := lockForUpdate(tx).Where("id = ?", note.TaskID).First(&task).Error; err != nil {
			return translate(err)
		}

		if err := tx.Omit("Author").Create(note).Error; err != nil {
			return err
		}

		task.Notes = append(task.Notes, note.ID)
		return tx.Model(&task).Select("notes", "updated_at").Updates(&task).Error
	})
}

func (r *NoteRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Note, error) {
	var note models.Note
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&note).Error
	if err != nil {
		return nil, translate(err)
	}
	return &note, nil
}

func (r *NoteRepositoryImpl) ListByTask(ctx context.Context, taskID uuid.UUID) ([]*models.Note, error) {
	var notes []*models.Note
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&notes).Error
	return notes, err
}

func (r *NoteRepositoryImpl) DeleteFromTask(ctx context.Context, note *models.Note) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := lockForUpdate(tx).Where("id = ?", note.TaskID).First(&task).Error; err != nil {
			return translate(err)
		}

		task.Notes = task.Notes.Without(note.ID)
		if err := tx.Model(&task).Select("notes", "updated_at").Updates(&task).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", note.ID).Delete(&models.Note{}).Error
	})
}
