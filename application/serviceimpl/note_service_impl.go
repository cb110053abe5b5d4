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

type NoteServiceImpl struct {
	noteRepo repositories.NoteRepository
	events   ports.EventPublisherPort
}

func NewNoteService(noteRepo repositories.NoteRepository, events ports.EventPublisherPort) services.NoteService {
	return &NoteServiceImpl{
		noteRepo: noteRepo,
		events:   events,
	}
}

func (s *NoteServiceImpl) CreateNote(ctx context.Context, task *models.Task, userID uuid.UUID, req *dto.NoteRequest) (*models.Note, error) {
	note := &models.Note{
		Content:   req.Content,
		CreatedBy: userID,
		TaskID:    task.ID,
	}

	if err := s.noteRepo.CreateForTask(ctx, note); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	task.Notes = append(task.Notes, note.ID)

	publish(ctx, s.events, task.ProjectID, ports.EventNoteCreated, dto.NoteToNoteResponse(note))
	return note, nil
}

func (s *NoteServiceImpl) ListNotes(ctx context.Context, taskID uuid.UUID) ([]*models.Note, error) {
	notes, err := s.noteRepo.ListByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

func (s *NoteServiceImpl) DeleteNote(ctx context.Context, task *models.Task, noteID, userID uuid.UUID) error {
	note, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return utils.ErrNotFound(utils.MsgNoteNotFound)
		}
		return fmt.Errorf("get note: %w", err)
	}

	// note ของ task อื่นถือว่าไม่พบ
	if note.TaskID != task.ID {
		return utils.ErrNotFound(utils.MsgNoteNotFound)
	}

	if note.CreatedBy != userID {
		logger.WarnContext(ctx, "Note delete rejected - not the author", "note_id", note.ID, "author_id", note.CreatedBy)
		return utils.ErrUnauthorized(utils.MsgInvalidAction)
	}

	if err := s.noteRepo.DeleteFromTask(ctx, note); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	task.Notes = task.Notes.Without(note.ID)

	publish(ctx, s.events, task.ProjectID, ports.EventNoteDeleted, map[string]uuid.UUID{
		"_id":  note.ID,
		"task": task.ID,
	})
	return nil
}
