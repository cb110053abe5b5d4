package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"uptask-api/domain/dto"
	"uptask-api/domain/services"
	"uptask-api/interfaces/api/middleware"
	"uptask-api/pkg/utils"
)

type NoteHandler struct {
	noteService services.NoteService
}

func NewNoteHandler(noteService services.NoteService) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
	}
}

func (h *NoteHandler) CreateNote(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}
	task, err := middleware.GetTask(c)
	if err != nil {
		return utils.HandleError(c, err)
	}

	var req dto.NoteRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	if _, err := h.noteService.CreateNote(c.UserContext(), task, user.ID, &req); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.MessageResponse(c, "Nota Creada Correctamente")
}

func (h *NoteHandler) ListNotes(c *fiber.Ctx) error {
	task, err := middleware.GetTask(c)
	if err != nil {
		return utils.HandleError(c, err)
	}

	notes, err := h.noteService.ListNotes(c.UserContext(), task.ID)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, dto.NotesToNoteResponses(notes))
}

func (h *NoteHandler) DeleteNote(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}
	task, err := middleware.GetTask(c)
	if err != nil {
		return utils.HandleError(c, err)
	}

	noteID, err := uuid.Parse(c.Params("noteId"))
	if err != nil {
		return utils.BadRequestResponse(c, utils.MsgInvalidID)
	}

	if err := h.noteService.DeleteNote(c.UserContext(), task, noteID, user.ID); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.MessageResponse(c, "Nota Eliminada")
}
