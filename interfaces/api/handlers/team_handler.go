package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"uptask-api/domain/dto"
	"uptask-api/domain/services"
	"uptask-api/interfaces/api/middleware"
	"uptask-api/pkg/utils"
)

type TeamHandler struct {
	teamService services.TeamService
}

func NewTeamHandler(teamService services.TeamService) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

func (h *TeamHandler) FindMemberByEmail(c *fiber.Ctx) error {
	var req dto.FindMemberRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	user, err := h.teamService.FindMemberByEmail(c.UserContext(), req.Email)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, dto.UserToUserResponse(user))
}

func (h *TeamHandler) ListMembers(c *fiber.Ctx) error {
	project, err := middleware.GetProject(c)
	if err != nil {
		return utils.HandleError(c, err)
	}

	members, err := h.teamService.ListMembers(c.UserContext(), project)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, dto.UsersToUserResponses(members))
}

func (h *TeamHandler) AddMember(c *fiber.Ctx) error {
	project, err := middleware.GetProject(c)
	if err != nil {
		return utils.HandleError(c, err)
	}

	var req dto.TeamMemberRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}
	userID, err := uuid.Parse(req.ID)
	if err != nil {
		return utils.BadRequestResponse(c, "ID No válido")
	}

	if err := h.teamService.AddMember(c.UserContext(), project, userID); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.MessageResponse(c, "Usuario agregado correctamente")
}

func (h *TeamHandler) RemoveMember(c *fiber.Ctx) error {
	project, err := middleware.GetProject(c)
	if err != nil {
		return utils.HandleError(c, err)
	}

	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return utils.BadRequestResponse(c, "ID No válido")
	}

	if err := h.teamService.RemoveMember(c.UserContext(), project, userID); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.MessageResponse(c, "Usuario eliminado correctamente")
}
