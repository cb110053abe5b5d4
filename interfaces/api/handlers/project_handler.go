package handlers

import (
	"github.com/gofiber/fiber/v2"

	"uptask-api/domain/dto"
	"uptask-api/domain/services"
	"uptask-api/interfaces/api/middleware"
	"uptask-api/pkg/utils"
)

type ProjectHandler struct {
	projectService services.ProjectService
}

func NewProjectHandler(projectService services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	var req dto.ProjectRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	if _, err := h.projectService.CreateProject(c.UserContext(), user.ID, &req); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.MessageResponse(c, "Proyecto Creado Correctamente")
}

func (h *ProjectHandler) ListProjects(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	projects, err := h.projectService.ListProjects(c.UserContext(), user.ID)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, dto.ProjectsToProjectResponses(projects))
}

func (h *ProjectHandler) GetProject(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}
	project, err := middleware.GetProject(c)
	if err != nil {
		return utils.HandleError(c, err)
	}

	tasks, err := h.projectService.GetProjectDetail(c.UserContext(), project, user.ID)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, dto.ProjectToProjectDetailResponse(project, tasks))
}

func (h *ProjectHandler) UpdateProject(c *fiber.Ctx) error {
	project, err := middleware.GetProject(c)
	if err != nil {
		return utils.HandleError(c, err)
	}

	var req dto.ProjectRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	if err := h.projectService.UpdateProject(c.UserContext(), project, &req); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.MessageResponse(c, "Proyecto Actualizado")
}

func (h *ProjectHandler) DeleteProject(c *fiber.Ctx) error {
	project, err := middleware.GetProject(c)
	if err != nil {
		return utils.HandleError(c, err)
	}

	if err := h.projectService.DeleteProject(c.UserContext(), project); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.MessageResponse(c, "Proyecto Eliminado")
}
