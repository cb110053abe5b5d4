package handlers

import (
	"github.com/gofiber/fiber/v2"

	"uptask-api/domain/dto"
	"uptask-api/domain/models"
	"uptask-api/domain/services"
	"uptask-api/interfaces/api/middleware"
	"uptask-api/pkg/utils"
)

type TaskHandler struct {
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	project, err := middleware.GetProject(c)
	if err != nil {
		return utils.HandleError(c, err)
	}

	var req dto.TaskRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	if _, err := h.taskService.CreateTask(c.UserContext(), project, &req); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.MessageResponse(c, "Tarea creada correctamente")
}

func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	project, err := middleware.GetProject(c)
	if err != nil {
		return utils.HandleError(c, err)
	}

	tasks, err := h.taskService.ListTasks(c.UserContext(), project.ID)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, dto.TasksToTaskResponses(tasks))
}

func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	task, err := middleware.GetTask(c)
	if err != nil {
		return utils.HandleError(c, err)
	}

	detail, notes, err := h.taskService.GetTaskDetail(c.UserContext(), task.ID)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, dto.TaskToTaskDetailResponse(detail, notes))
}

func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	task, err := middleware.GetTask(c)
	if err != nil {
		return utils.HandleError(c, err)
	}

	var req dto.TaskRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	if err := h.taskService.UpdateTask(c.UserContext(), task, &req); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.MessageResponse(c, "Tarea Actualizada Correctamente")
}

func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	task, err := middleware.GetTask(c)
	if err != nil {
		return utils.HandleError(c, err)
	}

	if err := h.taskService.DeleteTask(c.UserContext(), task); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.MessageResponse(c, "Tarea Eliminada Correctamente")
}

func (h *TaskHandler) UpdateStatus(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}
	task, err := middleware.GetTask(c)
	if err != nil {
		return utils.HandleError(c, err)
	}

	var req dto.TaskStatusRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	if err := h.taskService.UpdateStatus(c.UserContext(), task, user.ID, models.TaskStatus(req.Status)); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.MessageResponse(c, "Tarea Actualizada")
}
