package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"uptask-api/domain/models"
	"uptask-api/domain/services"
	"uptask-api/pkg/utils"
)

// TaskExists โหลด task จาก :taskId แล้วใส่ไว้ใน c.Locals("task")
func TaskExists(taskService services.TaskService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		taskID, err := uuid.Parse(c.Params("taskId"))
		if err != nil {
			return utils.BadRequestResponse(c, utils.MsgInvalidID)
		}

		task, err := taskService.GetTask(c.UserContext(), taskID)
		if err != nil {
			return utils.HandleError(c, err)
		}

		c.Locals("task", task)
		return c.Next()
	}
}

// TaskBelongsToProject task ต้องอยู่ใน project ของ route
func TaskBelongsToProject() fiber.Handler {
	return func(c *fiber.Ctx) error {
		project, err := GetProject(c)
		if err != nil {
			return utils.HandleError(c, err)
		}
		task, err := GetTask(c)
		if err != nil {
			return utils.HandleError(c, err)
		}

		if task.ProjectID != project.ID {
			return utils.BadRequestResponse(c, utils.MsgInvalidAction)
		}
		return c.Next()
	}
}

// GetTask ดึง task ที่ TaskExists ใส่ไว้
func GetTask(c *fiber.Ctx) (*models.Task, error) {
	task, ok := c.Locals("task").(*models.Task)
	if !ok || task == nil {
		return nil, errors.New("task not resolved")
	}
	return task, nil
}
