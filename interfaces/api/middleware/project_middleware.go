package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"uptask-api/domain/models"
	"uptask-api/domain/services"
	"uptask-api/pkg/logger"
	"uptask-api/pkg/utils"
)

// ProjectExists โหลด project จาก :projectId แล้วใส่ไว้ใน c.Locals("project")
func ProjectExists(projectService services.ProjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		projectID, err := uuid.Parse(c.Params("projectId"))
		if err != nil {
			return utils.BadRequestResponse(c, utils.MsgInvalidID)
		}

		project, err := projectService.GetProject(c.UserContext(), projectID)
		if err != nil {
			return utils.HandleError(c, err)
		}

		c.Locals("project", project)
		return c.Next()
	}
}

// HasAuthorization อนุญาตเฉพาะ manager ของ project
func HasAuthorization() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := utils.GetUserFromContext(c)
		if err != nil {
			return utils.UnauthorizedResponse(c, "")
		}
		project, err := GetProject(c)
		if err != nil {
			return utils.HandleError(c, err)
		}

		if !project.IsManager(user.ID) {
			logger.WarnContext(c.UserContext(), "Manager-only action rejected",
				"project_id", project.ID,
				"manager_id", project.ManagerID,
			)
			return utils.BadRequestResponse(c, utils.MsgInvalidAction)
		}
		return c.Next()
	}
}

// GetProject ดึง project ที่ ProjectExists ใส่ไว้
func GetProject(c *fiber.Ctx) (*models.Project, error) {
	project, ok := c.Locals("project").(*models.Project)
	if !ok || project == nil {
		return nil, errors.New("project not resolved")
	}
	return project, nil
}
