package handlers

import (
	"github.com/gofiber/fiber/v2"

	"uptask-api/domain/dto"
	"uptask-api/domain/services"
	wsinfra "uptask-api/infrastructure/websocket"
	"uptask-api/pkg/config"
	"uptask-api/pkg/logger"
	"uptask-api/pkg/scheduler"
	"uptask-api/pkg/utils"
)

// Services contains all the services needed for handlers
type Services struct {
	AuthService    services.AuthService
	ProjectService services.ProjectService
	TaskService    services.TaskService
	NoteService    services.NoteService
	TeamService    services.TeamService
	WSManager      *wsinfra.WebSocketManager
	HealthChecks   map[string]func() bool // ชื่อ dependency → ยังเชื่อมต่ออยู่ไหม
	Jobs           func() []scheduler.JobStatus
	Config         *config.Config
}

// Handlers contains all HTTP handlers
type Handlers struct {
	Services       *Services
	AuthHandler    *AuthHandler
	ProjectHandler *ProjectHandler
	TaskHandler    *TaskHandler
	NoteHandler    *NoteHandler
	TeamHandler    *TeamHandler
	HealthHandler  *HealthHandler
}

// NewHandlers creates a new instance of Handlers with all dependencies
func NewHandlers(services *Services) *Handlers {
	return &Handlers{
		Services:       services,
		AuthHandler:    NewAuthHandler(services.AuthService),
		ProjectHandler: NewProjectHandler(services.ProjectService),
		TaskHandler:    NewTaskHandler(services.TaskService),
		NoteHandler:    NewNoteHandler(services.NoteService),
		TeamHandler:    NewTeamHandler(services.TeamService),
		HealthHandler:  NewHealthHandler(services.Config.App.Name, services.HealthChecks, services.Jobs),
	}
}

// parseAndValidate อ่าน body แล้วตรวจ validate tags
// คืน false เมื่อ response ถูกเขียนไปแล้ว
func parseAndValidate(c *fiber.Ctx, req any) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		logger.WarnContext(c.UserContext(), "Invalid request body", "error", err)
		return false, utils.BadRequestResponse(c, utils.MsgInvalidBody)
	}
	if n, ok := req.(dto.Normalizer); ok {
		n.Normalize()
	}

	if err := utils.ValidateStruct(req); err != nil {
		fieldErrors := utils.GetValidationErrors(req, err)
		logger.WarnContext(c.UserContext(), "Validation failed", "errors", fieldErrors)
		return false, utils.ValidationErrorResponse(c, fieldErrors)
	}
	return true, nil
}
