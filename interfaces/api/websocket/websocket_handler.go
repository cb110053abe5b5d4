package websocket

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"uptask-api/domain/models"
	"uptask-api/domain/services"
	wsinfra "uptask-api/infrastructure/websocket"
	"uptask-api/pkg/logger"
	"uptask-api/pkg/utils"
)

// WebSocketHandler board feed ของ project: /ws/projects/:projectId?token=<jwt>
type WebSocketHandler struct {
	authService    services.AuthService
	projectService services.ProjectService
	manager        *wsinfra.WebSocketManager
}

func NewWebSocketHandler(
	authService services.AuthService,
	projectService services.ProjectService,
	manager *wsinfra.WebSocketManager,
) *WebSocketHandler {
	return &WebSocketHandler{
		authService:    authService,
		projectService: projectService,
		manager:        manager,
	}
}

// WebSocketUpgrade ตรวจ token และสิทธิ์ใน project ก่อน upgrade
// browser ส่ง Authorization header ตอน upgrade ไม่ได้ จึงรับ token ทาง query
func (h *WebSocketHandler) WebSocketUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	token := c.Query("token")
	if token == "" {
		return utils.UnauthorizedResponse(c, "")
	}

	user, err := h.authService.Authenticate(c.UserContext(), token)
	if err != nil {
		return utils.HandleError(c, err)
	}

	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return utils.BadRequestResponse(c, utils.MsgInvalidID)
	}
	project, err := h.projectService.GetProject(c.UserContext(), projectID)
	if err != nil {
		return utils.HandleError(c, err)
	}

	if !project.IsMember(user.ID) {
		return utils.NotFoundResponse(c, utils.MsgInvalidAction)
	}

	c.Locals("user_id", user.ID)
	c.Locals("project", project)
	return c.Next()
}

func (h *WebSocketHandler) HandleWebSocket(c *websocket.Conn) {
	userID, _ := c.Locals("user_id").(uuid.UUID)
	project, ok := c.Locals("project").(*models.Project)
	if !ok {
		_ = c.Close()
		return
	}

	room := wsinfra.ProjectRoom(project.ID)
	h.manager.RegisterClient(c, userID, room)
	defer h.manager.UnregisterClient(c)

	logger.Debug("Board feed connected", "project_id", project.ID, "user_id", userID)

	for {
		_, message, err := c.ReadMessage()
		if err != nil {
			break
		}
		h.manager.HandleClientMessage(c, message)
	}
}
