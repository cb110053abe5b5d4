package routes

import (
	"github.com/gofiber/fiber/v2"

	"uptask-api/interfaces/api/handlers"
	"uptask-api/interfaces/api/middleware"
)

func SetupProjectRoutes(api fiber.Router, h *handlers.Handlers) {
	projects := api.Group("/projects", middleware.Authenticate(h.Services.AuthService))

	projectExists := middleware.ProjectExists(h.Services.ProjectService)
	taskExists := middleware.TaskExists(h.Services.TaskService)
	managerOnly := middleware.HasAuthorization()
	taskInProject := middleware.TaskBelongsToProject()

	projects.Post("/", h.ProjectHandler.CreateProject)
	projects.Get("/", h.ProjectHandler.ListProjects)
	projects.Get("/:projectId", projectExists, h.ProjectHandler.GetProject)
	projects.Put("/:projectId", projectExists, managerOnly, h.ProjectHandler.UpdateProject)
	projects.Delete("/:projectId", projectExists, managerOnly, h.ProjectHandler.DeleteProject)

	// Tasks
	projects.Post("/:projectId/tasks", projectExists, managerOnly, h.TaskHandler.CreateTask)
	projects.Get("/:projectId/tasks", projectExists, h.TaskHandler.ListTasks)

	task := projects.Group("/:projectId/tasks/:taskId", projectExists, taskExists, taskInProject)
	task.Get("/", h.TaskHandler.GetTask)
	task.Put("/", managerOnly, h.TaskHandler.UpdateTask)
	task.Delete("/", managerOnly, h.TaskHandler.DeleteTask)
	task.Post("/status", h.TaskHandler.UpdateStatus)

	// Notes
	task.Post("/notes", h.NoteHandler.CreateNote)
	task.Get("/notes", h.NoteHandler.ListNotes)
	task.Delete("/notes/:noteId", h.NoteHandler.DeleteNote)

	// Team
	projects.Post("/:projectId/team/find", projectExists, h.TeamHandler.FindMemberByEmail)
	projects.Get("/:projectId/team", projectExists, h.TeamHandler.ListMembers)
	projects.Post("/:projectId/team", projectExists, h.TeamHandler.AddMember)
	projects.Delete("/:projectId/team/:userId", projectExists, h.TeamHandler.RemoveMember)
}
