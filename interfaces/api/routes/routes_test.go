package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uptask-api/application/serviceimpl"
	"uptask-api/domain/ports"
	"uptask-api/infrastructure/postgres"
	wsinfra "uptask-api/infrastructure/websocket"
	"uptask-api/interfaces/api/handlers"
	"uptask-api/interfaces/api/middleware"
	"uptask-api/interfaces/api/routes"
	"uptask-api/pkg/config"
	"uptask-api/pkg/scheduler"
)

const frontendURL = "http://localhost:5173"

type inboxMailer struct {
	mu     sync.Mutex
	tokens map[string]string
}

func (m *inboxMailer) SendConfirmationEmail(ctx context.Context, email ports.AuthEmail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[email.Email] = email.Token
	return nil
}

func (m *inboxMailer) SendPasswordResetToken(ctx context.Context, email ports.AuthEmail) error {
	return m.SendConfirmationEmail(ctx, email)
}

func (m *inboxMailer) last(email string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tokens[email]
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type testServer struct {
	t      *testing.T
	app    *fiber.App
	mailer *inboxMailer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	name := strings.NewReplacer("/", "_").Replace(t.Name())
	db, err := postgres.NewDatabase(postgres.DatabaseConfig{
		Driver:     "sqlite",
		SQLitePath: fmt.Sprintf("file:routes_%s?mode=memory&cache=shared", name),
		LogLevel:   "error",
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, postgres.Migrate(db))

	cfg := &config.Config{
		App:  config.AppConfig{Name: "UpTask API Test"},
		CORS: config.CORSConfig{FrontendURL: frontendURL},
	}

	manager := wsinfra.NewWebSocketManager()
	t.Cleanup(manager.Stop)
	events := wsinfra.NewLocalEventPublisher(manager)
	mailer := &inboxMailer{tokens: map[string]string{}}

	userRepo := postgres.NewUserRepository(db)
	projectRepo := postgres.NewProjectRepository(db)
	taskRepo := postgres.NewTaskRepository(db)
	noteRepo := postgres.NewNoteRepository(db)

	authService := serviceimpl.NewAuthService(userRepo, postgres.NewTokenRepository(db), mailer, "test-secret", time.Hour, 10*time.Minute)
	jobs := scheduler.New()
	require.NoError(t, jobs.Register("token-purge", "*/15 * * * *", time.Minute, func(ctx context.Context) error {
		_, err := authService.PurgeExpiredTokens(ctx)
		return err
	}))

	services := &handlers.Services{
		AuthService:    authService,
		ProjectService: serviceimpl.NewProjectService(projectRepo, taskRepo, events),
		TaskService:    serviceimpl.NewTaskService(taskRepo, noteRepo, events),
		NoteService:    serviceimpl.NewNoteService(noteRepo, events),
		TeamService:    serviceimpl.NewTeamService(userRepo, projectRepo, events),
		WSManager:      manager,
		HealthChecks:   map[string]func() bool{"database": func() bool { return sqlDB.Ping() == nil }},
		Jobs:           jobs.Jobs,
		Config:         cfg,
	}

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.OriginGuard(cfg.CORS))
	app.Use(middleware.CorsMiddleware(cfg.CORS))
	routes.SetupRoutes(app, handlers.NewHandlers(services))

	return &testServer{t: t, app: app, mailer: mailer}
}

func (s *testServer) do(method, path, token string, body any) (int, envelope) {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderOrigin, frontendURL)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(s.t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	if len(raw) > 0 {
		require.NoError(s.t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

// register crea, confirma y hace login; devuelve el JWT
func (s *testServer) register(email string) string {
	s.t.Helper()

	status, _ := s.do(http.MethodPost, "/api/auth/create-account", "", map[string]string{
		"name":                  "Usuario " + email,
		"email":                 email,
		"password":              "password123",
		"password_confirmation": "password123",
	})
	require.Equal(s.t, http.StatusOK, status)

	status, _ = s.do(http.MethodPost, "/api/auth/confirm-account", "", map[string]string{"token": s.mailer.last(email)})
	require.Equal(s.t, http.StatusOK, status)

	status, env := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": "password123",
	})
	require.Equal(s.t, http.StatusOK, status)

	var token string
	require.NoError(s.t, json.Unmarshal(env.Data, &token))
	return token
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Status       string            `json:"status"`
		Dependencies map[string]string `json:"dependencies"`
		Jobs         []struct {
			Name string `json:"name"`
			Cron string `json:"cron"`
			Runs int    `json:"runs"`
		} `json:"jobs"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "up", body.Dependencies["database"])
	require.Len(t, body.Jobs, 1)
	assert.Equal(t, "token-purge", body.Jobs[0].Name)
	assert.Equal(t, "*/15 * * * *", body.Jobs[0].Cron)
	assert.Zero(t, body.Jobs[0].Runs)
}

func TestOriginGuard(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.Header.Set(fiber.HeaderOrigin, "https://evil.example.com")
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// sin Origin y sin --api
	resp, err = s.app.Test(httptest.NewRequest(http.MethodPost, "/api/auth/login", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCreateAccount(t *testing.T) {
	s := newTestServer(t)
	body := map[string]string{
		"name":                  "Ana",
		"email":                 "ana@test.com",
		"password":              "password123",
		"password_confirmation": "password123",
	}

	status, _ := s.do(http.MethodPost, "/api/auth/create-account", "", body)
	assert.Equal(t, http.StatusOK, status)

	status, env := s.do(http.MethodPost, "/api/auth/create-account", "", body)
	assert.Equal(t, http.StatusConflict, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "El Usuario ya esta registrado", env.Error.Message)

	status, env = s.do(http.MethodPost, "/api/auth/create-account", "", map[string]string{
		"name":                  "Ana",
		"email":                 "otra@test.com",
		"password":              "corto",
		"password_confirmation": "corto",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "El password es muy corto, minimo 8 caracteres", env.Error.Message)
}

func TestCreateAccount_EmailAndPasswordRules(t *testing.T) {
	s := newTestServer(t)
	account := func(email, password string) (int, envelope) {
		return s.do(http.MethodPost, "/api/auth/create-account", "", map[string]string{
			"name":                  "Ana",
			"email":                 email,
			"password":              password,
			"password_confirmation": password,
		})
	}

	status, _ := account("Dup@Test.com", "password123")
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, s.mailer.last("dup@test.com"))

	status, env := account("dup@test.com", "password123")
	assert.Equal(t, http.StatusConflict, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "El Usuario ya esta registrado", env.Error.Message)

	status, env = account("largo@test.com", strings.Repeat("p", 80))
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Equal(t, "El password es muy largo, maximo 72 caracteres", env.Error.Message)
}

func TestAuthenticatedUser(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.do(http.MethodGet, "/api/auth/user", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	token := s.register("ana@test.com")
	status, env := s.do(http.MethodGet, "/api/auth/user", token, nil)
	require.Equal(t, http.StatusOK, status)

	var user struct {
		ID    string `json:"_id"`
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, "ana@test.com", user.Email)
	assert.NotEmpty(t, user.ID)
}

func TestProjectAccess(t *testing.T) {
	s := newTestServer(t)
	managerToken := s.register("manager@test.com")
	otherToken := s.register("other@test.com")

	status, _ := s.do(http.MethodGet, "/api/projects", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = s.do(http.MethodPost, "/api/projects", managerToken, map[string]string{
		"projectName": "Tienda",
		"clientName":  "Acme",
		"description": "E-commerce",
	})
	require.Equal(t, http.StatusOK, status)

	status, env := s.do(http.MethodGet, "/api/projects", managerToken, nil)
	require.Equal(t, http.StatusOK, status)
	var projects []struct {
		ID string `json:"_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &projects))
	require.Len(t, projects, 1)
	projectPath := "/api/projects/" + projects[0].ID

	status, env = s.do(http.MethodGet, projectPath, otherToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "Acción no válida", env.Error.Message)

	status, _ = s.do(http.MethodDelete, projectPath, otherToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(http.MethodGet, "/api/projects/not-a-uuid", managerToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(http.MethodPost, projectPath+"/tasks", managerToken, map[string]string{
		"name":        "Login",
		"description": "Pantalla de login",
	})
	require.Equal(t, http.StatusOK, status)

	status, env = s.do(http.MethodGet, projectPath, managerToken, nil)
	require.Equal(t, http.StatusOK, status)
	var detail struct {
		Tasks []struct {
			ID     string `json:"_id"`
			Status string `json:"status"`
		} `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	require.Len(t, detail.Tasks, 1)
	assert.Equal(t, "pending", detail.Tasks[0].Status)

	taskPath := projectPath + "/tasks/" + detail.Tasks[0].ID
	status, _ = s.do(http.MethodPost, taskPath+"/status", managerToken, map[string]string{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(http.MethodPost, taskPath+"/status", managerToken, map[string]string{"status": "completed"})
	assert.Equal(t, http.StatusOK, status)

	status, _ = s.do(http.MethodDelete, projectPath, managerToken, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = s.do(http.MethodGet, projectPath, managerToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

// createProject crea un proyecto y devuelve su ruta /api/projects/<id>
func (s *testServer) createProject(token, name string) string {
	s.t.Helper()

	status, _ := s.do(http.MethodPost, "/api/projects", token, map[string]string{
		"projectName": name,
		"clientName":  "Acme",
		"description": "Proyecto " + name,
	})
	require.Equal(s.t, http.StatusOK, status)

	status, env := s.do(http.MethodGet, "/api/projects", token, nil)
	require.Equal(s.t, http.StatusOK, status)
	var projects []struct {
		ID          string `json:"_id"`
		ProjectName string `json:"projectName"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &projects))
	for _, p := range projects {
		if p.ProjectName == name {
			return "/api/projects/" + p.ID
		}
	}
	s.t.Fatalf("project %q not listed", name)
	return ""
}

// createTask crea una tarea y devuelve su ruta dentro del proyecto
func (s *testServer) createTask(token, projectPath, name string) string {
	s.t.Helper()

	status, _ := s.do(http.MethodPost, projectPath+"/tasks", token, map[string]string{
		"name":        name,
		"description": "Descripción " + name,
	})
	require.Equal(s.t, http.StatusOK, status)

	status, env := s.do(http.MethodGet, projectPath+"/tasks", token, nil)
	require.Equal(s.t, http.StatusOK, status)
	var tasks []struct {
		ID   string `json:"_id"`
		Name string `json:"name"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &tasks))
	for _, task := range tasks {
		if task.Name == name {
			return projectPath + "/tasks/" + task.ID
		}
	}
	s.t.Fatalf("task %q not listed", name)
	return ""
}

func requireMessage(t *testing.T, env envelope, message string) {
	t.Helper()
	require.NotNil(t, env.Error)
	assert.Equal(t, message, env.Error.Message)
}

func TestTeamAndTaskChain(t *testing.T) {
	s := newTestServer(t)
	managerToken := s.register("manager@test.com")
	memberToken := s.register("member@test.com")

	tienda := s.createProject(managerToken, "Tienda")
	blog := s.createProject(managerToken, "Blog")
	login := s.createTask(managerToken, tienda, "Login")
	header := s.createTask(managerToken, blog, "Header")

	// tarea de otro proyecto bajo /projects/tienda
	foreign := tienda + header[strings.Index(header, "/tasks/"):]
	status, env := s.do(http.MethodGet, foreign, managerToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	requireMessage(t, env, "Acción no válida")

	// buscar miembro sin importar mayúsculas
	status, env = s.do(http.MethodPost, tienda+"/team/find", managerToken, map[string]string{"email": "MEMBER@Test.com"})
	require.Equal(t, http.StatusOK, status)
	var member struct {
		ID    string `json:"_id"`
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &member))
	assert.Equal(t, "member@test.com", member.Email)

	status, _ = s.do(http.MethodGet, tienda, memberToken, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.do(http.MethodPost, tienda+"/team", managerToken, map[string]string{"id": member.ID})
	require.Equal(t, http.StatusOK, status)
	status, env = s.do(http.MethodPost, tienda+"/team", managerToken, map[string]string{"id": member.ID})
	assert.Equal(t, http.StatusConflict, status)
	requireMessage(t, env, "El usuario ya existe en el proyecto")

	status, _ = s.do(http.MethodGet, tienda, memberToken, nil)
	assert.Equal(t, http.StatusOK, status)

	// un miembro lee y cambia estado, pero no edita ni borra tareas
	status, _ = s.do(http.MethodGet, login, memberToken, nil)
	assert.Equal(t, http.StatusOK, status)
	status, env = s.do(http.MethodPut, login, memberToken, map[string]string{"name": "Login", "description": "Otra"})
	assert.Equal(t, http.StatusBadRequest, status)
	requireMessage(t, env, "Acción no válida")
	status, _ = s.do(http.MethodDelete, login, memberToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	status, _ = s.do(http.MethodPost, login+"/status", memberToken, map[string]string{"status": "inProgress"})
	assert.Equal(t, http.StatusOK, status)

	// notas: solo el autor borra
	status, _ = s.do(http.MethodPost, login+"/notes", memberToken, map[string]string{"content": "Revisar validaciones"})
	require.Equal(t, http.StatusOK, status)
	status, env = s.do(http.MethodGet, login+"/notes", managerToken, nil)
	require.Equal(t, http.StatusOK, status)
	var notes []struct {
		ID string `json:"_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &notes))
	require.Len(t, notes, 1)
	notePath := login + "/notes/" + notes[0].ID

	status, env = s.do(http.MethodDelete, notePath, managerToken, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	requireMessage(t, env, "Acción no válida")

	status, _ = s.do(http.MethodDelete, notePath, memberToken, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = s.do(http.MethodDelete, notePath, memberToken, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.do(http.MethodDelete, tienda+"/team/"+member.ID, managerToken, nil)
	require.Equal(t, http.StatusOK, status)
	status, env = s.do(http.MethodDelete, tienda+"/team/"+member.ID, managerToken, nil)
	assert.Equal(t, http.StatusConflict, status)
	requireMessage(t, env, "El usuario no existe en el proyecto")

	status, _ = s.do(http.MethodGet, tienda, memberToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
}
