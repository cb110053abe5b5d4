package di

import (
	"context"
	"time"

	"gorm.io/gorm"

	"uptask-api/application/serviceimpl"
	"uptask-api/domain/ports"
	"uptask-api/domain/repositories"
	"uptask-api/domain/services"
	"uptask-api/infrastructure/messaging"
	natspkg "uptask-api/infrastructure/nats"
	"uptask-api/infrastructure/postgres"
	redispkg "uptask-api/infrastructure/redis"
	"uptask-api/infrastructure/websocket"
	"uptask-api/interfaces/api/handlers"
	"uptask-api/pkg/config"
	"uptask-api/pkg/logger"
	"uptask-api/pkg/scheduler"
)

const (
	tokenPurgeJobID   = "token-purge"
	tokenPurgeTimeout = 30 * time.Second
)

type Container struct {
	// Configuration
	Config *config.Config

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redispkg.Client // one-time tokens (optional)
	NATSClient  *natspkg.Client  // mail queue + board events (optional)
	Scheduler   scheduler.Scheduler

	// Repositories
	UserRepository    repositories.UserRepository
	TokenRepository   repositories.TokenRepository
	ProjectRepository repositories.ProjectRepository
	TaskRepository    repositories.TaskRepository
	NoteRepository    repositories.NoteRepository

	// Ports
	Mailer ports.MailerPort
	Events ports.EventPublisherPort

	// Services
	AuthService    services.AuthService
	ProjectService services.ProjectService
	TaskService    services.TaskService
	NoteService    services.NoteService
	TeamService    services.TeamService

	// WebSocket & Broadcasting
	WSManager        *websocket.WebSocketManager
	NATSSubscriber   *natspkg.Subscriber
	BoardBroadcaster *websocket.BoardBroadcaster
}

func NewContainer() *Container {
	return &Container{}
}

// Initialize สร้างทุกอย่างสำหรับ serve
func (c *Container) Initialize() error {
	if err := c.initConfig(); err != nil {
		return err
	}

	if err := c.initLogger(); err != nil {
		return err
	}

	if err := c.initDatabase(); err != nil {
		return err
	}

	if err := postgres.Migrate(c.DB); err != nil {
		return err
	}
	logger.Info("Database migrated")

	c.initOptionalInfrastructure()
	c.initRepositories()
	c.initPorts()
	c.initServices()

	if err := c.initBoardBroadcaster(); err != nil {
		return err
	}

	return c.initScheduler()
}

// InitializeForMigrate ใช้กับคำสั่ง migrate (ต้องการแค่ config, logger และ database)
func (c *Container) InitializeForMigrate() error {
	if err := c.initConfig(); err != nil {
		return err
	}
	if err := c.initLogger(); err != nil {
		return err
	}
	return c.initDatabase()
}

func (c *Container) initConfig() error {
	if c.Config != nil {
		return nil
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

func (c *Container) initLogger() error {
	logConfig := logger.Config{
		Level:      c.Config.Log.Level,
		Format:     c.Config.Log.Format,
		Output:     c.Config.Log.Output,
		FilePath:   c.Config.Log.FilePath,
		MaxSize:    c.Config.Log.MaxSize,
		MaxBackups: c.Config.Log.MaxBackups,
		MaxAge:     c.Config.Log.MaxAge,
		Compress:   c.Config.Log.Compress,
	}

	if err := logger.Init(logConfig); err != nil {
		return err
	}

	logger.Info("Logger initialized",
		"level", c.Config.Log.Level,
		"format", c.Config.Log.Format,
		"output", c.Config.Log.Output,
	)
	return nil
}

func (c *Container) initDatabase() error {
	dbConfig := postgres.DatabaseConfig{
		Driver:     c.Config.Database.Driver,
		Host:       c.Config.Database.Host,
		Port:       c.Config.Database.Port,
		User:       c.Config.Database.User,
		Password:   c.Config.Database.Password,
		DBName:     c.Config.Database.DBName,
		SSLMode:    c.Config.Database.SSLMode,
		SQLitePath: c.Config.Database.SQLitePath,
		LogLevel:   c.Config.Log.Level,
	}
	db, err := postgres.NewDatabase(dbConfig)
	if err != nil {
		return err
	}
	c.DB = db
	logger.Info("Database connected", "driver", dbConfig.Driver, "db", c.Config.Database.DBName)
	return nil
}

// initOptionalInfrastructure Redis และ NATS ล่มได้ (graceful degradation)
func (c *Container) initOptionalInfrastructure() {
	if c.Config.Redis.URL != "" {
		redisClient, err := redispkg.NewClient(&c.Config.Redis)
		if err != nil {
			logger.Warn("Redis client initialization failed (tokens stored in database)", "error", err)
		} else {
			c.RedisClient = redisClient
		}
	}

	if c.Config.NATS.URL != "" {
		natsClient, err := natspkg.Connect(c.Config.NATS.URL)
		if err != nil {
			logger.Warn("NATS client initialization failed (mail logged, events broadcast locally)", "error", err)
		} else {
			c.NATSClient = natsClient
		}
	}

	c.WSManager = websocket.NewWebSocketManager()
}

func (c *Container) initRepositories() {
	c.UserRepository = postgres.NewUserRepository(c.DB)
	c.ProjectRepository = postgres.NewProjectRepository(c.DB)
	c.TaskRepository = postgres.NewTaskRepository(c.DB)
	c.NoteRepository = postgres.NewNoteRepository(c.DB)

	if c.RedisClient != nil {
		c.TokenRepository = redispkg.NewTokenRepository(c.RedisClient)
		logger.Info("Token store: redis")
	} else {
		c.TokenRepository = postgres.NewTokenRepository(c.DB)
		logger.Info("Token store: database")
	}
}

// initPorts สร้าง messaging adapters
func (c *Container) initPorts() {
	if c.NATSClient != nil {
		c.Mailer = messaging.NewNATSMailQueue(c.NATSClient.JetStream())
		c.Events = messaging.NewNATSEventPublisher(c.NATSClient.Conn())
		return
	}

	c.Mailer = messaging.NewLogMailer()
	c.Events = websocket.NewLocalEventPublisher(c.WSManager)
}

func (c *Container) initServices() {
	c.AuthService = serviceimpl.NewAuthService(
		c.UserRepository,
		c.TokenRepository,
		c.Mailer,
		c.Config.JWT.Secret,
		c.Config.JWT.ExpiresIn,
		c.Config.Token.TTL,
	)
	c.ProjectService = serviceimpl.NewProjectService(c.ProjectRepository, c.TaskRepository, c.Events)
	c.TaskService = serviceimpl.NewTaskService(c.TaskRepository, c.NoteRepository, c.Events)
	c.NoteService = serviceimpl.NewNoteService(c.NoteRepository, c.Events)
	c.TeamService = serviceimpl.NewTeamService(c.UserRepository, c.ProjectRepository, c.Events)
	logger.Info("Services initialized")
}

// initBoardBroadcaster NATS events.project.> → WebSocket rooms
func (c *Container) initBoardBroadcaster() error {
	if c.NATSClient == nil {
		return nil
	}

	c.NATSSubscriber = natspkg.NewSubscriber(c.NATSClient.Conn())
	c.BoardBroadcaster = websocket.NewBoardBroadcaster(c.NATSSubscriber, c.WSManager)
	return c.BoardBroadcaster.Start()
}

func (c *Container) initScheduler() error {
	if err := scheduler.ValidateCronExpression(c.Config.Token.PurgeCron); err != nil {
		return err
	}

	c.Scheduler = scheduler.New()
	err := c.Scheduler.Register(tokenPurgeJobID, c.Config.Token.PurgeCron, tokenPurgeTimeout, func(ctx context.Context) error {
		deleted, err := c.AuthService.PurgeExpiredTokens(ctx)
		if err != nil {
			return err
		}
		if deleted > 0 {
			logger.Info("Expired tokens purged", "deleted", deleted)
		}
		return nil
	})
	if err != nil {
		return err
	}

	c.Scheduler.Start()
	return nil
}

func (c *Container) Cleanup() error {
	logger.Info("Starting cleanup...")

	if c.Scheduler != nil && c.Scheduler.IsRunning() {
		c.Scheduler.Stop()
	}

	if c.BoardBroadcaster != nil {
		if err := c.BoardBroadcaster.Stop(); err != nil {
			logger.Warn("Failed to stop board broadcaster", "error", err)
		}
	}

	if c.NATSClient != nil {
		if err := c.NATSClient.Close(); err != nil {
			logger.Warn("Failed to close NATS connection", "error", err)
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.Warn("Failed to close Redis connection", "error", err)
		} else {
			logger.Info("Redis connection closed")
		}
	}

	if c.WSManager != nil {
		c.WSManager.Stop()
	}

	if c.DB != nil {
		if sqlDB, err := c.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Warn("Failed to close database connection", "error", err)
			} else {
				logger.Info("Database connection closed")
			}
		}
	}

	logger.Info("Cleanup completed")
	return nil
}

func (c *Container) GetConfig() *config.Config {
	return c.Config
}

func (c *Container) GetHandlerServices() *handlers.Services {
	checks := map[string]func() bool{
		"database": func() bool {
			sqlDB, err := c.DB.DB()
			return err == nil && sqlDB.Ping() == nil
		},
	}
	if c.RedisClient != nil {
		checks["redis"] = func() bool {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return c.RedisClient.Ping(ctx) == nil
		}
	}
	if c.NATSClient != nil {
		checks["nats"] = c.NATSClient.IsConnected
	}

	var jobs func() []scheduler.JobStatus
	if c.Scheduler != nil {
		jobs = c.Scheduler.Jobs
	}

	return &handlers.Services{
		AuthService:    c.AuthService,
		ProjectService: c.ProjectService,
		TaskService:    c.TaskService,
		NoteService:    c.NoteService,
		TeamService:    c.TeamService,
		WSManager:      c.WSManager,
		HealthChecks:   checks,
		Jobs:           jobs,
		Config:         c.Config,
	}
}
