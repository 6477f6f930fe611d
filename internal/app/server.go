package app

import (
	"context"
	"fmt"

	"workhub-service/internal/config"
	"workhub-service/internal/db"
	authHandler "workhub-service/internal/handlers/auth"
	jobHandler "workhub-service/internal/handlers/job"
	reportHandler "workhub-service/internal/handlers/report"
	taskHandler "workhub-service/internal/handlers/task"
	userHandler "workhub-service/internal/handlers/user"
	wsHandler "workhub-service/internal/handlers/websocket"
	"workhub-service/internal/middleware"
	"workhub-service/internal/pkg/session"
	"workhub-service/internal/pkg/token"
	"workhub-service/internal/repository/postgres"
	authUsecase "workhub-service/internal/service/auth"
	jobUsecase "workhub-service/internal/service/job"
	reportUsecase "workhub-service/internal/service/report"
	taskUsecase "workhub-service/internal/service/task"
	userUsecase "workhub-service/internal/service/user"
	"workhub-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start(ctx context.Context) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()
	s.logger = logger

	// ----- PostgreSQL -----
	pool, err := db.ConnectPostgres(ctx, db.PostgresConfig{
		DSN:      s.cfg.DatabaseURL,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	defer redisClient.Close()

	// ----- Token Manager -----
	tokenManager, err := token.NewManager(s.cfg.Token)
	if err != nil {
		return fmt.Errorf("failed to build token manager: %w", err)
	}

	// ----- Rate Limiter -----
	rateLimiter := session.NewRateLimiter(redisClient)

	// ----- Repositories -----
	identityRepo := postgres.NewIdentityRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	jobRepo := postgres.NewJobRepository(pool)
	statsRepo := postgres.NewStatsRepository(identityRepo, taskRepo, jobRepo)

	// ----- WebSocket Hub -----
	hub := websocket.NewHub(logger)
	go hub.Run(ctx)

	// ----- Services -----
	authService := authUsecase.NewAuthService(identityRepo, tokenManager, rateLimiter, hub, logger)
	userService := userUsecase.NewUserService(identityRepo, hub, logger)
	taskService := taskUsecase.NewTaskService(taskRepo, logger)
	jobService := jobUsecase.NewJobService(jobRepo, logger)
	reportService := reportUsecase.NewReportService(statsRepo, redisClient, logger)

	// ----- Seed Accounts -----
	if s.cfg.SeedAccounts {
		seedCfg := authUsecase.SeedConfig{
			Password:   s.cfg.SeedPassword,
			MailDomain: s.cfg.SeedMailDomain,
		}
		if err := authUsecase.EnsureSeedAccounts(ctx, identityRepo, seedCfg, logger); err != nil {
			logger.Error("failed to seed default accounts", zap.Error(err))
		}
	}

	// ----- Handlers -----
	authHandlerInst := authHandler.NewAuthHandler(authService, logger)
	userHandlerInst := userHandler.NewUserHandler(userService, logger)
	taskHandlerInst := taskHandler.NewTaskHandler(taskService, logger)
	jobHandlerInst := jobHandler.NewJobHandler(jobService, logger)
	reportHandlerInst := reportHandler.NewReportHandler(reportService, logger)
	wsHandlerInst := wsHandler.NewWebSocketHandler(hub, logger)

	// ----- Middlewares -----
	authMiddleware := middleware.NewAuthMiddleware(authService)

	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(),
	)

	// ----- Router -----
	handlers := &Handlers{
		AuthHandler:    authHandlerInst,
		UserHandler:    userHandlerInst,
		TaskHandler:    taskHandlerInst,
		JobHandler:     jobHandlerInst,
		ReportHandler:  reportHandlerInst,
		WSHandler:      wsHandlerInst,
		AuthMiddleware: authMiddleware,
	}
	SetupRouter(s.engine, handlers)

	logger.Info("server starting", zap.String("addr", s.cfg.HTTPAddr))
	return s.engine.Run(s.cfg.HTTPAddr)
}
