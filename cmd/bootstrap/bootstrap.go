package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"health-services-backend/config"
	deliveryHttp "health-services-backend/internal/delivery/http"
	"health-services-backend/internal/delivery/http/handler"
	"health-services-backend/internal/delivery/http/middleware"
	"health-services-backend/internal/domain/entity"
	"health-services-backend/internal/infrastructure/cache"
	"health-services-backend/internal/infrastructure/database"
	genaiInfra "health-services-backend/internal/infrastructure/genai"
	"health-services-backend/internal/repository"
	"health-services-backend/internal/service"
	"health-services-backend/internal/usecase"
	"health-services-backend/pkg/jwt"
	"health-services-backend/pkg/validator"

	"github.com/google/generative-ai-go/genai"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	MongoClient *mongo.Client
	RedisClient *redis.Client
	GenaiClient *genai.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	if err := db.AutoMigrate(&entity.User{}, &entity.Prescription{}, &entity.AuditLog{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	logrus.Info("Database schema migrated successfully")

	// Initialize MongoDB (doctor catalog)
	mongoClient, err := database.NewMongoConnection(cfg.Mongo)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	app.MongoClient = mongoClient
	logrus.Info("MongoDB connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize Gemini client
	genaiClient, err := genaiInfra.NewClient(cfg.Gemini)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	app.GenaiClient = genaiClient
	logrus.Info("Gemini client created successfully")

	// Initialize all layers
	server, err := initializeServer(cfg, db, mongoClient, redisClient, genaiClient)
	if err != nil {
		return nil, err
	}
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(
	cfg *config.Config,
	db *gorm.DB,
	mongoClient *mongo.Client,
	redisClient *redis.Client,
	genaiClient *genai.Client,
) (*http.Server, error) {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	prescriptionRepo := repository.NewPrescriptionRepository()
	auditLogRepo := repository.NewAuditLogRepository()
	catalogCollection := mongoClient.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
	catalogRepo := repository.NewDoctorCatalogRepository(catalogCollection)

	// Initialize services
	auditService := service.NewAuditService(db, log, auditLogRepo)
	quotaLedger := service.NewQuotaLedger(db, log, userRepo, cfg.Quota.Limit)
	generator := service.NewGenerationService(genaiClient, cfg.Gemini, log, customValidator)
	mailService, err := service.NewMailService(cfg.Mail, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail service: %w", err)
	}

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, jwtService, redisClient, auditService)
	userUsecase := usecase.NewUserUsecase(db, log, userRepo, auditService)
	doctorMatchUsecase := usecase.NewDoctorMatchUsecase(log, catalogRepo, generator, quotaLedger, auditService)
	dietPlanUsecase := usecase.NewDietPlanUsecase(db, log, userRepo, generator, quotaLedger, auditService)
	prescriptionScanUsecase := usecase.NewPrescriptionScanUsecase(log, generator, quotaLedger, auditService)
	prescriptionUsecase := usecase.NewPrescriptionUsecase(db, log, prescriptionRepo, userRepo, auditService)
	emailUsecase := usecase.NewEmailUsecase(log, mailService, auditService)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, jwtService)
	userHandler := handler.NewUserHandler(userUsecase, customValidator)
	doctorHandler := handler.NewDoctorHandler(doctorMatchUsecase, customValidator)
	dietPlanHandler := handler.NewDietPlanHandler(dietPlanUsecase, customValidator)
	prescriptionHandler := handler.NewPrescriptionHandler(prescriptionScanUsecase, prescriptionUsecase, customValidator)
	emailHandler := handler.NewEmailHandler(emailUsecase, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		userHandler,
		doctorHandler,
		dietPlanHandler,
		prescriptionHandler,
		emailHandler,
		authMiddleware,
		corsMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close MongoDB connection
	if app.MongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		app.MongoClient.Disconnect(ctx)
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}

	// Close Gemini client
	if app.GenaiClient != nil {
		app.GenaiClient.Close()
	}
}
