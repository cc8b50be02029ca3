package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"smartgains/trainer-app/internal/ai"
	"smartgains/trainer-app/internal/api"
	"smartgains/trainer-app/internal/config"
	"smartgains/trainer-app/internal/exercisedb"
	"smartgains/trainer-app/internal/logger"
	"smartgains/trainer-app/internal/repository/sqldb"
	"smartgains/trainer-app/internal/service"
	"smartgains/trainer-app/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("could not load config", "error", err)
		os.Exit(1)
	}

	logger.Init(cfg.IsDev(), cfg.Sentry.DSN)
	slog.Info("starting trainer app server", "env", cfg.Env)

	// --- Database ---
	db, err := sqldb.Connect(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		slog.Error("could not connect to database", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := sqldb.RunMigrations(db.DB, cfg.Database.Driver); err != nil {
		slog.Error("migrations failed", "error", err)
		os.Exit(1)
	}
	slog.Info("database ready", "driver", cfg.Database.Driver)

	// --- File storage ---
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}

	// --- External clients ---
	aiClient := ai.NewClient(cfg.AI)
	exerciseDBClient := exercisedb.NewClient(cfg.ExerciseDB)

	// --- Repositories ---
	trainerRepo := sqldb.NewTrainerRepository(db)
	clientRepo := sqldb.NewClientRepository(db)
	questionRepo := sqldb.NewQuestionRepository(db)
	planRepo := sqldb.NewPlanRepository(db)
	progressRepo := sqldb.NewProgressRepository(db)
	intakeRepo := sqldb.NewIntakeRepository(db)
	consultationRepo := sqldb.NewConsultationRepository(db)
	medicalRepo := sqldb.NewMedicalHistoryRepository(db)
	assessmentRepo := sqldb.NewAssessmentRepository(db)
	nutritionRepo := sqldb.NewNutritionRepository(db)
	exerciseRepo := sqldb.NewExerciseRepository(db)

	// --- Services ---
	authService := service.NewAuthService(trainerRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	trainerService := service.NewTrainerService(trainerRepo, fileStorage)
	clientService := service.NewClientService(clientRepo)
	questionService := service.NewQuestionService(questionRepo)
	planService := service.NewPlanService(planRepo, progressRepo)
	progressService := service.NewProgressService(progressRepo, planService, clientService)
	generationService := service.NewGenerationService(
		aiClient, planService, clientService,
		consultationRepo, medicalRepo, assessmentRepo, nutritionRepo,
	)
	intakeService := service.NewIntakeService(
		intakeRepo, consultationRepo, medicalRepo, assessmentRepo, nutritionRepo, clientService,
	)
	exerciseService := service.NewExerciseService(exerciseRepo, exerciseDBClient)
	emailService := service.NewEmailService(cfg.Email, cfg.IsDev())

	// --- Router ---
	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	api.SetupRoutes(
		router, cfg.JWT.Secret,
		authService, trainerService, clientService, questionService,
		planService, generationService, progressService, intakeService,
		exerciseService, emailService,
	)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server listening", "address", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server exited")
}
