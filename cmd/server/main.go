package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"strengthdesk/coach-app/internal/api"
	"strengthdesk/coach-app/internal/config"
	"strengthdesk/coach-app/internal/repository/mongo"
	"strengthdesk/coach-app/internal/service"
	"strengthdesk/coach-app/internal/storage"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// @title Coach App API
// @version 1.0
// @description API for coaching staff to author workout programs and for athletes to resolve and log them.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.Info("starting coach app server")

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("could not connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Errorf("failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.WithField("database", cfg.Database.Name).Info("database connection established")

	// Index creation must not block startup; the unique log index in
	// particular can take a while on a large collection.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureExerciseIndexes(ctx, appDB.Collection("exercises"))
		mongo.EnsureProgramIndexes(ctx, appDB.Collection("workout_programs"))
		mongo.EnsureWorkoutLogIndexes(ctx, appDB.Collection("workout_logs"))
		mongo.EnsureDemoUploadIndexes(ctx, appDB.Collection("demo_uploads"))
		log.Info("index creation completed")
	}()

	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("failed to initialize S3 storage: %v", err)
	}

	userRepo := mongo.NewMongoUserRepository(appDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	programRepo := mongo.NewMongoProgramRepository(appDB)
	logRepo := mongo.NewMongoWorkoutLogRepository(appDB)
	uploadRepo := mongo.NewMongoDemoUploadRepository(appDB)

	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	exerciseService := service.NewExerciseService(exerciseRepo, uploadRepo, fileStorage)
	programService := service.NewProgramService(programRepo, exerciseRepo)
	athleteService := service.NewAthleteService(userRepo, programRepo)
	logService := service.NewLogService(logRepo, programRepo, userRepo)

	router := gin.Default()
	api.SetupRoutes(router, cfg.JWT.Secret, authService, exerciseService, programService, athleteService, logService)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.WithField("address", cfg.Server.Address).Info("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	log.Info("server exited")
}
