package main

import (
	"context"
	"net/http"
	"time"

	"github.com/dangbert/thesis-app/config"
	"github.com/dangbert/thesis-app/database"
	"github.com/dangbert/thesis-app/internal/controller"
	"github.com/dangbert/thesis-app/internal/logger"
	"github.com/dangbert/thesis-app/internal/model"
	"github.com/dangbert/thesis-app/internal/repository"
	"github.com/dangbert/thesis-app/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title EzFeedback API
// @version 1.0
// @description Course and assignment management with AI-generated feedback on student attempts.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		// Repositories Layer
		fx.Provide(
			repository.NewUserRepository,
			repository.NewCourseRepository,
			repository.NewAssignmentRepository,
			repository.NewAttemptRepository,
			repository.NewFeedbackRepository,
			repository.NewFileRepository,
			repository.NewJobRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewAuthorizationService,
			service.NewEnrollmentService,
			service.NewUserService,
			service.NewCourseService,
			service.NewAttemptService,
			service.NewFeedbackService,
			service.NewFileService,
		),

		// API Controllers Layer
		fx.Provide(
			controller.NewCourseController,
			controller.NewAttemptController,
			controller.NewFileController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	userSvc service.UserService,
	courseCtrl *controller.CourseController,
	attemptCtrl *controller.AttemptController,
	fileCtrl *controller.FileController,
) {
	api := router.Group("/api/v1")
	api.Use(controller.RequireUser(userSvc))
	{
		courses := api.Group("/courses")
		courses.POST("", courseCtrl.CreateCourse)
		courses.GET("", courseCtrl.ListCourses)
		courses.POST("/join/:invite_key", courseCtrl.JoinCourse)
		courses.GET("/:course_id", courseCtrl.GetCourse)
		courses.DELETE("/:course_id", courseCtrl.DeleteCourse)
		courses.PUT("/:course_id/enrollments", courseCtrl.EnrollUser)
		courses.POST("/:course_id/assignments", courseCtrl.CreateAssignment)
		courses.GET("/:course_id/assignments", courseCtrl.ListAssignments)

		api.GET("/assignments/:assignment_id/attempts", attemptCtrl.ListAssignmentAttempts)

		attempts := api.Group("/attempts")
		attempts.POST("", attemptCtrl.SubmitAttempt)
		attempts.GET("/:attempt_id", attemptCtrl.GetAttempt)
		attempts.POST("/:attempt_id/feedback", attemptCtrl.CreateFeedback)
		attempts.GET("/:attempt_id/feedback", attemptCtrl.ListFeedback)

		files := api.Group("/files")
		files.POST("", fileCtrl.CreateFile)
		files.GET("/:file_id", fileCtrl.GetFile)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("EzFeedback API server starting on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.CourseUserLink{},
		&model.Assignment{},
		&model.Attempt{},
		&model.Feedback{},
		&model.File{},
		&model.Job{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
