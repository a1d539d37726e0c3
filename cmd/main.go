package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/quizdesk/classroom/config"
	"github.com/quizdesk/classroom/database"
	_ "github.com/quizdesk/classroom/docs" // Swagger docs
	adminctrl "github.com/quizdesk/classroom/internal/controller/admin"
	userctrl "github.com/quizdesk/classroom/internal/controller/user"
	webhookctrl "github.com/quizdesk/classroom/internal/controller/webhook"
	"github.com/quizdesk/classroom/internal/logger"
	"github.com/quizdesk/classroom/internal/model"
	"github.com/quizdesk/classroom/internal/repository"
	"github.com/quizdesk/classroom/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Classroom API
// @version 1.0
// @description Online classroom core: quiz sessions with weighted scoring and course orders with payment-gateway reconciliation.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		// Repositories layer
		fx.Provide(
			repository.NewCourseRepository,
			repository.NewQuizRepository,
			repository.NewSessionRepository,
			repository.NewOrderRepository,
			repository.NewNotificationRepository,
		),

		// Services layer
		fx.Provide(
			service.NewQuestionGenerator,
			service.NewQuizSessionService,
			service.NewAdminQuizService,
			service.NewPaymentGateway,
			service.NewOrderService,
			service.NewPaymentWebhookService,
			service.NewQueuedDispatcher,
			func(d *service.QueuedDispatcher) service.NotificationDispatcher { return d },
			service.NewSessionSweeper,
		),

		// API controllers layer
		fx.Provide(
			adminctrl.NewAdminQuizController,
			userctrl.NewQuizSessionController,
			userctrl.NewOrderController,
			webhookctrl.NewPaymentWebhookController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(StartWorkers),
		fx.Invoke(AutoMigrateDB),
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
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", webhookctrl.TokenHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages the HTTP
// server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	adminQuizCtrl *adminctrl.AdminQuizController,
	quizSessionCtrl *userctrl.QuizSessionController,
	orderCtrl *userctrl.OrderController,
	webhookCtrl *webhookctrl.PaymentWebhookController,
) {
	adminAPIGroup := router.Group("/api/v1/admin")
	{
		adminAPIGroup.POST("/quizzes", adminQuizCtrl.CreateQuiz)
		adminAPIGroup.GET("/quizzes/:quiz_uuid/results", adminQuizCtrl.GetQuizResults)
		adminAPIGroup.DELETE("/sessions/:session_id", adminQuizCtrl.ResetSession)
	}

	userAPIGroup := router.Group("/api/v1")
	{
		userAPIGroup.POST("/courses/:course_slug/quizzes/:quiz_uuid/sessions", quizSessionCtrl.TakeQuiz)
		userAPIGroup.PUT("/sessions/:session_id/questions/:question_id/answer", quizSessionCtrl.UpdateAnswer)
		userAPIGroup.POST("/sessions/:session_id/submit", quizSessionCtrl.SubmitQuiz)

		userAPIGroup.POST("/courses/:course_slug/orders", orderCtrl.OrderCourse)
		userAPIGroup.POST("/payments/webhook", webhookCtrl.HandleNotification)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Classroom API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
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

// StartWorkers ties the notification dispatcher and the session sweeper to
// the application lifecycle.
func StartWorkers(lc fx.Lifecycle, dispatcher *service.QueuedDispatcher, sweeper *service.SessionSweeper) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			dispatcher.Start()
			return sweeper.Start()
		},
		OnStop: func(ctx context.Context) error {
			sweeper.Stop()
			dispatcher.Stop()
			return nil
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Course{},
		&model.CourseDiscount{},
		&model.Quiz{},
		&model.Question{},
		&model.QuestionAnswer{},
		&model.QuizSession{},
		&model.QuizEnrolledQuestion{},
		&model.Order{},
		&model.Enrollment{},
		&model.Notification{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
