package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/tikrarapp/tikrar-backend/config"
	"github.com/tikrarapp/tikrar-backend/database"
	_ "github.com/tikrarapp/tikrar-backend/docs"
	adminctrl "github.com/tikrarapp/tikrar-backend/internal/controller/admin"
	userctrl "github.com/tikrarapp/tikrar-backend/internal/controller/user"
	"github.com/tikrarapp/tikrar-backend/internal/logger"
	"github.com/tikrarapp/tikrar-backend/internal/middleware"
	"github.com/tikrarapp/tikrar-backend/internal/model"
	"github.com/tikrarapp/tikrar-backend/internal/repository"
	"github.com/tikrarapp/tikrar-backend/internal/service"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Tikrar Tahfidz API
// @version 1.0
// @description Backend for the Tikrar Tahfidz program: halaqah enrollment with capacity and waitlist handling, and the juz placement exam.
// @contact.name API Support
// @contact.email support@tikrarapp.id
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

		fx.Provide(
			repository.NewHalaqahRepository,
			repository.NewHalaqahStudentRepository,
			repository.NewRegistrationRepository,
			repository.NewDaftarUlangRepository,
			repository.NewExamAttemptRepository,
			repository.NewExamQuestionRepository,
			repository.NewExamConfigurationRepository,
			repository.NewQuestionFlagRepository,
		),

		fx.Provide(
			service.NewEnrollmentService,
			service.NewQuotaService,
			service.NewHalaqahAdminService,
			service.NewExamService,
			service.NewExamAdminService,
			service.NewRegistrationService,
			service.NewDaftarUlangService,
		),

		fx.Provide(
			userctrl.NewHalaqahController,
			userctrl.NewExamController,
			adminctrl.NewHalaqahAdminController,
			adminctrl.NewExamAdminController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-Id", "X-User-Roles"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	halaqahCtrl *userctrl.HalaqahController,
	examCtrl *userctrl.ExamController,
	halaqahAdminCtrl *adminctrl.HalaqahAdminController,
	examAdminCtrl *adminctrl.ExamAdminController,
) {
	api := router.Group("/api/v1", middleware.Principal())
	{
		halaqah := api.Group("/halaqah")
		halaqah.GET("", halaqahCtrl.ListHalaqah)
		halaqah.POST("/:id/join", halaqahCtrl.JoinHalaqah)
		halaqah.POST("/:id/leave", halaqahCtrl.LeaveHalaqah)
		halaqah.GET("/:id/occupancy", halaqahCtrl.GetOccupancy)
		halaqah.GET("/:id/students", halaqahCtrl.ListStudents)

		exam := api.Group("/exam")
		exam.GET("/eligibility", examCtrl.GetEligibility)
		exam.GET("/questions", examCtrl.GetQuestions)
		exam.POST("/start", examCtrl.StartAttempt)
		exam.POST("/submit", examCtrl.SubmitAttempt)
		exam.GET("/attempts", examCtrl.ListAttempts)
		exam.GET("/attempts/:attempt_id", examCtrl.GetAttempt)

		api.GET("/registrations/my", examCtrl.MyRegistration)
		api.POST("/daftar-ulang/submit", examCtrl.SubmitDaftarUlang)
	}

	adminAPI := router.Group("/api/v1/admin", middleware.Principal(), middleware.RequireAdmin())
	{
		adminAPI.POST("/halaqah", halaqahAdminCtrl.CreateHalaqah)
		adminAPI.PATCH("/halaqah/:id", halaqahAdminCtrl.UpdateHalaqah)
		adminAPI.POST("/halaqah/:id/promote-waitlist", halaqahAdminCtrl.PromoteWaitlist)
		adminAPI.POST("/halaqah/recalculate-quota", halaqahAdminCtrl.RecalculateQuota)
		adminAPI.POST("/registrations/:id/approve", halaqahAdminCtrl.ApproveRegistration)

		examAdmin := adminAPI.Group("/exam")
		examAdmin.GET("/configurations", examAdminCtrl.ListConfigurations)
		examAdmin.POST("/configurations", examAdminCtrl.CreateConfiguration)
		examAdmin.PUT("/configurations/:id", examAdminCtrl.UpdateConfiguration)
		examAdmin.GET("/questions", examAdminCtrl.ListQuestions)
		examAdmin.POST("/questions", examAdminCtrl.CreateQuestion)
		examAdmin.PUT("/questions/:id", examAdminCtrl.UpdateQuestion)
		examAdmin.DELETE("/questions/:id", examAdminCtrl.DeleteQuestion)
		examAdmin.GET("/flags", examAdminCtrl.ListFlags)
		examAdmin.PUT("/flags/:id", examAdminCtrl.UpdateFlag)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Tikrar Tahfidz API server starting on port %s", cfg.Server.Port)
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

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Halaqah{},
		&model.HalaqahStudent{},
		&model.Registration{},
		&model.DaftarUlangSubmission{},
		&model.ExamQuestion{},
		&model.ExamAttempt{},
		&model.ExamConfiguration{},
		&model.ExamQuestionFlag{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
