package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/beaconhr/onboarding-system/internal/api/handler"
	"github.com/beaconhr/onboarding-system/internal/api/middleware"
	"github.com/beaconhr/onboarding-system/internal/core/domain"
	"github.com/beaconhr/onboarding-system/internal/core/service"
	"github.com/beaconhr/onboarding-system/internal/infrastructure/config"
	mongodb "github.com/beaconhr/onboarding-system/internal/infrastructure/db/mongo"
	redisdb "github.com/beaconhr/onboarding-system/internal/infrastructure/db/redis"
	"github.com/beaconhr/onboarding-system/internal/infrastructure/email"
	"github.com/beaconhr/onboarding-system/internal/infrastructure/storage"
)

// NewRouter builds the Echo instance with every route registered and all
// services wired to their MongoDB, Redis, SMTP and filesystem adapters.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("onboarding"))

	// --- Infrastructure adapters ---
	store, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		return nil, err
	}
	mailer := email.NewSMTPSender(email.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	throttle := redisdb.NewReminderThrottle(rdb, 24*time.Hour)

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	inviteRepo := mongodb.NewRegistrationRepository(db)
	employeeRepo := mongodb.NewEmployeeRepository(db)
	documentRepo := mongodb.NewDocumentRepository(db)

	// --- Services ---
	authService := service.NewAuthService(userRepo, inviteRepo, employeeRepo, cfg.JWTSecret, cfg.TokenTTL, log)
	registrationService := service.NewRegistrationService(inviteRepo, mailer, cfg.FrontendURL, log)
	onboardingService := service.NewOnboardingService(employeeRepo, documentRepo, log)
	personalInfoService := service.NewPersonalInfoService(employeeRepo, log)
	documentService := service.NewDocumentService(documentRepo, employeeRepo, store, log)
	visaService := service.NewVisaService(employeeRepo, documentRepo, mailer, throttle, log)
	employeeService := service.NewEmployeeService(employeeRepo)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	registrationHandler := handler.NewRegistrationHandler(registrationService)
	onboardingHandler := handler.NewOnboardingHandler(onboardingService)
	personalInfoHandler := handler.NewPersonalInfoHandler(personalInfoService)
	documentHandler := handler.NewDocumentHandler(documentService)
	visaHandler := handler.NewVisaHandler(visaService)
	employeeHandler := handler.NewEmployeeHandler(employeeService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	auth := middleware.Auth(cfg.JWTSecret)
	hrOnly := middleware.RequireRole(domain.RoleHR)
	employeeOnly := middleware.RequireRole(domain.RoleEmployee)
	anyRole := middleware.RequireRole(domain.RoleHR, domain.RoleEmployee)

	// --- Public routes ---
	e.POST("/api/auth/signup", authHandler.Signup)
	e.POST("/api/auth/login", authHandler.Login)
	e.GET("/api/registration/verify", registrationHandler.Verify)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Employee routes ---
	onboarding := e.Group("/api/onboarding", auth, employeeOnly)
	onboarding.GET("", onboardingHandler.Get)
	onboarding.POST("/submit", onboardingHandler.Submit)

	personalInfo := e.Group("/api/personal-info", auth, employeeOnly)
	personalInfo.GET("", personalInfoHandler.Get)
	personalInfo.PUT("/:section", personalInfoHandler.Update)

	documents := e.Group("/api/documents", auth)
	documents.GET("", documentHandler.ListMine, employeeOnly)
	documents.POST("", documentHandler.Upload, employeeOnly)
	documents.PUT("/:id", documentHandler.Reupload, employeeOnly)
	documents.GET("/download/:id", documentHandler.Download, anyRole)
	documents.GET("/preview/:id", documentHandler.Preview, anyRole)
	documents.GET("/employee/:employeeId", documentHandler.ListByEmployee, hrOnly)

	// --- HR routes ---
	e.POST("/api/registration/generate", registrationHandler.Generate, auth, hrOnly)

	hr := e.Group("/api/hr", auth, hrOnly)
	hr.GET("/token-history", registrationHandler.History)
	hr.GET("/onboarding-applications", onboardingHandler.Applications)
	hr.PATCH("/onboarding/:id/approve", onboardingHandler.Approve)
	hr.PATCH("/onboarding/:id/reject", onboardingHandler.Reject)
	hr.GET("/employees", employeeHandler.List)
	hr.GET("/employees/search", employeeHandler.Search)
	hr.GET("/employees/:id", employeeHandler.Detail)
	hr.GET("/visa/in-progress", visaHandler.InProgress)
	hr.GET("/visa/all", visaHandler.All)
	hr.PATCH("/visa/:userId/:docType/approve", visaHandler.Approve)
	hr.PATCH("/visa/:userId/:docType/reject", visaHandler.Reject)
	hr.POST("/visa/:userId/send-reminder", visaHandler.SendReminder)

	return e, nil
}
