package main

import (
	"log"
	"net/http"
	"os"

	_ "github.com/noorjahan04/City-Backend/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"github.com/noorjahan04/City-Backend/internal/auth"
	"github.com/noorjahan04/City-Backend/internal/cache"
	"github.com/noorjahan04/City-Backend/internal/chatbot"
	"github.com/noorjahan04/City-Backend/internal/config"
	"github.com/noorjahan04/City-Backend/internal/db"
	"github.com/noorjahan04/City-Backend/internal/handler"
	"github.com/noorjahan04/City-Backend/internal/model"
	"github.com/noorjahan04/City-Backend/internal/notify"
	"github.com/noorjahan04/City-Backend/internal/otp"
	"github.com/noorjahan04/City-Backend/internal/phone"
	"github.com/noorjahan04/City-Backend/internal/repository"
	"github.com/noorjahan04/City-Backend/internal/router"
	"github.com/noorjahan04/City-Backend/internal/service"
)

// @title City Complaints API
// @version 1.0
// @description Municipal complaint management API with role-based triage, support tickets, and JWT authentication.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Review{},
			&model.SupportTicket{},
			&model.Complaint{},
			&model.SubCategory{},
			&model.Category{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.SubCategory{},
		&model.Complaint{},
		&model.SupportTicket{},
		&model.Review{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	// Without Redis the token store is disabled and OTP state lives in
	// process memory. Fine for development, not for multiple replicas.
	var cacheClient *cache.Client
	var otpStore, sessionStore otp.Store
	if cfg.RedisAddr != "" {
		cacheClient = cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		otpStore = otp.NewRedisStore(cacheClient, "email_otp")
		sessionStore = otp.NewRedisStore(cacheClient, "phone_session")
	} else {
		log.Println("REDIS_ADDR not set, using in-memory OTP stores")
		otpStore = otp.NewMemoryStore()
		sessionStore = otp.NewMemoryStore()
	}

	var notifier notify.Notifier
	if cfg.SendGridAPIKey != "" {
		notifier = notify.NewMailer(cfg.SendGridAPIKey, cfg.EmailFrom)
	} else {
		log.Println("SENDGRID_API_KEY not set, email notifications disabled")
		notifier = notify.Noop{}
	}

	phoneVerifier := phone.NewClient(cfg.PhoneVerifyAPIKey, cfg.PhoneVerifyBaseURL)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	subCategoryRepo := repository.NewSubCategoryRepository(gormDB)
	complaintRepo := repository.NewComplaintRepository(gormDB)
	ticketRepo := repository.NewTicketRepository(gormDB)
	reviewRepo := repository.NewReviewRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore, otpStore, notifier, cfg.RolePrefixes)
	profileService := service.NewProfileService(userRepo, phoneVerifier, sessionStore)
	categoryService := service.NewCategoryService(categoryRepo, subCategoryRepo, userRepo)
	complaintService := service.NewComplaintService(complaintRepo, userRepo, categoryRepo, notifier)
	employeeService := service.NewEmployeeService(userRepo, categoryRepo)
	adminService := service.NewAdminService(userRepo)
	ticketService := service.NewTicketService(ticketRepo, userRepo)
	reviewService := service.NewReviewService(reviewRepo, userRepo)
	responder := chatbot.New(categoryRepo, subCategoryRepo, complaintRepo, ticketRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(profileService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	complaintHandler := handler.NewComplaintHandler(complaintService)
	employeeHandler := handler.NewEmployeeHandler(employeeService)
	adminHandler := handler.NewAdminHandler(adminService, ticketService)
	ticketHandler := handler.NewTicketHandler(ticketService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	chatHandler := handler.NewChatHandler(responder)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		profileHandler,
		categoryHandler,
		complaintHandler,
		employeeHandler,
		adminHandler,
		ticketHandler,
		reviewHandler,
		chatHandler,
	)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: http://%s/swagger/index.html", cfg.SwaggerHost)
	} else {
		log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
