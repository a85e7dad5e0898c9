package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"eventms/config"
	_ "eventms/docs" // swagger spec registration
	authadapter "eventms/internal/adapters/auth"
	"eventms/internal/adapters/email"
	"eventms/internal/adapters/qr"
	"eventms/internal/database"
	delivery "eventms/internal/delivery/http"
	"eventms/internal/delivery/http/controllers"
	"eventms/internal/delivery/http/middleware"
	"eventms/internal/repository/postgres"
	"eventms/internal/services"
)

const contextTimeout = 5 * time.Second

// @title           Event Management System API
// @version         1.0
// @description     REST backend for organizer-run events: stakeholder group forms, public registrations with QR check-in, team collaboration, templates, analytics, and announcements.

// @BasePath  /

// @securityDefinitions.apikey  BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to reach database", "error", err)
		os.Exit(1)
	}

	if err := database.RunMigrations(cfg.DBUrl, cfg.MigrationsPath, logger); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	teamRepo := postgres.NewTeamMemberRepository(db)
	invitationRepo := postgres.NewTeamInvitationRepository(db)
	groupRepo := postgres.NewStakeholderGroupRepository(db)
	regRepo := postgres.NewRegistrationRepository(db)
	templateRepo := postgres.NewTemplateRepository(db)
	logRepo := postgres.NewEmailLogRepository(db)
	snapshotRepo := postgres.NewAnalyticsSnapshotRepository(db)

	hasher := authadapter.NewBcryptHasher(bcrypt.DefaultCost)
	tokens := authadapter.NewJWTCodec(cfg.JWTSecret)
	qrGen := qr.NewEncoder(256)
	renderer := email.NewTemplateRenderer()
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "error", err)
		os.Exit(1)
	}

	emailSvc := services.NewEmailService(mailer, renderer)
	authSvc := services.NewAuthService(userRepo, hasher, tokens,
		time.Duration(cfg.TokenExpiryHrs)*time.Hour, contextTimeout)
	eventSvc := services.NewEventService(eventRepo, teamRepo, regRepo, contextTimeout)
	groupSvc := services.NewStakeholderGroupService(groupRepo, eventRepo, contextTimeout)
	regSvc := services.NewRegistrationService(regRepo, eventRepo, groupRepo, qrGen, emailSvc, logger, contextTimeout)
	teamSvc := services.NewTeamService(eventRepo, teamRepo, invitationRepo, userRepo, emailSvc, cfg.FrontendURL, logger, contextTimeout)
	templateSvc := services.NewTemplateService(templateRepo, eventRepo, groupRepo, contextTimeout)
	analyticsSvc := services.NewAnalyticsService(regRepo, groupRepo, snapshotRepo, contextTimeout)
	announcementSvc := services.NewAnnouncementService(eventRepo, regRepo, logRepo, emailSvc, logger, contextTimeout)
	adminSvc := services.NewAdminService(userRepo, eventRepo, regRepo, contextTimeout)

	mux := delivery.NewRouter(delivery.Controllers{
		Auth:         controllers.NewAuthController(logger, authSvc),
		Event:        controllers.NewEventController(logger, eventSvc),
		Group:        controllers.NewStakeholderGroupController(logger, groupSvc),
		Registration: controllers.NewRegistrationController(logger, regSvc),
		Team:         controllers.NewTeamController(logger, teamSvc),
		Template:     controllers.NewTemplateController(logger, templateSvc),
		Analytics:    controllers.NewAnalyticsController(logger, analyticsSvc),
		Email:        controllers.NewEmailController(logger, announcementSvc),
		Admin:        controllers.NewAdminController(logger, adminSvc),
	}, tokens)

	handler := middleware.CORS([]string{cfg.FrontendURL},
		middleware.LoggingMiddleware(logger, mux))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("server starting", "addr", srv.Addr, "env", cfg.Environment)
	if cfg.Environment != "production" {
		logger.Info("swagger ui", "url", "http://localhost:"+cfg.Port+"/swagger/index.html")
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
