package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"board-backend/internal/archive"
	"board-backend/internal/auth"
	"board-backend/internal/cache"
	"board-backend/internal/config"
	"board-backend/internal/database"
	"board-backend/internal/db"
	"board-backend/internal/handlers"
	"board-backend/internal/health"
	h "board-backend/internal/http"
	"board-backend/internal/middleware"
	"board-backend/internal/monitoring"
	"board-backend/internal/notify"
	"board-backend/internal/repositories"
	"board-backend/internal/services"
	"board-backend/migrations"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	pool := db.Connect(cfg)
	defer pool.Close()

	// Redis is optional; login falls back to bcrypt-only when absent
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (login will use bcrypt only)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	log.Println("Running database migrations...")
	migrator := database.NewMigratorWithFS(pool, migrations.FS, ".")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	healthChecker := health.NewHealthChecker(pool)

	go monitoring.NewServer(pool, cfg.Monitoring.Port).Start()

	jwtManager := auth.NewJWTManager(cfg)

	// Repositories
	memberRepo := repositories.NewMemberRepository(pool)
	threadRepo := repositories.NewThreadRepository(pool)
	postRepo := repositories.NewPostRepository(pool)
	commentRepo := repositories.NewCommentRepository(pool)
	flagReportRepo := repositories.NewFlagReportRepository(pool)
	actionRepo := repositories.NewModerationActionRepository(pool)
	appealRepo := repositories.NewAppealRepository(pool)
	logRepo := repositories.NewModerationLogRepository(pool)
	notificationRepo := repositories.NewNotificationRepository(pool)
	targetRepo := repositories.NewTargetRepository(pool)

	// Live notification hub
	hub := notify.NewHub()

	// Services
	notificationService := services.NewNotificationService(notificationRepo, hub)
	memberService := services.NewMemberService(memberRepo, jwtManager)
	totpService := services.NewTOTPService(memberRepo, jwtManager)
	threadService := services.NewThreadService(threadRepo)
	postService := services.NewPostService(postRepo, threadRepo)
	commentService := services.NewCommentService(commentRepo, postRepo)
	flagReportService := services.NewFlagReportService(flagReportRepo, targetRepo)
	moderationService := services.NewModerationService(actionRepo, logRepo, targetRepo, notificationService)
	appealService := services.NewAppealService(appealRepo, actionRepo, notificationService)
	logService := services.NewModerationLogService(logRepo)
	reportService := services.NewReportService(actionRepo, appealRepo, flagReportRepo)

	// Scheduled compliance export of the audit log to object storage
	if cfg.Archive.Enabled {
		exporter, err := archive.NewExporter(context.Background(), cfg, logRepo)
		if err != nil {
			log.Printf("[Archive] init failed: %v (export disabled)", err)
		} else if err := exporter.Start(); err != nil {
			log.Printf("[Archive] schedule failed: %v (export disabled)", err)
		} else {
			defer exporter.Stop()
		}
	}

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, memberRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	// Handlers
	authHandler := handlers.NewAuthHandler(memberService, totpService)
	totpHandler := handlers.NewTOTPHandler(totpService, memberService, jwtManager)
	memberHandler := handlers.NewMemberHandler(memberService)
	threadHandler := handlers.NewThreadHandler(threadService)
	postHandler := handlers.NewPostHandler(postService)
	commentHandler := handlers.NewCommentHandler(commentService)
	flagReportHandler := handlers.NewFlagReportHandler(flagReportService)
	actionHandler := handlers.NewModerationActionHandler(moderationService)
	appealHandler := handlers.NewAppealHandler(appealService)
	logHandler := handlers.NewModerationLogHandler(logService)
	notificationHandler := handlers.NewNotificationHandler(notificationService, hub)
	reportHandler := handlers.NewReportHandler(reportService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	router := h.NewRouter(
		authHandler,
		totpHandler,
		memberHandler,
		threadHandler,
		postHandler,
		commentHandler,
		flagReportHandler,
		actionHandler,
		appealHandler,
		logHandler,
		notificationHandler,
		reportHandler,
		healthHandler,
		authMiddleware,
	)

	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
