package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"edify-backend/internal/config"
	"edify-backend/internal/database"
	"edify-backend/internal/handlers"
	"edify-backend/internal/repository"
	"edify-backend/internal/router"
	"edify-backend/internal/services"
	"edify-backend/internal/worker"
)

func main() {
	log.Println("🌺 Starting Edify Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis ────
	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClient.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	contactRepo := repository.NewContactRepo(pool)
	blogRepo := repository.NewBlogRepo(pool)
	agentRepo := repository.NewAgentRepo(pool)
	analyticsRepo := repository.NewAnalyticsRepo(pool)
	conversationRepo := repository.NewConversationRepo(pool)

	// ──── Step 5: Initialize Gemini Client ────
	// Optional: without a key the audit endpoints degrade to 503.
	var geminiService *services.GeminiService
	if cfg.GeminiAPIKey != "" {
		geminiService, err = services.NewGeminiService(
			cfg.GeminiAPIKey,
			cfg.GeminiModel,
			cfg.AuditSystemPrompt,
			cfg.GeminiConcurrentReqs,
		)
		if err != nil {
			log.Fatalf("✗ Gemini client initialization failed: %v", err)
		}
		defer geminiService.Close()
		log.Printf("✓ Gemini client initialized (%s)", cfg.GeminiModel)
	} else {
		log.Println("⚠ GEMINI_API_KEY not set, audit endpoints will answer 503")
	}

	// ──── Initialize Services ────
	emailService := services.NewEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.ContactNotifyEmail)

	// ──── Initialize Handlers ────
	var auditHandler *handlers.AuditHandler
	if geminiService != nil {
		auditHandler = handlers.NewAuditHandler(geminiService, redisClient)
	} else {
		auditHandler = handlers.NewAuditHandler(nil, redisClient)
	}
	contactHandler := handlers.NewContactHandler(contactRepo, redisClient)
	blogHandler := handlers.NewBlogHandler(blogRepo)
	agentHandler := handlers.NewAgentHandler(agentRepo)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsRepo)

	// ──── Step 6: Start CRM Worker Pool ────
	workerPool := worker.NewPool(redisClient, emailService, conversationRepo, 2)
	workerPool.Start()
	log.Println("✓ Worker pool started (2 goroutines)")

	if cfg.AgentAPIKey == "" {
		log.Println("⚠ AGENT_API_KEY not set, agent mailbox will answer 503")
	}

	// ──── Step 7: Start HTTP Server ────
	r := router.New(
		auditHandler,
		contactHandler,
		blogHandler,
		agentHandler,
		analyticsHandler,
		cfg.AgentAPIKey,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		// No WriteTimeout: the audit chat endpoint holds its response open
		// while the upstream streams; the relay bounds the call itself.
		IdleTimeout: 60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		workerPool.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Edify Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
