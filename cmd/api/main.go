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

	"github.com/joho/godotenv"

	"github.com/daeseda/laundry-api/internal/config"
	"github.com/daeseda/laundry-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/daeseda/laundry-api/internal/infrastructure/jwt"
	redisstore "github.com/daeseda/laundry-api/internal/infrastructure/redis"
	s3infra "github.com/daeseda/laundry-api/internal/infrastructure/s3"
	"github.com/daeseda/laundry-api/internal/infrastructure/smtp"
	"github.com/daeseda/laundry-api/internal/infrastructure/sns"
	transporthttp "github.com/daeseda/laundry-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()
	ctx := context.Background()

	// Bootstrap DynamoDB tables (creates them if they don't exist) and seed
	// the laundry catalog on first run.
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(ctx, dynamoClient, cfg.DynamoTables)
	catalogRepo := dynamo.NewCatalogRepo(dynamoClient, cfg.DynamoTables.Catalog)
	dynamo.SeedCatalog(ctx, catalogRepo)

	// Redis holds pending email verification codes.
	redisClient := redisstore.NewClient(cfg)
	codeStore := redisstore.NewCodeStore(redisClient, cfg.VerificationMaxTry)

	// JWT provider (optional — graceful fallback if keys are missing).
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		log.Printf("WARN: JWT provider not available: %v", err)
	}

	// S3 store for review images.
	s3Client := s3infra.NewClient(cfg)
	s3Store := s3infra.NewStore(s3Client, cfg.S3BucketName)

	// SMTP mailer delivers verification codes.
	mailer := smtp.NewMailer(cfg)

	// SNS SMS sender (optional — graceful fallback).
	var smsSender sns.SMSSender
	if sender, err := sns.NewSender(cfg); err == nil {
		smsSender = sender
	} else {
		log.Printf("WARN: SNS sender not available: %v", err)
	}

	deps := &transporthttp.Deps{
		UserRepo:    dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users),
		SessionRepo: dynamo.NewSessionRepo(dynamoClient, cfg.DynamoTables.Sessions),
		OrderRepo:   dynamo.NewOrderRepo(dynamoClient, cfg.DynamoTables.Orders),
		ReviewRepo:  dynamo.NewReviewRepo(dynamoClient, cfg.DynamoTables.Reviews),
		NoticeRepo:  dynamo.NewNoticeRepo(dynamoClient, cfg.DynamoTables.Notices),
		CatalogRepo: catalogRepo,
		CodeStore:   codeStore,
		S3Store:     s3Store,
		Mailer:      mailer,
		SMSSender:   smsSender,
		JWTProvider: jwtProvider,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	_ = redisClient.Close()
	log.Println("Server stopped")
}
