package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"quejas/backend/internal/api/handler"
	"quejas/backend/internal/api/middleware"
	"quejas/backend/internal/audit"
	"quejas/backend/internal/challenge"
	"quejas/backend/internal/complaint"
	"quejas/backend/internal/config"
	"quejas/backend/internal/obs"
	"quejas/backend/internal/ratelimit"
	"quejas/backend/internal/storage"
	"quejas/backend/internal/validation"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func setupAudit(cfg *config.Config) *audit.Logger {
	auditLogger := audit.NewLogger(cfg.AuditFile, cfg.AuditEnabled)

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			log.Printf("WARN: Redis unreachable, audit publishing disabled: %v", err)
		} else {
			auditLogger.AttachRedis(rdb, cfg.RedisChannel)
			log.Println("INFO: Audit events will be published to Redis.")
		}
	}

	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != 0 {
		bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
		if err != nil {
			log.Printf("WARN: Telegram bot unavailable, notifications disabled: %v", err)
		} else {
			bot.Debug = false
			auditLogger.AttachTelegram(bot, cfg.TelegramChatID)
			log.Printf("INFO: Audit notifications authorized on account %s", bot.Self.UserName)
		}
	}

	return auditLogger
}

func main() {
	log.Println("Starting Sistema de Quejas backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := storage.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	store := storage.NewStorageService(db)

	seedCtx, cancel := context.WithTimeout(context.Background(), cfg.DBConnTimeout)
	if err := store.SeedEntities(seedCtx); err != nil {
		cancel()
		log.Fatalf("Failed to seed entities: %v", err)
	}
	cancel()
	log.Println("Database connection established, migrations and seed complete.")

	limiter := ratelimit.New(cfg.RateLimitMax, cfg.RateLimitWindow)
	go func() {
		for range time.Tick(cfg.RateLimitWindow) {
			limiter.Prune(time.Now())
		}
	}()

	svc := complaint.NewService(
		store,
		limiter,
		validation.New(cfg.MinDescriptionLen, cfg.MaxDescriptionLen, nil),
	)
	svc.LookupExact = cfg.EntityLookup == config.LookupExact

	h := handler.NewHandler(svc, store, setupAudit(cfg), cfg.DBConnTimeout)
	if cfg.ChallengeEnabled {
		issuer := challenge.NewIssuer(cfg.ChallengeSecret, cfg.ChallengeTTL)
		svc.Challenges = issuer
		h.Challenges = issuer
		log.Println("INFO: Anti-bot math challenge enabled.")
	}

	obs.Init()

	r := gin.Default()
	r.Use(
		middleware.SecurityHeaders(),
		middleware.MaxBodyBytes(1<<20),
		middleware.GlobalRateLimit(cfg.GlobalRatePerSecond, cfg.GlobalRateBurst),
		obs.Instrument(),
	)
	h.Register(r)
	r.GET("/metrics", gin.WrapH(obs.Handler()))

	server := &http.Server{
		Addr:           cfg.ListenAddr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Printf("INFO: Listening on %s", cfg.ListenAddr)
	log.Fatal(server.ListenAndServe())
}
