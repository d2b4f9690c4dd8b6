package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/config"
	"storefront/internal/cache"
	"storefront/internal/cleanup"
	"storefront/internal/database"
	"storefront/internal/hashing"
	"storefront/internal/logger"
	"storefront/internal/payment"
	"storefront/internal/producer"
	"storefront/internal/repository"
	"storefront/internal/service"
	"storefront/internal/token"
	transport "storefront/internal/transport/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)

	db := database.ConnectDB(&cfg.DB, log)
	defer database.CloseDB(db, log)

	repos := repository.New(db)

	var blacklist service.TokenBlacklist
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
		if err != nil {
			log.Fatal("failed to create redis client", zap.Error(err))
		}
		defer redisClient.Close()
		blacklist = redisClient
		log.Info("redis token blacklist enabled")
	} else {
		log.Info("redis token blacklist disabled")
	}

	var mail service.MailProducer
	if cfg.Kafka.Enabled {
		emailProducer := producer.NewEmailProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer emailProducer.Close()
		mail = emailProducer
		log.Info("kafka email producer enabled", zap.String("topic", cfg.Kafka.Topic))
	} else {
		log.Info("kafka email producer disabled")
	}

	hasher := hashing.NewBcrypt(0)
	tokens := token.NewHSProvider(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience)
	payments := payment.NewClient(cfg.Payment.APIURL, cfg.Payment.APIKey, log)

	accounts := service.NewAccountService(repos.Customers, hasher, tokens, blacklist, cfg.JWT.AccessExp, log)
	shop := service.NewStorefrontService(repos.Products, repos.Reservations, cfg.Payment.Currency, log)
	checkout := service.NewCheckoutService(
		repos.Customers, repos.Products, repos.Reservations,
		payments, mail, cfg.BaseURL, cfg.Payment.Currency, log,
	)

	cleanupSvc := cleanup.NewCleanupService(repos.Reservations, cfg.Cart.TTL, log)
	scheduler := cleanup.NewScheduler(cleanupSvc, 15*time.Minute, log)

	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	defer cleanupCancel()
	scheduler.Start(cleanupCtx)

	r := transport.Router(transport.Deps{
		Accounts:  accounts,
		Shop:      shop,
		Checkout:  checkout,
		Tokens:    tokens,
		Blacklist: blacklist,
		Log:       log,
	})

	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("starting http server", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-quit
	log.Info("shutting down http server...")

	scheduler.Stop()
	cleanupCancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("graceful shutdown failed", zap.Error(err))
	}
	log.Info("http server stopped gracefully")
}
