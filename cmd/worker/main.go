package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/config"
	"storefront/internal/consumer"
	"storefront/internal/logger"
	"storefront/internal/sender"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// The worker consumes email events published by the storefront (order
// confirmations) and delivers them over SMTP.
func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)

	if len(cfg.Kafka.Brokers) == 0 {
		log.Fatal("no kafka brokers configured (KAFKA_BROKERS)")
	}
	if cfg.SMTP.Host == "" {
		log.Fatal("no smtp host configured (SMTP_HOST)")
	}

	emailSender := sender.NewEmailSender(&cfg.SMTP)
	cons := consumer.NewKafkaEmailConsumer(cfg.Kafka.Brokers, "storefront-worker", cfg.Kafka.Topic, emailSender, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := cons.Run(ctx); err != nil {
			log.Error("consumer stopped", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Info("shutdown signal received")
	cancel()
	_ = cons.Close()
	time.Sleep(200 * time.Millisecond)
}
