package main

import (
	"context"
	"log"

	"dashboard-service/internal/config"
	"dashboard-service/internal/consumer"
)

func main() {
	cfg := config.Load()
	if cfg.KafkaBrokers == "" {
		log.Fatal("KAFKA_BROKERS must be set to run the audit consumer")
	}

	c := consumer.NewConsumer(cfg.KafkaBrokers, "admin-activity")
	if err := c.Start(context.Background()); err != nil {
		log.Fatal(err)
	}
}
