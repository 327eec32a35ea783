package app

import (
	"fmt"
	"log/slog"

	"carpool/internal/config"
	"carpool/internal/events"
)

// NewPublisher builds the lifecycle event publisher selected by cfg.Broker.
func NewPublisher(cfg config.EventsConfig, logger *slog.Logger) (events.Publisher, error) {
	switch cfg.Broker {
	case config.BrokerKafka:
		logger.Info("publishing match events to Kafka", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
		return events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic), nil

	case config.BrokerRabbitMQ:
		p, err := events.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQExchange)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
		}
		logger.Info("publishing match events to RabbitMQ", "exchange", cfg.RabbitMQExchange)
		return p, nil

	case config.BrokerNone, "":
		return events.NopPublisher{}, nil

	default:
		return nil, fmt.Errorf("unknown events broker %q", cfg.Broker)
	}
}
