package config

import (
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/exam-service/internal/events"
)

// EventConfig holds configuration for event publishing
type EventConfig struct {
	Enabled           bool
	Publisher         string // local, kafka or mock
	KafkaBrokers      string
	NotificationTopic string
}

// GetKafkaBrokers returns Kafka brokers as a slice
func (c *EventConfig) GetKafkaBrokers() []string {
	return splitList(c.KafkaBrokers)
}

// CreateEventPublisher creates an event publisher based on configuration.
// The local publisher is returned alongside so the mail worker can subscribe to it;
// it is nil for the other publisher kinds.
func (c *EventConfig) CreateEventPublisher(logger *slog.Logger) (events.EventPublisher, *events.LocalEventPublisher, error) {
	if !c.Enabled {
		logger.Info("Event publishing disabled, using mock publisher")
		return events.NewMockEventPublisher(logger), nil, nil
	}

	switch strings.ToLower(c.Publisher) {
	case "", "local":
		logger.Info("Creating in-process event publisher", "topic", c.NotificationTopic)
		local := events.NewLocalEventPublisher(events.PublisherConfig{
			TopicName: c.NotificationTopic,
			Logger:    logger,
		})
		return local, local, nil
	case "kafka":
		logger.Info("Creating Kafka event publisher",
			"brokers", c.KafkaBrokers,
			"topic", c.NotificationTopic)

		publisher, err := events.NewKafkaEventPublisher(events.PublisherConfig{
			KafkaBrokers: c.GetKafkaBrokers(),
			TopicName:    c.NotificationTopic,
			Logger:       logger,
		})
		return publisher, nil, err
	case "mock":
		logger.Info("Using mock event publisher")
		return events.NewMockEventPublisher(logger), nil, nil
	default:
		logger.Warn("Unknown event publisher type, falling back to mock", "publisher", c.Publisher)
		return events.NewMockEventPublisher(logger), nil, nil
	}
}
