package event

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/segmentio/kafka-go"

	"github.com/khoahotran/profile-directory/internal/application/service"
	"github.com/khoahotran/profile-directory/internal/config"
	"github.com/khoahotran/profile-directory/internal/domain/profile"
	"github.com/khoahotran/profile-directory/pkg/logger"
)

const TopicProfileEvents = "profile.events"

type KafkaProducerClient struct {
	ProfileEventsWriter *kafka.Writer
	logger              logger.Logger
}

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	// writer 'profile.events'
	profileWriter := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  TopicProfileEvents,
		Balancer:               &kafka.Hash{},
		WriteTimeout:           10 * time.Second,
		AllowAutoTopicCreation: true,
	}

	log.Info("Initialize Kafka Producers successfully.")

	return &KafkaProducerClient{
		ProfileEventsWriter: profileWriter,
		logger:              log,
	}, nil
}

// PublishProfileEvent keys messages by profile id so every event of one
// profile lands on the same partition, in order.
func (c *KafkaProducerClient) PublishProfileEvent(ctx context.Context, evt profile.Event) error {
	msg, err := NewProfileMessage(evt)
	if err != nil {
		return err
	}
	if err := c.ProfileEventsWriter.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write %s event: %w", evt.Type, err)
	}
	return nil
}

func (c *KafkaProducerClient) Close() {
	if c.ProfileEventsWriter != nil {
		if err := c.ProfileEventsWriter.Close(); err != nil {
			c.logger.Error("Failed to close Kafka writer", err)
		}
	}
	c.logger.Info("Closed Kafka Producers")
}

func NewProfileMessage(evt profile.Event) (kafka.Message, error) {
	value, err := json.Marshal(evt)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal profile event: %w", err)
	}
	return kafka.Message{
		Key:   []byte(evt.ProfileID),
		Value: value,
		Time:  evt.OccurredAt,
	}, nil
}

func DecodeProfileEvent(msg kafka.Message) (profile.Event, error) {
	var evt profile.Event
	if err := json.Unmarshal(msg.Value, &evt); err != nil {
		return profile.Event{}, fmt.Errorf("unmarshal profile event: %w", err)
	}
	return evt, nil
}

type noopPublisher struct {
	logger logger.Logger
}

// NewNoopPublisher is used when no brokers are configured.
func NewNoopPublisher(log logger.Logger) service.EventPublisher {
	return &noopPublisher{logger: log}
}

func (p *noopPublisher) PublishProfileEvent(_ context.Context, evt profile.Event) error {
	p.logger.Debug("Kafka disabled, dropping profile event")
	return nil
}
