package events

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/adotepet/service-adoption/internal/application"
	"github.com/adotepet/service-adoption/internal/domain/animal"
	"github.com/adotepet/service-adoption/internal/platform/kafka"
)

// AdoptionEventConsumer listens to adoption-workflow events and marks
// listings adopted when an adoption is finalized.
type AdoptionEventConsumer struct {
	consumer *kafka.Consumer
	service  *application.AnimalService
	logger   *zap.Logger
}

// NewAdoptionEventConsumer creates a new AdoptionEventConsumer.
func NewAdoptionEventConsumer(
	brokers []string,
	groupID string,
	service *application.AnimalService,
	logger *zap.Logger,
) *AdoptionEventConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, TopicAdoptionEvents, logger)
	return &AdoptionEventConsumer{
		consumer: consumer,
		service:  service,
		logger:   logger,
	}
}

// Start begins consuming adoption events. Blocks until ctx is cancelled.
func (c *AdoptionEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying kafka consumer.
func (c *AdoptionEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *AdoptionEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	var cloudEvent kafka.CloudEvent
	if err := json.Unmarshal(msg.Value, &cloudEvent); err != nil {
		c.logger.Error("failed to parse cloud event from adoption topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case TypeAdoptionCompleted:
		return c.handleAdoptionCompleted(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled adoption event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *AdoptionEventConsumer) handleAdoptionCompleted(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt AdoptionCompletedEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse AdoptionCompletedEvent data", zap.Error(err))
		return nil // Don't retry malformed data
	}

	c.logger.Info("processing adoption completed event",
		zap.String("animal_id", evt.AnimalID.String()),
		zap.String("adopter_user_id", evt.AdopterUserID),
	)

	res, err := c.service.UpdateStatus(ctx, application.UpdateStatusCommand{
		ID:     evt.AnimalID.String(),
		Status: animal.StatusAdopted.String(),
		UserID: evt.OwnerUserID,
	})
	if err != nil {
		c.logger.Error("failed to mark animal adopted",
			zap.String("animal_id", evt.AnimalID.String()),
			zap.Error(err),
		)
		return err
	}
	if res.IsFailure() {
		// Business rejection (already adopted, unknown listing) is final;
		// retrying cannot change the outcome.
		c.logger.Warn("adoption completed event rejected",
			zap.String("animal_id", evt.AnimalID.String()),
			zap.Any("failure", res.Value()),
		)
		return nil
	}

	c.logger.Info("animal marked adopted", zap.String("animal_id", evt.AnimalID.String()))
	return nil
}
