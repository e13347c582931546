// Package events connects the listing lifecycle to the platform's kafka
// topics.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/adotepet/service-adoption/internal/application"
	"github.com/adotepet/service-adoption/internal/domain/animal"
	"github.com/adotepet/service-adoption/internal/platform/kafka"
)

const (
	// TopicAnimalEvents carries listing lifecycle events published by this
	// service.
	TopicAnimalEvents = "adoption.animal.events"
	// TopicAdoptionEvents carries adoption-workflow events consumed by this
	// service.
	TopicAdoptionEvents = "adoption.events"

	eventSource = "service-adoption"

	TypeAnimalListed        = "animal.listed"
	TypeAnimalStatusChanged = "animal.status_changed"
	TypeAdoptionCompleted   = "adoption.completed"
)

// AnimalListedEvent is published when a new listing is created.
type AnimalListedEvent struct {
	AnimalID    uuid.UUID `json:"animal_id"`
	OwnerUserID string    `json:"owner_user_id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// AnimalStatusChangedEvent is published when a listing changes status.
type AnimalStatusChangedEvent struct {
	AnimalID       uuid.UUID `json:"animal_id"`
	OwnerUserID    string    `json:"owner_user_id"`
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// AdoptionCompletedEvent is consumed when the adoption workflow finalizes an
// adoption for a listing.
type AdoptionCompletedEvent struct {
	AnimalID      uuid.UUID `json:"animal_id"`
	OwnerUserID   string    `json:"owner_user_id"`
	AdopterUserID string    `json:"adopter_user_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// AnimalEventPublisher publishes listing events as CloudEvents.
type AnimalEventPublisher struct {
	producer *kafka.Producer
	logger   *zap.Logger
}

// NewAnimalEventPublisher creates a new AnimalEventPublisher.
func NewAnimalEventPublisher(producer *kafka.Producer, logger *zap.Logger) *AnimalEventPublisher {
	return &AnimalEventPublisher{producer: producer, logger: logger}
}

// AnimalListed publishes an animal.listed event.
func (p *AnimalEventPublisher) AnimalListed(ctx context.Context, a application.AnimalDTO) error {
	evt := AnimalListedEvent{
		AnimalID:    a.ID,
		OwnerUserID: a.OwnerUserID,
		Name:        a.Name,
		Type:        a.Type,
		Status:      a.Status,
		OccurredAt:  time.Now().UTC(),
	}
	ce, err := kafka.NewCloudEvent(eventSource, TypeAnimalListed, evt)
	if err != nil {
		return err
	}
	return p.producer.Publish(ctx, TopicAnimalEvents, a.ID.String(), ce)
}

// AnimalStatusChanged publishes an animal.status_changed event.
func (p *AnimalEventPublisher) AnimalStatusChanged(ctx context.Context, a application.AnimalDTO, previous animal.Status) error {
	evt := AnimalStatusChangedEvent{
		AnimalID:       a.ID,
		OwnerUserID:    a.OwnerUserID,
		PreviousStatus: previous.String(),
		NewStatus:      a.Status,
		OccurredAt:     time.Now().UTC(),
	}
	ce, err := kafka.NewCloudEvent(eventSource, TypeAnimalStatusChanged, evt)
	if err != nil {
		return err
	}
	return p.producer.Publish(ctx, TopicAnimalEvents, a.ID.String(), ce)
}
