package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/adotepet/service-adoption/internal/application"
	"github.com/adotepet/service-adoption/internal/domain"
	"github.com/adotepet/service-adoption/internal/domain/animal"
	"github.com/adotepet/service-adoption/internal/platform/kafka"
)

// memRepo is a minimal in-memory animal.Repository for consumer tests.
type memRepo struct {
	animals map[uuid.UUID]*animal.Animal
}

func (r *memRepo) FindByID(_ context.Context, id uuid.UUID) (*animal.Animal, error) {
	a, ok := r.animals[id]
	if !ok {
		return nil, domain.NewNotFoundError("animal", id.String())
	}
	return a, nil
}

func (r *memRepo) FindByOwner(context.Context, string) ([]*animal.Animal, error) {
	return nil, nil
}

func (r *memRepo) FindAvailable(context.Context, string, int, int) ([]*animal.Animal, int64, error) {
	return nil, 0, nil
}

func (r *memRepo) FindAll(context.Context, int, int) ([]*animal.Animal, int64, error) {
	return nil, 0, nil
}

func (r *memRepo) Save(_ context.Context, a *animal.Animal) error {
	r.animals[a.ID()] = a
	return nil
}

func (r *memRepo) Update(_ context.Context, a *animal.Animal) error {
	r.animals[a.ID()] = a
	return nil
}

func (r *memRepo) CountByStatus(context.Context) (map[animal.Status]int64, error) {
	return nil, nil
}

type noopPublisher struct{}

func (noopPublisher) AnimalListed(context.Context, application.AnimalDTO) error {
	return nil
}

func (noopPublisher) AnimalStatusChanged(context.Context, application.AnimalDTO, animal.Status) error {
	return nil
}

func newTestConsumer(t *testing.T) (*AdoptionEventConsumer, *memRepo) {
	t.Helper()
	repo := &memRepo{animals: make(map[uuid.UUID]*animal.Animal)}
	svc := application.NewAnimalService(repo, noopPublisher{}, zap.NewNop())
	// The broker address is never dialed; handleMessage is driven directly.
	c := NewAdoptionEventConsumer([]string{"localhost:9092"}, "test-group", svc, zap.NewNop())
	return c, repo
}

func adoptionMessage(t *testing.T, eventType string, evt any) kafkago.Message {
	t.Helper()
	ce, err := kafka.NewCloudEvent("service-matching", eventType, evt)
	require.NoError(t, err)
	value, err := json.Marshal(ce)
	require.NoError(t, err)
	return kafkago.Message{Topic: TopicAdoptionEvents, Value: value}
}

func TestHandleMessage_AdoptionCompletedMarksAnimalAdopted(t *testing.T) {
	c, repo := newTestConsumer(t)

	a, err := animal.NewAnimal("owner-1", "Rex", "", "Boxer", animal.TypeDog, animal.GenderMale, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), a))

	msg := adoptionMessage(t, TypeAdoptionCompleted, AdoptionCompletedEvent{
		AnimalID:      a.ID(),
		OwnerUserID:   "owner-1",
		AdopterUserID: "adopter-9",
		OccurredAt:    time.Now().UTC(),
	})

	require.NoError(t, c.handleMessage(context.Background(), msg))
	assert.Equal(t, animal.StatusAdopted, repo.animals[a.ID()].Status())
}

func TestHandleMessage_UnknownAnimalIsSkippedWithoutRetry(t *testing.T) {
	c, _ := newTestConsumer(t)

	msg := adoptionMessage(t, TypeAdoptionCompleted, AdoptionCompletedEvent{
		AnimalID:    uuid.New(),
		OwnerUserID: "owner-1",
	})

	// A business rejection is final; the handler must not ask for a retry.
	assert.NoError(t, c.handleMessage(context.Background(), msg))
}

func TestHandleMessage_MalformedEnvelopeIsSkipped(t *testing.T) {
	c, _ := newTestConsumer(t)

	msg := kafkago.Message{Topic: TopicAdoptionEvents, Value: []byte("not json")}
	assert.NoError(t, c.handleMessage(context.Background(), msg))
}

func TestHandleMessage_UnhandledTypeIsIgnored(t *testing.T) {
	c, repo := newTestConsumer(t)

	a, err := animal.NewAnimal("owner-1", "Rex", "", "Boxer", animal.TypeDog, animal.GenderMale, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), a))

	msg := adoptionMessage(t, "adoption.requested", AdoptionCompletedEvent{AnimalID: a.ID()})
	require.NoError(t, c.handleMessage(context.Background(), msg))
	assert.Equal(t, animal.StatusAvailable, repo.animals[a.ID()].Status())
}
