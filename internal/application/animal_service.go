// Package application implements the animal lifecycle use cases. The two
// lifecycle operations return a result.Result for expected domain outcomes
// and reserve the error return for unexpected faults, so handlers can map
// the two channels to 400 and 500 without inspecting error text.
package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/adotepet/service-adoption/internal/domain"
	"github.com/adotepet/service-adoption/internal/domain/animal"
	"github.com/adotepet/service-adoption/internal/result"
	"github.com/adotepet/service-adoption/internal/validation"
)

// CreateAnimalCommand carries the normalized creation payload. Pictures are
// the raw uploaded bytes in upload order; an empty upload is an empty slice,
// never nil semantics.
type CreateAnimalCommand struct {
	Input    validation.CreateAnimalInput
	UserID   string
	Pictures [][]byte
}

// UpdateStatusCommand carries a status transition request. All three fields
// arrive untrusted; the service validates them.
type UpdateStatusCommand struct {
	ID     string
	Status string
	UserID string
}

// Failure is the body carried by a failure Result.
type Failure struct {
	Error string `json:"error"`
}

// AnimalDTO is the API representation of a listing.
type AnimalDTO struct {
	ID           uuid.UUID   `json:"id"`
	OwnerUserID  string      `json:"owner_user_id"`
	Name         string      `json:"name"`
	Description  string      `json:"description,omitempty"`
	Type         string      `json:"type"`
	Gender       string      `json:"gender"`
	Race         string      `json:"race"`
	Status       string      `json:"status"`
	PictureIDs   []uuid.UUID `json:"picture_ids"`
	PictureCount int         `json:"picture_count"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// StatsDTO aggregates listing counts by status.
type StatsDTO struct {
	Total    int64                   `json:"total"`
	ByStatus map[animal.Status]int64 `json:"by_status"`
}

// EventPublisher publishes listing lifecycle events.
type EventPublisher interface {
	AnimalListed(ctx context.Context, a AnimalDTO) error
	AnimalStatusChanged(ctx context.Context, a AnimalDTO, previous animal.Status) error
}

// AnimalService implements the listing lifecycle use cases.
type AnimalService struct {
	repo      animal.Repository
	publisher EventPublisher
	logger    *zap.Logger
}

// NewAnimalService creates a new AnimalService.
func NewAnimalService(repo animal.Repository, publisher EventPublisher, logger *zap.Logger) *AnimalService {
	return &AnimalService{repo: repo, publisher: publisher, logger: logger}
}

// Create persists a new listing and publishes an animal-listed event.
// Domain rejections come back as a failure Result; only infrastructure
// faults use the error return.
func (s *AnimalService) Create(ctx context.Context, cmd CreateAnimalCommand) (result.Result, error) {
	a, err := animal.NewAnimal(
		cmd.UserID,
		cmd.Input.Name,
		cmd.Input.Description,
		cmd.Input.Race,
		cmd.Input.Type,
		cmd.Input.Gender,
		cmd.Pictures,
	)
	if err != nil {
		if de, ok := domain.AsDomainError(err); ok {
			return result.Fail(Failure{Error: de.Message}), nil
		}
		return result.Result{}, err
	}

	if err := s.repo.Save(ctx, a); err != nil {
		return result.Result{}, fmt.Errorf("failed to save animal: %w", err)
	}

	dto := toAnimalDTO(a)
	if err := s.publisher.AnimalListed(ctx, dto); err != nil {
		// The listing is already durable; event delivery must not fail the request.
		s.logger.Error("failed to publish animal listed event",
			zap.String("animal_id", a.ID().String()),
			zap.Error(err),
		)
	}

	s.logger.Info("animal listed",
		zap.String("animal_id", a.ID().String()),
		zap.String("owner_user_id", cmd.UserID),
		zap.Int("pictures", len(cmd.Pictures)),
	)
	return result.Ok(dto), nil
}

// UpdateStatus transitions a listing's status after checking that the
// acting user owns it.
func (s *AnimalService) UpdateStatus(ctx context.Context, cmd UpdateStatusCommand) (result.Result, error) {
	target, err := animal.ParseStatus(cmd.Status)
	if err != nil {
		return result.Fail(Failure{Error: err.Error()}), nil
	}

	id, err := uuid.Parse(cmd.ID)
	if err != nil {
		return result.Fail(Failure{Error: fmt.Sprintf("animal %s not found", cmd.ID)}), nil
	}

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if de, ok := domain.AsDomainError(err); ok {
			return result.Fail(Failure{Error: de.Message}), nil
		}
		return result.Result{}, fmt.Errorf("failed to load animal: %w", err)
	}

	if !a.IsOwnedBy(cmd.UserID) {
		return result.Fail(Failure{Error: "only the owner can change this animal's status"}), nil
	}

	previous := a.Status()
	if err := a.ChangeStatus(target); err != nil {
		if de, ok := domain.AsDomainError(err); ok {
			return result.Fail(Failure{Error: de.Message}), nil
		}
		return result.Result{}, err
	}

	if err := s.repo.Update(ctx, a); err != nil {
		if de, ok := domain.AsDomainError(err); ok {
			return result.Fail(Failure{Error: de.Message}), nil
		}
		return result.Result{}, fmt.Errorf("failed to update animal: %w", err)
	}

	dto := toAnimalDTO(a)
	if err := s.publisher.AnimalStatusChanged(ctx, dto, previous); err != nil {
		s.logger.Error("failed to publish status changed event",
			zap.String("animal_id", a.ID().String()),
			zap.Error(err),
		)
	}

	s.logger.Info("animal status changed",
		zap.String("animal_id", a.ID().String()),
		zap.String("from", previous.String()),
		zap.String("to", target.String()),
	)
	return result.Ok(dto), nil
}

// Get returns a single listing by id.
func (s *AnimalService) Get(ctx context.Context, id uuid.UUID) (*AnimalDTO, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toAnimalDTO(a)
	return &dto, nil
}

// ListAvailable returns available listings, optionally filtered by name.
func (s *AnimalService) ListAvailable(ctx context.Context, nameFilter string, page, limit int) ([]AnimalDTO, int64, error) {
	animals, total, err := s.repo.FindAvailable(ctx, nameFilter, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list animals: %w", err)
	}
	return toAnimalDTOs(animals), total, nil
}

// ListMine returns all listings owned by the given user.
func (s *AnimalService) ListMine(ctx context.Context, ownerUserID string) ([]AnimalDTO, error) {
	animals, err := s.repo.FindByOwner(ctx, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owner animals: %w", err)
	}
	return toAnimalDTOs(animals), nil
}

// ListAll returns every listing, for the admin view.
func (s *AnimalService) ListAll(ctx context.Context, page, limit int) ([]AnimalDTO, int64, error) {
	animals, total, err := s.repo.FindAll(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list all animals: %w", err)
	}
	return toAnimalDTOs(animals), total, nil
}

// Stats returns listing counts grouped by status.
func (s *AnimalService) Stats(ctx context.Context) (*StatsDTO, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count animals: %w", err)
	}
	stats := &StatsDTO{ByStatus: counts}
	for _, n := range counts {
		stats.Total += n
	}
	return stats, nil
}

func toAnimalDTO(a *animal.Animal) AnimalDTO {
	pictureIDs := make([]uuid.UUID, len(a.Pictures()))
	for i, p := range a.Pictures() {
		pictureIDs[i] = p.ID
	}
	return AnimalDTO{
		ID:           a.ID(),
		OwnerUserID:  a.OwnerUserID(),
		Name:         a.Name(),
		Description:  a.Description(),
		Type:         string(a.AnimalType()),
		Gender:       string(a.Gender()),
		Race:         a.Race(),
		Status:       a.Status().String(),
		PictureIDs:   pictureIDs,
		PictureCount: len(pictureIDs),
		CreatedAt:    a.CreatedAt(),
		UpdatedAt:    a.UpdatedAt(),
	}
}

func toAnimalDTOs(animals []*animal.Animal) []AnimalDTO {
	dtos := make([]AnimalDTO, len(animals))
	for i, a := range animals {
		dtos[i] = toAnimalDTO(a)
	}
	return dtos
}
