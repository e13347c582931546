// Package animal holds the adoptable-animal listing aggregate.
package animal

import (
	"time"

	"github.com/google/uuid"

	"github.com/adotepet/service-adoption/internal/domain"
)

// Type is the species of a listed animal.
type Type string

const (
	TypeDog   Type = "DOG"
	TypeCat   Type = "CAT"
	TypeBird  Type = "BIRD"
	TypeOther Type = "OTHER"
)

// IsValid returns true if the type is a recognized animal type.
func (t Type) IsValid() bool {
	switch t {
	case TypeDog, TypeCat, TypeBird, TypeOther:
		return true
	}
	return false
}

// Gender is the sex of a listed animal.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// IsValid returns true if the gender is a recognized value.
func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale
}

// Picture is one uploaded photo of a listing. Position preserves the
// original upload order.
type Picture struct {
	ID       uuid.UUID
	Position int
	Data     []byte
}

// Animal is the aggregate root for an adoptable-animal listing.
type Animal struct {
	id          uuid.UUID
	ownerUserID string
	name        string
	description string
	animalType  Type
	gender      Gender
	race        string
	status      Status
	pictures    []Picture
	version     int64
	createdAt   time.Time
	updatedAt   time.Time
}

// NewAnimal creates a new listing with status=AVAILABLE. Pictures keep their
// slice order as upload order.
func NewAnimal(
	ownerUserID, name, description, race string,
	animalType Type,
	gender Gender,
	pictures [][]byte,
) (*Animal, error) {
	if len(name) < 2 {
		return nil, domain.NewValidationError("animal name must have at least 2 characters")
	}
	if race == "" {
		return nil, domain.NewValidationError("animal race is required")
	}
	if !animalType.IsValid() {
		return nil, domain.NewValidationError("invalid animal type: " + string(animalType))
	}
	if !gender.IsValid() {
		return nil, domain.NewValidationError("invalid animal gender: " + string(gender))
	}

	pics := make([]Picture, len(pictures))
	for i, data := range pictures {
		pics[i] = Picture{ID: uuid.New(), Position: i, Data: data}
	}

	now := time.Now().UTC()
	return &Animal{
		id:          uuid.New(),
		ownerUserID: ownerUserID,
		name:        name,
		description: description,
		animalType:  animalType,
		gender:      gender,
		race:        race,
		status:      StatusAvailable,
		pictures:    pics,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct rebuilds an Animal from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	ownerUserID, name, description, race string,
	animalType Type,
	gender Gender,
	status Status,
	pictures []Picture,
	version int64,
	createdAt, updatedAt time.Time,
) *Animal {
	return &Animal{
		id:          id,
		ownerUserID: ownerUserID,
		name:        name,
		description: description,
		animalType:  animalType,
		gender:      gender,
		race:        race,
		status:      status,
		pictures:    pictures,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// --- Getters ---

func (a *Animal) ID() uuid.UUID        { return a.id }
func (a *Animal) OwnerUserID() string  { return a.ownerUserID }
func (a *Animal) Name() string         { return a.name }
func (a *Animal) Description() string  { return a.description }
func (a *Animal) AnimalType() Type     { return a.animalType }
func (a *Animal) Gender() Gender       { return a.gender }
func (a *Animal) Race() string         { return a.race }
func (a *Animal) Status() Status       { return a.status }
func (a *Animal) Pictures() []Picture  { return a.pictures }
func (a *Animal) Version() int64       { return a.version }
func (a *Animal) CreatedAt() time.Time { return a.createdAt }
func (a *Animal) UpdatedAt() time.Time { return a.updatedAt }

// --- Behavior ---

// IsOwnedBy checks whether the listing belongs to the given user.
func (a *Animal) IsOwnedBy(userID string) bool {
	return a.ownerUserID == userID
}

// ChangeStatus moves the listing to the target status. The caller is
// responsible for the ownership check.
func (a *Animal) ChangeStatus(target Status) error {
	if !target.IsValid() {
		return domain.NewValidationError("invalid animal status: " + string(target))
	}
	a.status = target
	a.version++
	a.updatedAt = time.Now().UTC()
	return nil
}

// IsAvailable returns true if the listing is open for adoption.
func (a *Animal) IsAvailable() bool {
	return a.status == StatusAvailable
}
