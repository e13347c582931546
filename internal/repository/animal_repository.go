// Package repository implements animal persistence with GORM.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adotepet/service-adoption/internal/domain"
	animalDomain "github.com/adotepet/service-adoption/internal/domain/animal"
)

// AnimalModel is the GORM model for the animals table.
type AnimalModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerUserID string    `gorm:"type:varchar(64);not null;index"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Description string    `gorm:"type:text"`
	Type        string    `gorm:"type:varchar(10);not null"`
	Gender      string    `gorm:"type:varchar(10);not null"`
	Race        string    `gorm:"type:varchar(100);not null"`
	Status      string    `gorm:"type:varchar(20);not null;default:'AVAILABLE';index"`
	Version     int64     `gorm:"not null;default:1"`
	CreatedAt   time.Time `gorm:"type:timestamptz;not null;default:now()"`
	UpdatedAt   time.Time `gorm:"type:timestamptz;not null;default:now()"`

	Pictures []PictureModel `gorm:"foreignKey:AnimalID;constraint:OnDelete:CASCADE"`
}

func (AnimalModel) TableName() string { return "animals" }

// PictureModel is the GORM model for the animal_pictures table. Position
// records upload order.
type PictureModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	AnimalID uuid.UUID `gorm:"type:uuid;not null;index"`
	Position int       `gorm:"not null"`
	Data     []byte    `gorm:"type:bytea;not null"`
}

func (PictureModel) TableName() string { return "animal_pictures" }

// GormAnimalRepository implements animal.Repository using GORM.
type GormAnimalRepository struct {
	db *gorm.DB
}

// NewGormAnimalRepository creates a new GormAnimalRepository.
func NewGormAnimalRepository(db *gorm.DB) *GormAnimalRepository {
	return &GormAnimalRepository{db: db}
}

// FindByID loads a listing with its pictures in upload order.
func (r *GormAnimalRepository) FindByID(ctx context.Context, id uuid.UUID) (*animalDomain.Animal, error) {
	var model AnimalModel
	err := r.db.WithContext(ctx).
		Preload("Pictures", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("animal", id.String())
		}
		return nil, err
	}
	return toAnimalDomain(&model), nil
}

// FindByOwner returns every listing owned by the given user.
func (r *GormAnimalRepository) FindByOwner(ctx context.Context, ownerUserID string) ([]*animalDomain.Animal, error) {
	var models []AnimalModel
	err := r.db.WithContext(ctx).
		Preload("Pictures", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("owner_user_id = ?", ownerUserID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toAnimalDomains(models), nil
}

// FindAvailable returns available listings, optionally filtered by name.
func (r *GormAnimalRepository) FindAvailable(ctx context.Context, nameFilter string, page, limit int) ([]*animalDomain.Animal, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&AnimalModel{}).
		Where("status = ?", string(animalDomain.StatusAvailable))
	if nameFilter != "" {
		query = query.Where("name ILIKE ?", "%"+nameFilter+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []AnimalModel
	err := query.
		Preload("Pictures", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}
	return toAnimalDomains(models), total, nil
}

// FindAll returns every listing, paginated.
func (r *GormAnimalRepository) FindAll(ctx context.Context, page, limit int) ([]*animalDomain.Animal, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&AnimalModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []AnimalModel
	err := r.db.WithContext(ctx).
		Preload("Pictures", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}
	return toAnimalDomains(models), total, nil
}

// Save persists a new listing and its pictures in one transaction.
func (r *GormAnimalRepository) Save(ctx context.Context, a *animalDomain.Animal) error {
	model := toAnimalModel(a)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Pictures").Create(model).Error; err != nil {
			return err
		}
		for i := range model.Pictures {
			if err := tx.Create(&model.Pictures[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Update writes the mutable listing columns guarded by the version column.
func (r *GormAnimalRepository) Update(ctx context.Context, a *animalDomain.Animal) error {
	previousVersion := a.Version() - 1
	res := r.db.WithContext(ctx).
		Model(&AnimalModel{}).
		Where("id = ? AND version = ?", a.ID(), previousVersion).
		Updates(map[string]any{
			"status":     string(a.Status()),
			"version":    a.Version(),
			"updated_at": a.UpdatedAt(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NewConflictError("animal was modified by another transaction")
	}
	return nil
}

// CountByStatus returns listing counts grouped by status.
func (r *GormAnimalRepository) CountByStatus(ctx context.Context) (map[animalDomain.Status]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&AnimalModel{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[animalDomain.Status]int64, len(rows))
	for _, row := range rows {
		counts[animalDomain.Status(row.Status)] = row.Count
	}
	return counts, nil
}

// --- Conversions ---

func toAnimalModel(a *animalDomain.Animal) *AnimalModel {
	pictures := make([]PictureModel, len(a.Pictures()))
	for i, p := range a.Pictures() {
		pictures[i] = PictureModel{
			ID:       p.ID,
			AnimalID: a.ID(),
			Position: p.Position,
			Data:     p.Data,
		}
	}
	return &AnimalModel{
		ID:          a.ID(),
		OwnerUserID: a.OwnerUserID(),
		Name:        a.Name(),
		Description: a.Description(),
		Type:        string(a.AnimalType()),
		Gender:      string(a.Gender()),
		Race:        a.Race(),
		Status:      string(a.Status()),
		Version:     a.Version(),
		CreatedAt:   a.CreatedAt(),
		UpdatedAt:   a.UpdatedAt(),
		Pictures:    pictures,
	}
}

func toAnimalDomain(m *AnimalModel) *animalDomain.Animal {
	pictures := make([]animalDomain.Picture, len(m.Pictures))
	for i, p := range m.Pictures {
		pictures[i] = animalDomain.Picture{ID: p.ID, Position: p.Position, Data: p.Data}
	}
	return animalDomain.Reconstruct(
		m.ID,
		m.OwnerUserID, m.Name, m.Description, m.Race,
		animalDomain.Type(m.Type),
		animalDomain.Gender(m.Gender),
		animalDomain.Status(m.Status),
		pictures,
		m.Version,
		m.CreatedAt, m.UpdatedAt,
	)
}

func toAnimalDomains(models []AnimalModel) []*animalDomain.Animal {
	animals := make([]*animalDomain.Animal, len(models))
	for i := range models {
		animals[i] = toAnimalDomain(&models[i])
	}
	return animals
}
