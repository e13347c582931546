package animal

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for animal listings.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Animal, error)
	FindByOwner(ctx context.Context, ownerUserID string) ([]*Animal, error)
	FindAvailable(ctx context.Context, nameFilter string, page, limit int) ([]*Animal, int64, error)
	FindAll(ctx context.Context, page, limit int) ([]*Animal, int64, error)
	Save(ctx context.Context, a *Animal) error
	Update(ctx context.Context, a *Animal) error
	CountByStatus(ctx context.Context) (map[Status]int64, error)
}
