package profiles

import (
	"context"

	"github.com/tokomonggo/server/internal/server/models"
)

type Repository interface {
	GetByAuthID(ctx context.Context, authID string) (*models.Profile, error)
	Insert(ctx context.Context, profile *models.Profile) (*models.Profile, error)
	Update(ctx context.Context, authID string, name, location, avatar string) (*models.Profile, error)
	DisplayName(ctx context.Context, ownerID string) (string, error)
}
