package listings

import (
	"context"

	"github.com/tokomonggo/server/internal/server/models"
)

// SearchCriteria is an arbitrary subset of listing filters. Zero-valued
// fields impose no constraint; the geo filter applies only when Latitude,
// Longitude and RadiusKm are all set.
type SearchCriteria struct {
	Text        string
	Category    string
	Subcategory string
	Province    string
	Regency     string
	Latitude    *float64
	Longitude   *float64
	RadiusKm    *float64
}

type Repository interface {
	Create(ctx context.Context, listing *models.Listing) (*models.Listing, error)
	GetByID(ctx context.Context, id string) (*models.Listing, error)
	Search(ctx context.Context, criteria SearchCriteria) ([]*models.Listing, error)
}
