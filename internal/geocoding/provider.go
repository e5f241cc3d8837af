package geocoding

import (
	"context"

	"github.com/UnknownOlympus/beacon/internal/models"
)

// Provider resolves a free-text address to coordinates.
type Provider interface {
	Geocode(ctx context.Context, address string) (*models.Coordinates, error)
}
