package route

import (
	"context"

	"github.com/UnknownOlympus/beacon/internal/models"
)

// StraightProvider connects origin and destination with a single segment.
// It needs no network access and is used when no routing API is configured.
type StraightProvider struct{}

// NewStraightProvider creates a StraightProvider.
func NewStraightProvider() *StraightProvider {
	return &StraightProvider{}
}

// Route returns the two endpoints as the whole path.
func (StraightProvider) Route(_ context.Context, from, to models.Coordinates) ([]models.Coordinates, error) {
	return []models.Coordinates{from, to}, nil
}
