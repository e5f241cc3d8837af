package route

import (
	"context"
	"errors"

	"github.com/UnknownOlympus/beacon/internal/models"
)

// ErrEmptyRoute is returned when a routing API answers without a usable path.
var ErrEmptyRoute = errors.New("routing API returned an empty route")

// Provider computes an ordered list of waypoints from one point to another.
// The first waypoint is the origin and the last is the destination.
type Provider interface {
	Route(ctx context.Context, from, to models.Coordinates) ([]models.Coordinates, error)
}
