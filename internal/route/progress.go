package route

import (
	"errors"
	"math"

	"github.com/UnknownOlympus/beacon/internal/models"
)

const (
	minProgress = 0
	maxProgress = 100
	fullTurn    = 360.0
)

// ErrInvalidRoute is returned when a position is requested on a route without waypoints.
var ErrInvalidRoute = errors.New("route has no waypoints")

// VehicleState is the vehicle's location on a route for a given progress value.
type VehicleState struct {
	Position       models.Coordinates // Position is always one of the route waypoints.
	HeadingDegrees float64            // HeadingDegrees is the planar bearing in [0, 360).
	SegmentIndex   int                // SegmentIndex is the index of Position in the waypoint list.
}

// PositionAt maps a progress percentage onto a waypoint of the route.
//
// The vehicle snaps to waypoints[floor((n-1) * p / 100)]; it is never placed between two
// waypoints. Progress outside [0, 100] is clamped. The heading is the planar angle
// atan2(dLat, dLng) from the previous waypoint, or 0 on the first one.
func PositionAt(waypoints []models.Coordinates, progressPercent int) (VehicleState, error) {
	n := len(waypoints)
	if n == 0 {
		return VehicleState{}, ErrInvalidRoute
	}

	progressPercent = max(minProgress, min(progressPercent, maxProgress))

	idx := (n - 1) * progressPercent / maxProgress
	idx = max(0, min(idx, n-1))

	state := VehicleState{
		Position:     waypoints[idx],
		SegmentIndex: idx,
	}
	if idx > 0 {
		state.HeadingDegrees = heading(waypoints[idx-1], waypoints[idx])
	}

	return state, nil
}

// heading returns the planar bearing from one point to the next, normalized to [0, 360).
// Short city-scale segments make the flat approximation acceptable.
func heading(from, to models.Coordinates) float64 {
	dLat := to.Latitude - from.Latitude
	dLng := to.Longitude - from.Longitude

	deg := math.Atan2(dLat, dLng) * 180 / math.Pi
	if deg < 0 {
		deg += fullTurn
	}
	if deg >= fullTurn {
		deg -= fullTurn
	}

	return deg
}
