package route

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/beacon/internal/coords"
	"github.com/UnknownOlympus/beacon/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleProvider builds routes with the Google Maps Directions API.
type GoogleProvider struct {
	client DirectionsClient // client is the Google Maps API client
	region string           // region biases results towards a ccTLD, e.g. "cr"
	log    *slog.Logger     // log is the logger for logging operations
}

// DirectionsClient is the subset of *maps.Client used by GoogleProvider.
type DirectionsClient interface {
	Directions(ctx context.Context, r *maps.DirectionsRequest) ([]maps.Route, []maps.GeocodedWaypoint, error)
}

// NewGoogleProvider creates a GoogleProvider around an existing client.
func NewGoogleProvider(client DirectionsClient, region string, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, region: region, log: log}
}

// Route requests a driving route and returns the decoded overview polyline.
func (gp *GoogleProvider) Route(ctx context.Context, from, to models.Coordinates) ([]models.Coordinates, error) {
	req := &maps.DirectionsRequest{
		Origin:      coords.Format(from),
		Destination: coords.Format(to),
		Mode:        maps.TravelModeDriving,
		Region:      gp.region,
	}

	gp.log.DebugContext(ctx, "Requesting route from Google Maps", "origin", req.Origin, "destination", req.Destination)

	routes, _, err := gp.client.Directions(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to request directions: %w", err)
	}
	if len(routes) == 0 {
		return nil, ErrEmptyRoute
	}

	path, err := routes[0].OverviewPolyline.Decode()
	if err != nil {
		return nil, fmt.Errorf("failed to decode route polyline: %w", err)
	}
	if len(path) == 0 {
		return nil, ErrEmptyRoute
	}

	waypoints := make([]models.Coordinates, 0, len(path))
	for _, p := range path {
		waypoints = append(waypoints, models.Coordinates{Latitude: p.Lat, Longitude: p.Lng})
	}

	gp.log.DebugContext(ctx, "Google Maps route received", "waypoints", len(waypoints))

	return waypoints, nil
}
