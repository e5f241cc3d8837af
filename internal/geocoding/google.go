package geocoding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/UnknownOlympus/beacon/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleProvider geocodes addresses with the Google Maps API, restricted to one country.
type GoogleProvider struct {
	client GoogleAPIClient // client is the Google Maps API client
	region string          // region is the lowercase ccTLD, e.g. "cr"
	log    *slog.Logger    // log is the logger for logging operations
}

// GoogleAPIClient is the subset of *maps.Client used by GoogleProvider.
type GoogleAPIClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// ErrEmptyResponse is returned when the Google Maps API responds with an empty result.
var ErrEmptyResponse = errors.New("get empty response from Google Maps API")

// NewGoogleProvider wraps a Google Maps client.
func NewGoogleProvider(client GoogleAPIClient, region string, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, region: strings.ToLower(region), log: log}
}

// Geocode returns the coordinates of the first match for the address.
func (gp *GoogleProvider) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	gp.log.DebugContext(ctx, "Geocoding using Google Maps", "address", address, "region", gp.region)

	req := maps.GeocodingRequest{Address: address}
	if gp.region != "" {
		req.Region = gp.region
		req.Components = map[maps.Component]string{maps.ComponentCountry: strings.ToUpper(gp.region)}
	}

	geocodeResponse, err := gp.client.Geocode(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("failed to geocode address: %w", err)
	}

	if len(geocodeResponse) == 0 {
		return nil, ErrEmptyResponse
	}
	location := geocodeResponse[0].Geometry.Location

	return &models.Coordinates{Latitude: location.Lat, Longitude: location.Lng}, nil
}
