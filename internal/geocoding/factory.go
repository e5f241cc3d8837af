package geocoding

import (
	"errors"
	"fmt"
	"log/slog"

	"googlemaps.github.io/maps"
)

// ProviderType selects the service used to geocode destination addresses.
type ProviderType string

const (
	// ProviderTypeGoogle uses the Google Maps Geocoding API and needs an API key.
	ProviderTypeGoogle ProviderType = "google"
	// ProviderTypeNominatim uses the public OpenStreetMap Nominatim instance.
	ProviderTypeNominatim ProviderType = "nominatim"
)

// ProviderConfig holds configuration for creating a geocoding provider.
type ProviderConfig struct {
	Type      ProviderType // Type of provider to create
	APIKey    string       // API key (Google only)
	Region    string       // Country code results are restricted to, e.g. "cr"
	RateLimit int          // Requests per second (Google only)
	Logger    *slog.Logger // Logger for the provider
}

// NewProvider creates the geocoding provider named by config.Type.
func NewProvider(config ProviderConfig) (Provider, error) {
	switch config.Type {
	case ProviderTypeGoogle:
		return newGoogleProvider(config)
	case ProviderTypeNominatim:
		return NewNominatimProvider(config.Region, config.Logger), nil
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", config.Type)
	}
}

func newGoogleProvider(config ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("API key is required for Google provider")
	}

	opts := []maps.ClientOption{maps.WithAPIKey(config.APIKey)}
	if config.RateLimit > 0 {
		opts = append(opts, maps.WithRateLimit(config.RateLimit))
	}

	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return NewGoogleProvider(client, config.Region, config.Logger), nil
}
