package route

import (
	"errors"
	"fmt"
	"log/slog"

	"googlemaps.github.io/maps"
)

// ProviderType represents the type of routing provider.
type ProviderType string

const (
	// ProviderTypeGoogle represents the Google Maps Directions API.
	ProviderTypeGoogle ProviderType = "google"
	// ProviderTypeOSRM represents an OSRM routing server.
	ProviderTypeOSRM ProviderType = "osrm"
	// ProviderTypeStraight represents the offline straight-line provider.
	ProviderTypeStraight ProviderType = "straight"
)

// ProviderConfig holds configuration for creating a routing provider.
type ProviderConfig struct {
	Type      ProviderType // Type of provider to create
	APIKey    string       // API key (Google only)
	BaseURL   string       // Server URL (OSRM only)
	Region    string       // Region bias (Google only)
	RateLimit int          // Requests per second
	Logger    *slog.Logger // Logger for the provider
}

// NewProvider creates a routing provider based on the provided configuration.
func NewProvider(config ProviderConfig) (Provider, error) {
	switch config.Type {
	case ProviderTypeGoogle:
		return newGoogleProvider(config)
	case ProviderTypeOSRM:
		return newOSRMProvider(config), nil
	case ProviderTypeStraight:
		return NewStraightProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported route provider type: %s", config.Type)
	}
}

func newGoogleProvider(config ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("API key is required for Google route provider")
	}

	clientOpts := []maps.ClientOption{
		maps.WithAPIKey(config.APIKey),
	}
	if config.RateLimit > 0 {
		clientOpts = append(clientOpts, maps.WithRateLimit(config.RateLimit))
	}

	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return NewGoogleProvider(client, config.Region, config.Logger), nil
}

func newOSRMProvider(config ProviderConfig) Provider {
	// The public demo server asks for at most one request per second.
	if config.RateLimit == 0 {
		config.RateLimit = 1
		config.Logger.Warn("Rate limit for OSRM not set, set a default value", "value", config.RateLimit)
	}

	return NewOSRMProvider(config.BaseURL, config.RateLimit, config.Logger)
}
