package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/UnknownOlympus/beacon/internal/models"
)

const (
	nominatimBaseURL   = "https://nominatim.openstreetmap.org/search"
	nominatimUserAgent = "Beacon-Tracking-Service/1.0 (https://github.com/UnknownOlympus/beacon)"
	nominatimLanguages = "es,en"
)

// NominatimProvider implements the Provider interface using OpenStreetMap's Nominatim API.
// The public instance allows one request per second.
type NominatimProvider struct {
	client    HTTPClient   // HTTP client for making requests
	baseURL   string       // Base URL for the Nominatim API
	region    string       // Country code passed as countrycodes
	log       *slog.Logger // Logger for logging operations
	userAgent string       // required by the Nominatim usage policy
}

// HTTPClient defines the interface for making HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// nominatimResponse represents the JSON response from Nominatim API.
type nominatimResponse struct {
	Lat string `json:"lat"` // Latitude as string
	Lon string `json:"lon"` // Longitude as string
}

// Common errors for Nominatim provider.
var (
	ErrNominatimEmptyResponse = errors.New("nominatim API returned empty response")
	ErrNominatimInvalidCoords = errors.New("nominatim API returned invalid coordinates")
)

// NewNominatimProvider creates a Nominatim provider for the public endpoint.
func NewNominatimProvider(region string, log *slog.Logger) *NominatimProvider {
	const timeout = 10

	return NewNominatimProviderWithClient(&http.Client{Timeout: timeout * time.Second}, region, log)
}

// NewNominatimProviderWithClient creates a Nominatim provider with a custom HTTP client.
func NewNominatimProviderWithClient(client HTTPClient, region string, log *slog.Logger) *NominatimProvider {
	return &NominatimProvider{
		client:    client,
		baseURL:   nominatimBaseURL,
		region:    strings.ToLower(region),
		log:       log,
		userAgent: nominatimUserAgent,
	}
}

// Geocode converts an address to coordinates.
//
// Addresses typed by operators are often too specific ("Barrio X, 200m norte de la iglesia,
// casa 4"), so when a query returns nothing the trailing comma-separated parts are dropped
// one at a time.
func (np *NominatimProvider) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	np.log.DebugContext(ctx, "Geocoding using Nominatim", "address", address)

	variations := addressFallbacks(address)
	for level, variation := range variations {
		coords, err := np.search(ctx, variation)
		if err == nil {
			if level > 0 {
				np.log.InfoContext(ctx, "Geocoded using fallback address",
					"original", address, "fallback", variation, "fallback_level", level)
			}
			return coords, nil
		}
		if !errors.Is(err, ErrNominatimEmptyResponse) {
			return nil, err
		}
	}

	np.log.WarnContext(ctx, "All address fallbacks exhausted", "address", address, "variations_tried", len(variations))

	return nil, ErrNominatimEmptyResponse
}

// addressFallbacks returns the address followed by progressively shorter prefixes.
func addressFallbacks(address string) []string {
	parts := strings.Split(address, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	variations := make([]string, 0, len(parts))
	for end := len(parts); end > 0; end-- {
		variation := strings.Join(parts[:end], ", ")
		if variation == "" {
			continue
		}
		variations = append(variations, variation)
	}
	if len(variations) == 0 {
		variations = append(variations, address)
	}

	return variations
}

// search performs a single Nominatim request without fallback logic.
func (np *NominatimProvider) search(ctx context.Context, address string) (*models.Coordinates, error) {
	reqURL, err := url.Parse(np.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1")
	if np.region != "" {
		query.Set("countrycodes", np.region)
	}
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", np.userAgent)
	req.Header.Set("Accept-Language", nominatimLanguages)

	resp, err := np.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute geocoding request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		np.log.ErrorContext(ctx, "Nominatim API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("nominatim API returned status %d: %s", resp.StatusCode, string(body))
	}

	var results []nominatimResponse
	if err = json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("failed to decode nominatim response: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrNominatimEmptyResponse
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid latitude: %s", ErrNominatimInvalidCoords, results[0].Lat)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid longitude: %s", ErrNominatimInvalidCoords, results[0].Lon)
	}

	return &models.Coordinates{Latitude: lat, Longitude: lon}, nil
}
