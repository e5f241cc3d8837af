package route

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/UnknownOlympus/beacon/internal/models"
	"golang.org/x/time/rate"
)

// OSRMBaseURL is the public OSRM demo server.
const OSRMBaseURL = "https://router.project-osrm.org"

// ErrOSRMUnexpectedStatus is returned when OSRM answers with a non-OK code.
var ErrOSRMUnexpectedStatus = errors.New("osrm returned a non-OK status")

// HTTPClient defines the interface for making HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// OSRMProvider builds routes with an OSRM server.
type OSRMProvider struct {
	client  HTTPClient    // HTTP client for making requests
	baseURL string        // Base URL of the OSRM server
	log     *slog.Logger  // Logger for logging operations
	limiter *rate.Limiter // Rate limiter
}

// osrmResponse is the part of the OSRM route response we need.
type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"` // [lon, lat]
		} `json:"geometry"`
	} `json:"routes"`
}

// NewOSRMProvider creates an OSRM provider with its own HTTP client.
func NewOSRMProvider(baseURL string, rateLimit int, log *slog.Logger) *OSRMProvider {
	const timeout = 10

	return NewOSRMProviderWithClient(
		&http.Client{Timeout: timeout * time.Second},
		baseURL,
		rate.NewLimiter(rate.Limit(rateLimit), rateLimit),
		log,
	)
}

// NewOSRMProviderWithClient allows injecting a custom HTTP client and limiter.
func NewOSRMProviderWithClient(client HTTPClient, baseURL string, limiter *rate.Limiter, log *slog.Logger) *OSRMProvider {
	if baseURL == "" {
		baseURL = OSRMBaseURL
	}

	return &OSRMProvider{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log,
		limiter: limiter,
	}
}

// Route requests a driving route with full geojson geometry.
func (op *OSRMProvider) Route(ctx context.Context, from, to models.Coordinates) ([]models.Coordinates, error) {
	const pairLength = 2

	if err := op.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	reqURL := fmt.Sprintf("%s/route/v1/driving/%.6f,%.6f;%.6f,%.6f?overview=full&geometries=geojson",
		op.baseURL, from.Longitude, from.Latitude, to.Longitude, to.Latitude)

	op.log.DebugContext(ctx, "OSRM request URL", "url", reqURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := op.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute route request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		op.log.ErrorContext(ctx, "OSRM API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("osrm API returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed osrmResponse
	if err = json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode osrm response: %w", err)
	}
	if parsed.Code != "Ok" {
		return nil, fmt.Errorf("%w: %s", ErrOSRMUnexpectedStatus, parsed.Code)
	}
	if len(parsed.Routes) == 0 || len(parsed.Routes[0].Geometry.Coordinates) == 0 {
		return nil, ErrEmptyRoute
	}

	points := parsed.Routes[0].Geometry.Coordinates
	waypoints := make([]models.Coordinates, 0, len(points))
	for _, pair := range points {
		if len(pair) < pairLength {
			continue
		}
		waypoints = append(waypoints, models.Coordinates{Latitude: pair[1], Longitude: pair[0]})
	}
	if len(waypoints) == 0 {
		return nil, ErrEmptyRoute
	}

	return waypoints, nil
}
