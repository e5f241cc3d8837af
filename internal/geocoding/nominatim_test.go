package geocoding_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/UnknownOlympus/beacon/internal/geocoding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockHTTPClient is a mock implementation of HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func okBody(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

func TestNominatimProvider_Geocode(t *testing.T) {
	ctx := t.Context()
	logger := slog.Default()

	t.Run("successful geocoding", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, http.MethodGet, req.Method)
				assert.Contains(t, req.URL.String(), "nominatim.openstreetmap.org")
				assert.Equal(t, "Teatro Nacional, San José", req.URL.Query().Get("q"))
				assert.Equal(t, "json", req.URL.Query().Get("format"))
				assert.Equal(t, "1", req.URL.Query().Get("limit"))
				assert.Equal(t, "cr", req.URL.Query().Get("countrycodes"))
				assert.Equal(t,
					"Beacon-Tracking-Service/1.0 (https://github.com/UnknownOlympus/beacon)",
					req.Header.Get("User-Agent"),
				)

				return okBody(`[{"lat":"9.9334","lon":"-84.0775"}]`), nil
			},
		}

		provider := geocoding.NewNominatimProviderWithClient(mockClient, "CR", logger)
		coords, err := provider.Geocode(ctx, "Teatro Nacional, San José")

		require.NoError(t, err)
		require.NotNil(t, coords)
		assert.InEpsilon(t, 9.9334, coords.Latitude, 0.0001)
		assert.InEpsilon(t, -84.0775, coords.Longitude, 0.0001)
	})

	t.Run("HTTP error status", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusTooManyRequests,
					Body:       io.NopCloser(bytes.NewBufferString(`{"error":"Rate limit exceeded"}`)),
				}, nil
			},
		}

		provider := geocoding.NewNominatimProviderWithClient(mockClient, "cr", logger)
		coords, err := provider.Geocode(ctx, "some address")

		require.Nil(t, coords)
		assert.ErrorContains(t, err, "nominatim API returned status 429")
	})

	t.Run("invalid JSON response", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return okBody(`invalid json`), nil
			},
		}

		provider := geocoding.NewNominatimProviderWithClient(mockClient, "cr", logger)
		coords, err := provider.Geocode(ctx, "some address")

		require.Nil(t, coords)
		assert.ErrorContains(t, err, "failed to decode nominatim response")
	})

	t.Run("invalid latitude in response", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return okBody(`[{"lat":"invalid","lon":"-84.0775"}]`), nil
			},
		}

		provider := geocoding.NewNominatimProviderWithClient(mockClient, "cr", logger)
		coords, err := provider.Geocode(ctx, "some address")

		require.Nil(t, coords)
		require.ErrorIs(t, err, geocoding.ErrNominatimInvalidCoords)
		assert.ErrorContains(t, err, "invalid latitude")
	})

	t.Run("invalid longitude in response", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return okBody(`[{"lat":"9.9334","lon":"invalid"}]`), nil
			},
		}

		provider := geocoding.NewNominatimProviderWithClient(mockClient, "cr", logger)
		coords, err := provider.Geocode(ctx, "some address")

		require.Nil(t, coords)
		require.ErrorIs(t, err, geocoding.ErrNominatimInvalidCoords)
		assert.ErrorContains(t, err, "invalid longitude")
	})

	t.Run("HTTP client returns error", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return nil, assert.AnError
			},
		}

		provider := geocoding.NewNominatimProviderWithClient(mockClient, "cr", logger)
		coords, err := provider.Geocode(ctx, "some address")

		require.Nil(t, coords)
		require.ErrorIs(t, err, assert.AnError)
	})

	t.Run("context cancellation", func(t *testing.T) {
		canceled, cancel := context.WithCancel(context.Background())
		cancel()

		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				return nil, req.Context().Err()
			},
		}

		provider := geocoding.NewNominatimProviderWithClient(mockClient, "cr", logger)
		coords, err := provider.Geocode(canceled, "some address")

		require.Nil(t, coords)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestNominatimProvider_AddressFallback(t *testing.T) {
	ctx := t.Context()
	logger := slog.Default()

	t.Run("drops trailing parts until a match", func(t *testing.T) {
		var queries []string
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				query := req.URL.Query().Get("q")
				queries = append(queries, query)
				if query == "Barrio Escalante" {
					return okBody(`[{"lat":"9.9346","lon":"-84.0631"}]`), nil
				}
				return okBody(`[]`), nil
			},
		}

		provider := geocoding.NewNominatimProviderWithClient(mockClient, "cr", logger)
		coords, err := provider.Geocode(ctx, "Barrio Escalante, 200m norte de la iglesia, casa 4")

		require.NoError(t, err)
		require.NotNil(t, coords)
		assert.Equal(t, []string{
			"Barrio Escalante, 200m norte de la iglesia, casa 4",
			"Barrio Escalante, 200m norte de la iglesia",
			"Barrio Escalante",
		}, queries)
	})

	t.Run("all fallbacks fail", func(t *testing.T) {
		requests := 0
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				requests++
				return okBody(`[]`), nil
			},
		}

		provider := geocoding.NewNominatimProviderWithClient(mockClient, "cr", logger)
		coords, err := provider.Geocode(ctx, "Nowhere, Unknown street")

		require.Nil(t, coords)
		require.ErrorIs(t, err, geocoding.ErrNominatimEmptyResponse)
		assert.Equal(t, 2, requests)
	})

	t.Run("single-part address no fallback", func(t *testing.T) {
		requests := 0
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				requests++
				return okBody(`[{"lat":"10.6346","lon":"-85.4407"}]`), nil
			},
		}

		provider := geocoding.NewNominatimProviderWithClient(mockClient, "cr", logger)
		coords, err := provider.Geocode(ctx, "Liberia")

		require.NoError(t, err)
		require.NotNil(t, coords)
		assert.Equal(t, 1, requests, "single-part address should only try once")
	})
}

func TestNewNominatimProvider(t *testing.T) {
	require.NotNil(t, geocoding.NewNominatimProvider("cr", slog.Default()))
}
