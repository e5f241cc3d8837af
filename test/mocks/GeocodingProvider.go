package mocks

import (
	"context"

	models "github.com/UnknownOlympus/beacon/internal/models"
	mock "github.com/stretchr/testify/mock"
)

// GeocodingProvider is a mock type for the geocoding Provider type.
type GeocodingProvider struct {
	mock.Mock
}

// Geocode provides a mock function with given fields: ctx, address.
func (_m *GeocodingProvider) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	ret := _m.Called(ctx, address)

	if len(ret) == 0 {
		panic("no return value specified for Geocode")
	}

	var r0 *models.Coordinates
	if rf, ok := ret.Get(0).(func(context.Context, string) *models.Coordinates); ok {
		r0 = rf(ctx, address)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Coordinates)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, address)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewGeocodingProvider creates a new instance of GeocodingProvider. It also registers a testing interface on the mock
// and a cleanup function to assert the mocks expectations.
func NewGeocodingProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *GeocodingProvider {
	m := &GeocodingProvider{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
