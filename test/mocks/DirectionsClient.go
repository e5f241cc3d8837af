package mocks

import (
	"context"

	mock "github.com/stretchr/testify/mock"
	maps "googlemaps.github.io/maps"
)

// DirectionsClient is a mock type for the DirectionsClient type.
type DirectionsClient struct {
	mock.Mock
}

// Directions provides a mock function with given fields: ctx, r.
func (_m *DirectionsClient) Directions(
	ctx context.Context,
	r *maps.DirectionsRequest,
) ([]maps.Route, []maps.GeocodedWaypoint, error) {
	ret := _m.Called(ctx, r)

	if len(ret) == 0 {
		panic("no return value specified for Directions")
	}

	var r0 []maps.Route
	if rf, ok := ret.Get(0).(func(context.Context, *maps.DirectionsRequest) []maps.Route); ok {
		r0 = rf(ctx, r)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]maps.Route)
	}

	var r1 []maps.GeocodedWaypoint
	if rf, ok := ret.Get(1).(func(context.Context, *maps.DirectionsRequest) []maps.GeocodedWaypoint); ok {
		r1 = rf(ctx, r)
	} else if ret.Get(1) != nil {
		r1 = ret.Get(1).([]maps.GeocodedWaypoint)
	}

	var r2 error
	if rf, ok := ret.Get(2).(func(context.Context, *maps.DirectionsRequest) error); ok {
		r2 = rf(ctx, r)
	} else {
		r2 = ret.Error(2)
	}

	return r0, r1, r2
}

// NewDirectionsClient creates a new instance of DirectionsClient. It also registers a testing interface on the mock
// and a cleanup function to assert the mocks expectations.
func NewDirectionsClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *DirectionsClient {
	m := &DirectionsClient{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
