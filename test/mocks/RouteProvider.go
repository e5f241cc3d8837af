package mocks

import (
	"context"

	models "github.com/UnknownOlympus/beacon/internal/models"
	mock "github.com/stretchr/testify/mock"
)

// RouteProvider is a mock type for the route Provider type.
type RouteProvider struct {
	mock.Mock
}

// Route provides a mock function with given fields: ctx, from, to.
func (_m *RouteProvider) Route(ctx context.Context, from, to models.Coordinates) ([]models.Coordinates, error) {
	ret := _m.Called(ctx, from, to)

	if len(ret) == 0 {
		panic("no return value specified for Route")
	}

	var r0 []models.Coordinates
	if rf, ok := ret.Get(0).(func(context.Context, models.Coordinates, models.Coordinates) []models.Coordinates); ok {
		r0 = rf(ctx, from, to)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Coordinates)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, models.Coordinates, models.Coordinates) error); ok {
		r1 = rf(ctx, from, to)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewRouteProvider creates a new instance of RouteProvider. It also registers a testing interface on the mock
// and a cleanup function to assert the mocks expectations.
func NewRouteProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *RouteProvider {
	m := &RouteProvider{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
