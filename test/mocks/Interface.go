package mocks

import (
	"context"

	models "github.com/UnknownOlympus/beacon/internal/models"
	mock "github.com/stretchr/testify/mock"
)

// Interface is a mock type for the repository Interface type.
type Interface struct {
	mock.Mock
}

// FetchActiveOrders provides a mock function with given fields: ctx, limit.
func (_m *Interface) FetchActiveOrders(ctx context.Context, limit int) ([]models.Order, error) {
	ret := _m.Called(ctx, limit)

	if len(ret) == 0 {
		panic("no return value specified for FetchActiveOrders")
	}

	var r0 []models.Order
	if rf, ok := ret.Get(0).(func(context.Context, int) []models.Order); ok {
		r0 = rf(ctx, limit)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Order)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, int) error); ok {
		r1 = rf(ctx, limit)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// CompleteOrder provides a mock function with given fields: ctx, trackingID.
func (_m *Interface) CompleteOrder(ctx context.Context, trackingID string) error {
	ret := _m.Called(ctx, trackingID)

	if len(ret) == 0 {
		panic("no return value specified for CompleteOrder")
	}

	if rf, ok := ret.Get(0).(func(context.Context, string) error); ok {
		return rf(ctx, trackingID)
	}

	return ret.Error(0)
}

// IncrementRouteFailures provides a mock function with given fields: ctx, trackingID, errMsg.
func (_m *Interface) IncrementRouteFailures(ctx context.Context, trackingID string, errMsg string) error {
	ret := _m.Called(ctx, trackingID, errMsg)

	if len(ret) == 0 {
		panic("no return value specified for IncrementRouteFailures")
	}

	if rf, ok := ret.Get(0).(func(context.Context, string, string) error); ok {
		return rf(ctx, trackingID, errMsg)
	}

	return ret.Error(0)
}

// NewInterface creates a new instance of Interface. It also registers a testing interface on the mock
// and a cleanup function to assert the mocks expectations.
func NewInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *Interface {
	m := &Interface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
