// Package mocks provides testify mocks of the ports interfaces.
package mocks

import "github.com/stretchr/testify/mock"

// TestingT is the subset of testing.T the mock constructors need.
type TestingT interface {
	mock.TestingT
	Cleanup(func())
}

func register(m *mock.Mock, t TestingT) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

// ret returns the typed first return value, or the zero value when the
// expectation returned nil.
func ret[T any](args mock.Arguments, i int) T {
	var zero T

	v := args.Get(i)
	if v == nil {
		return zero
	}

	if fn, ok := v.(func() T); ok {
		return fn()
	}

	return v.(T) //nolint:forcetypeassert // misconfigured expectations should panic
}
