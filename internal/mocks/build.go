package mocks

import (
	"time"

	"github.com/stretchr/testify/mock"
)

// MockBuild implements repotree.Build for testing across packages
type MockBuild struct {
	mock.Mock
}

func (m *MockBuild) ID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockBuild) Number() int {
	args := m.Called()
	return args.Int(0)
}

func (m *MockBuild) Timestamp() time.Time {
	args := m.Called()
	// Handle function return types for builds whose time moves
	if fn, ok := args.Get(0).(func() time.Time); ok {
		return fn()
	}
	return args.Get(0).(time.Time)
}

// NewMockBuild returns a MockBuild answering every call with the given values
func NewMockBuild(id string, number int, ts time.Time) *MockBuild {
	m := &MockBuild{}
	m.On("ID").Return(id).Maybe()
	m.On("Number").Return(number).Maybe()
	m.On("Timestamp").Return(ts).Maybe()
	return m
}
