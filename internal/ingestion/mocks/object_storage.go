// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

// MockObjectStorage is a mock implementation of the ingestion.ObjectStorage
// interface. Put records the body it was given as a string.
type MockObjectStorage struct {
	mock.Mock
	Bodies map[string]string
}

// EnsureBucket provides a mock function with given fields: ctx, bucket
func (m *MockObjectStorage) EnsureBucket(ctx context.Context, bucket string) error {
	ret := m.Called(ctx, bucket)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string) error); ok {
		r0 = rf(ctx, bucket)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Put provides a mock function with given fields: ctx, bucket, key, data
func (m *MockObjectStorage) Put(ctx context.Context, bucket string, key string, data io.Reader) error {
	b, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	if m.Bodies == nil {
		m.Bodies = make(map[string]string)
	}
	m.Bodies[bucket+"/"+key] = string(b)

	ret := m.Called(ctx, bucket, key, mock.Anything)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string, string, io.Reader) error); ok {
		r0 = rf(ctx, bucket, key, data)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewMockObjectStorage creates a new instance of MockObjectStorage. It also
// registers a testing interface on the mock and a cleanup function to assert
// the mocks expectations.
func NewMockObjectStorage(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockObjectStorage {
	m := &MockObjectStorage{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
