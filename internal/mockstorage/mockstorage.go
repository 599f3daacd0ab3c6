// Package mockstorage provides a testify mock of the client key-value storage.
// Tests use it to drive storage failures that the real back-ends never produce.
package mockstorage

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// StorageMock implements storage.Storage.
type StorageMock struct {
	mock.Mock
}

func (m *StorageMock) GetItem(ctx context.Context, namespace, key string) (string, bool, error) {
	args := m.Called(ctx, namespace, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *StorageMock) SetItem(ctx context.Context, namespace, key, value string) error {
	args := m.Called(ctx, namespace, key, value)
	return args.Error(0)
}

func (m *StorageMock) RemoveItem(ctx context.Context, namespace, key string) error {
	args := m.Called(ctx, namespace, key)
	return args.Error(0)
}

func (m *StorageMock) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *StorageMock) Close() error {
	args := m.Called()
	return args.Error(0)
}
