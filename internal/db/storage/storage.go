// Package storage declares the per-client key-value storage that plays the
// role of the browser's local storage. Each client id is a namespace; keys
// and values are plain strings.
package storage

import (
	"context"
	"errors"
)

// ErrEmptyNamespace is returned when an operation is called without a client id.
var ErrEmptyNamespace = errors.New("storage namespace must not be empty")

type Storage interface {
	// GetItem returns the value and whether the key exists.
	GetItem(ctx context.Context, namespace, key string) (string, bool, error)

	SetItem(ctx context.Context, namespace, key, value string) error

	// RemoveItem is a no-op for a missing key.
	RemoveItem(ctx context.Context, namespace, key string) error

	Ping(ctx context.Context) error

	Close() error
}
