package store

//go:generate go run go.uber.org/mock/mockgen -source=./store.go -destination=../mocks/store_mock.go -package=mocks

import (
	"context"

	"github.com/pkg/errors"
)

// ErrNotFound is returned when a key has never been written or was removed.
var ErrNotFound = errors.New("session store: key not found")

// Store is the device-local key/value area where the client keeps its
// token, cached identity and last selected staff member between runs.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	Clear(ctx context.Context) error
}
