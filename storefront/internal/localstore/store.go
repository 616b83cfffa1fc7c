// Package localstore keeps small durable records for the storefront client:
// the signed-in identity and, optionally, the cart.
package localstore

import (
	"context"
	"errors"
)

var (
	ErrNotFound   = errors.New("localstore: record not found")
	ErrInvalidKey = errors.New("localstore: invalid key")
)

// Store is a durable key/value record store. Writers never coordinate with
// each other; the last write wins.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
