// Package keyvalue persists small string values of the local session cache.
package keyvalue

import "context"

type Repository interface {
	// Get returns ok=false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
	// Update deletes del and writes set as one atomic change.
	Update(ctx context.Context, set map[string]string, del ...string) error
}
