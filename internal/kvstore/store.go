// Package kvstore is the client's local key-value persistence.
// Values are stored as JSON.
package kvstore

import "context"

// Store gets, sets and removes JSON values by string key
type Store interface {
	// Get decodes the value under key into out. It reports false when the key is absent.
	Get(ctx context.Context, key string, out interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	Remove(ctx context.Context, key string) error
}
