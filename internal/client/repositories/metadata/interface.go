// Package metadata is the client's local key/value store. The CLI keeps the
// current session (username, auth id, session token, login time) here.
package metadata

import (
	"context"
)

type Repository interface {
	// Get returns common.ErrorNotFound for an absent key.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Delete removes the given keys; absent keys are ignored.
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}
