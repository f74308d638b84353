package cart

import (
	"context"
	"errors"
)

// ErrNoSnapshot is returned by Storage.Load when no snapshot exists under
// the requested key. The store treats it as "start empty".
var ErrNoSnapshot = errors.New("no cart snapshot")

// Storage persists cart snapshots across sessions. Implementations map the
// fixed StorageKey to whatever namespacing they need.
type Storage interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}
