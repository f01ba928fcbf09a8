package client

import "context"

// StorageBackend is the minimal content-addressed put/get contract. Add
// returns the backend's handle for the submitted bytes; Cat retrieves them.
//
// Implementations must return common.ErrStorageUnavailable when the backend
// cannot be reached and common.ErrNotFound when no object exists for the
// handle, so callers can tell a retryable outage from a missing object.
type StorageBackend interface {
	Add(ctx context.Context, data []byte) (string, error)
	Cat(ctx context.Context, cid string) ([]byte, error)
}
