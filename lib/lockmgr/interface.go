package lockmgr

import "context"

// ILockManager defines the interface for a session based lock provider.
type ILockManager interface {
	// AcquireLock tries to attach sessionID to key while writing value.
	// Returns true if the lock is held by sessionID afterwards, including the case where
	// it already was. Returns false if the key is held by another session, the store denied
	// the write or the input was invalid (blank key, blank session, nil or blank value).
	AcquireLock(ctx context.Context, key string, value []byte, sessionID string) (ok bool, err error)

	// ReleaseLock tries to detach sessionID from key while writing value.
	// An empty value is allowed. Returns the store's verdict, or false on invalid input
	// (blank key, blank session, nil value).
	ReleaseLock(ctx context.Context, key string, value []byte, sessionID string) (ok bool, err error)
}
