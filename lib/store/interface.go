package store

import (
	"context"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// IStore is the generic interface for interacting with a session-aware key–value store.
//
// All methods follow the same two channel contract:
//   - malformed input (blank key, nil value, blank session) is rejected silently with a
//     false / nil result and without touching the backend
//   - any failure to complete the request is returned as a *Error, never as a false result
type IStore interface {
	// Set writes the raw value for a key. The session attached to the key is left untouched.
	// Returns true iff the store accepted the write.
	Set(ctx context.Context, key string, value []byte) (ok bool, err error)
	// Get returns the decoded value for a key. The boolean return value indicates whether
	// the key was found.
	Get(ctx context.Context, key string) (value []byte, loaded bool, err error)
	// GetDetails returns a snapshot of the full record for a key, or nil if the key does not exist.
	GetDetails(ctx context.Context, key string) (record *Record, err error)
	// Delete removes a key. Returns true iff the store accepted the delete.
	Delete(ctx context.Context, key string) (ok bool, err error)
	// Lock performs a conditional write of value to key that atomically attaches (LockAcquire)
	// or detaches (LockRelease) sessionID. The returned boolean is the store's verdict on
	// whether the operation took effect. A rejected request (e.g. non-success status) is
	// reported as false.
	Lock(ctx context.Context, key string, value []byte, op LockOperation, sessionID string) (ok bool, err error)
}
