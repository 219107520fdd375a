// Package lockmgr implements session based mutual exclusion on top of any
// store.IStore. The lock state of a key is the session attached to it: a key with a
// non-empty session is held by that session, a key without one is free.
//
// The lockmgr only ever stores in the provided IStore and has no other internal
// state. Therefor it is safe to be created multiple times on the same store.
//
// Core Functionality:
//   - Acquire with idempotent re-entry for the current holder
//   - Release that leaves ownership checks to the store
//   - Silent rejection of malformed requests without touching the store
//
// Implementation Approach:
//
//	Locks are implemented by leveraging the conditional writes of the underlying
//	store (store.IStore.Lock). Specifically:
//
//	- Lock Acquisition: The current record is read first. If a session already
//	  holds the key, no write is issued: the call returns true if the holder is the
//	  caller and false otherwise. If the key is free, a conditional write with the
//	  acquire qualifier is sent and the store's verdict is returned. The store may
//	  still answer false when another session won the race after the read.
//
//	- Lock Release: A conditional write with the release qualifier is sent without
//	  reading first. An empty value is allowed to clear the stored value while
//	  unlocking. Whether a non-holder may release is decided by the store.
//
//	State machine per key:
//
//	  Unheld     --acquire(S)--> HeldBy(S)
//	  HeldBy(S)  --acquire(S)--> HeldBy(S)   (no write)
//	  HeldBy(S)  --acquire(T)--> HeldBy(S)   (false, no write)
//	  HeldBy(S)  --release(S)--> Unheld
//
// Error Handling:
//
//	Invalid input (blank key, blank session, nil value, blank value on acquire) is
//	answered with false and no error. Failures of the store are returned unchanged
//	and are never reported as false.
//
// Thread Safety:
//
//	The lockmgr is as thread-safe as the underlying store.IStore implementation.
//	Exclusivity rests on the store evaluating the conditional write atomically;
//	the read before an acquire is only a fast path.
//
// Usage Example:
//
//	locks := lockmgr.NewLockManager(httpStore)
//
//	acquired, err := locks.AcquireLock(ctx, "cfg/lock", []byte("1"), sessionID)
//	if err != nil {
//	    // the request could not be completed
//	}
//
//	if acquired {
//	    // Use the resource safely
//	    // ...
//
//	    released, err := locks.ReleaseLock(ctx, "cfg/lock", []byte{}, sessionID)
//	}
package lockmgr
