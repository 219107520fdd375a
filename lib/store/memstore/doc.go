// Package memstore implements a local, in-memory, single-process key-value store based
// on the store.IStore interface. It reproduces the conditional write semantics of a
// Consul-compatible KV API so that the lock protocol can be exercised without a network.
// Data is not persisted between process restarts.
//
// Key Features:
//   - Session-aware conditional writes (acquire / release) evaluated atomically per key
//   - Plain writes that never touch the session attached to a key
//   - Consul style metadata (CreateIndex, ModifyIndex, LockIndex)
//   - Thread-safe operations for concurrent access
//
// Implementation Details:
//
//   - Write Index Management: The store maintains an atomic counter that increments
//     with each write. The counter value is recorded as CreateIndex / ModifyIndex.
//
//   - Atomicity: Entries live in an xsync.MapOf. Every write is a single Compute call,
//     so the ownership check and the write of an acquire or release cannot interleave
//     with another writer on the same key.
//
//   - Lock Semantics:
//     acquire(S) succeeds if the key is unheld (missing keys are created) or already
//     held by S; LockIndex is incremented only when the key changes from unheld to held.
//     release(S) succeeds only if the key is held by S; the session is cleared and the
//     value is replaced. Everything else answers false and changes nothing.
//
// Usage Example:
//
//	s := memstore.NewMemoryStore()
//	ok, _ := s.Lock(ctx, "cfg/lock", []byte("1"), store.LockAcquire, "sessA")
//	record, _ := s.GetDetails(ctx, "cfg/lock") // record.Session == "sessA"
//
// Suitable Use Cases:
//
//	- Backend of the dev server (kvlock serve)
//	- Tests of code written against store.IStore
package memstore
