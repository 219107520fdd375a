// Package store provides the data model and the high-level interface for a
// session-aware key-value store, as exposed by Consul-compatible HTTP APIs.
//
// The package focuses on:
//   - A unified interface (IStore) for key-value operations across different backends
//   - The Record snapshot type and the LockOperation variant used by conditional writes
//   - One client-level error type (Error) for every request that could not be completed
//
// Key Components:
//
//   - IStore Interface: Set, Get, GetDetails and Delete operate on raw values. Lock is
//     the conditional write: the value is written and a session id is attached to
//     (LockAcquire) or detached from (LockRelease) the key in one atomic step
//     evaluated by the backend.
//
//   - Record: A snapshot of one entry. The Value field carries decoded bytes, the
//     Session field names the current holder. A non-empty Session means the key is
//     locked. Records are never live handles; they are stale as soon as they are read.
//
//   - Error System: Invalid input is not an error. Blank keys, nil values and blank
//     sessions are rejected with a false / nil result and no backend access. Every
//     operational failure (transport, unexpected status, undecodable payload) is
//     reported as *Error with a RetCode and the wrapped cause, so callers can always
//     distinguish "not acquired" from "could not ask".
//
// Implementations:
//
//	- HTTP Store: talks to a remote store over HTTP.
//	  Available in the "github.com/ValentinKolb/kvlock/rpc/client" package.
//
//	- Memory Store (memstore): An in-process implementation with the same
//	  conditional write semantics, used by the dev server and in tests.
//	  Available in the "github.com/ValentinKolb/kvlock/lib/store/memstore" package.
package store
