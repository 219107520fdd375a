// Package cmd implements the command-line interface of kvlock.
// It provides a hierarchical command structure with operations for talking to a
// key-value store as a client and for running a local dev server.
//
// The package is organized into several subpackages:
//
//   - kv: Commands for key-value operations (set, get, details, del, perf)
//   - lock: Commands for session locks (acquire, release)
//   - serve: Starts the in-memory dev server
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// Every flag can also be set through the environment with the prefix KVLOCK_
// (e.g. KVLOCK_ADDRESS, KVLOCK_LOG_LEVEL). .env and .env.local are loaded first.
//
// See kvlock -help for a list of all commands.
package cmd
