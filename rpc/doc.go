// Package rpc provides the network side of kvlock: an HTTP client for the
// Consul-compatible key-value API and a small server for the same API.
//
// The package is organized into several subpackages:
//
//   - common: Configuration structures and the logging setup.
//
//   - transport: Network communication abstractions and the net/http
//     implementation (client and server).
//
//   - serializer: The JSON codec of the API (records and bare booleans).
//
//   - client: store.IStore implementation that forwards every operation
//     to a remote store.
//
//   - server: Serves the API from any store.IStore, used as dev server.
//
// Architecture:
//
//	lockmgr ──> client (store.IStore) ──> serializer + transport ──HTTP──>
//	    transport ──> server ──> memstore (store.IStore)
//
// Usage Example:
//
//	kv, err := client.NewHTTPStore(
//	  common.ClientConfig{Address: "http://localhost:8500"},
//	  http.NewHttpClientTransport(),
//	  serializer.NewJSONSerializer(),
//	)
//	if err != nil {
//	  // handle error
//	}
//	locks := lockmgr.NewLockManager(kv)
package rpc
