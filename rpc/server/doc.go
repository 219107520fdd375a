// Package server implements a small key-value server that speaks the
// Consul-compatible /v1/kv/ API on top of any store.IStore.
//
// It is meant for local development and tests: paired with memstore it gives the
// HTTP client and the lock manager a real endpoint without running an agent.
// Sessions are taken as given, their liveness is not checked.
//
// Routes:
//
//	GET    <kv-endpoint><key>                → 200 [record] or 404
//	PUT    <kv-endpoint><key>                → 200 true (the session of the key is kept)
//	PUT    <kv-endpoint><key>?acquire=<s>    → 200 true iff unheld or held by <s>
//	PUT    <kv-endpoint><key>?release=<s>    → 200 true iff held by <s>
//	DELETE <kv-endpoint><key>                → 200 true
//	GET    /metrics                          → Prometheus text
//
// A request without key, or with both acquire and release, is answered with 400.
// Any other method is answered with 405.
//
// Key Components:
//
//   - NewKVServer: Validates the config and registers the request handler with the
//     server transport.
//
//   - KVServer.Serve: Blocks until the context is done. The transport shuts down
//     gracefully.
//
//   - KVServer.Handler: The plain http.Handler, e.g. for httptest.NewServer.
//
// Metrics:
//
//	kvlock_server_requests_total{method,status} counts every handled request.
package server
