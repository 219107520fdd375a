// Package http implements the HTTP transport layer used to talk to a Consul-compatible
// key-value API. It provides concrete implementations of the transport interfaces
// defined in the parent package.
//
// The package focuses on:
//   - Client-side HTTP transport issuing GET / PUT / DELETE requests to a store
//   - Server-side HTTP transport exposing the key-value API of the dev server
//
// Key Components:
//
//   - httpClientTransport: Implements IHTTPClientTransport on a shared *http.Client
//     with a pooled http.Transport. The configured timeout bounds every request, the
//     caller's context can cancel it earlier. The ACL token, if configured, is sent
//     as X-Consul-Token. Requests are never retried: a lock request that timed out
//     may still have been applied by the store, retrying it blindly would hide that.
//     Redirects are not followed, a 3xx answer is returned like any other status.
//
//   - httpServerTransport: Implements IHTTPServerTransport. Every path below the
//     configured KV endpoint is routed to the registered handler with the unescaped
//     key. The path is not cleaned, so keys with empty or dot segments (a//b, ./k)
//     reach the handler unchanged. GET /metrics writes all VictoriaMetrics counters in Prometheus text format.
//
// Thread Safety:
//
//	The client transport is thread-safe after Connect and can be used concurrently.
//
// Metrics:
//
//	kvlock_client_requests_total{method, outcome} counts every request by method and
//	status class (2xx, 4xx, ...) or io_error.
package http
