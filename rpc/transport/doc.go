// Package transport defines the interfaces and abstractions for the HTTP communication
// with a key-value store. It provides a common contract for the client side (sending
// requests to a store) and the server side (the in-memory dev server).
//
// The package focuses on:
//   - Defining clear interfaces for client and server transport layers
//   - Keeping status interpretation out of the transport: a non-success status is a
//     valid Response, only I/O failures are errors
//
// Key Components:
//
//   - IHTTPClientTransport: Interface for client-side transport implementations that
//     handles connection management and issues GET / PUT / DELETE requests.
//     Timeouts are owned by the transport; no implementation retries.
//
//   - IHTTPServerTransport: Interface for server-side transport implementations that
//     receives key-value requests and routes them to the registered handler.
//
//   - Response / Request: Raw request and response values passed between the
//     transport and the layers above it.
//
//   - ServerHandleFunc: Function type for request handling callbacks.
package transport
