package transport

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ValentinKolb/kvlock/rpc/common"
)

// --------------------------------------------------------------------------
// Response
// --------------------------------------------------------------------------

// Response is the raw outcome of one HTTP request cycle
type Response struct {
	StatusCode int
	Body       []byte
}

// IsSuccess reports whether the status code is in the 2xx range
func (r *Response) IsSuccess() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// IsNotFound reports whether the store answered 404
func (r *Response) IsNotFound() bool {
	return r != nil && r.StatusCode == http.StatusNotFound
}

// --------------------------------------------------------------------------
// Server Transport
// --------------------------------------------------------------------------

// Request is a decoded request to the key-value API
type Request struct {
	// Method is the HTTP method (GET, PUT, DELETE)
	Method string
	// Key is the unescaped key (the path after the KV endpoint)
	Key string
	// Query holds the query parameters (e.g. acquire=<session>)
	Query url.Values
	// Body is the raw request body
	Body []byte
}

// ServerHandleFunc is a function type that handles incoming requests
// This function is called by a server transport layer when a key-value request is received
type ServerHandleFunc func(req *Request) *Response

// IHTTPServerTransport is the interface for the server transport layer
type IHTTPServerTransport interface {
	// RegisterHandler registers a handler for the transport layer
	// This handler should be called when a request for the KV endpoint is received
	RegisterHandler(handler ServerHandleFunc)
	// Handler returns the http.Handler serving the KV endpoint and /metrics
	Handler(config common.ServerConfig) http.Handler
	// Listen starts the transport layer and blocks until ctx is done or the server fails
	Listen(ctx context.Context, config common.ServerConfig) error
}

// --------------------------------------------------------------------------
// Client Transport
// --------------------------------------------------------------------------

// IHTTPClientTransport is the interface for the client transport.
// Any I/O failure (connection refused, timeout, ...) is returned as an error.
// A response with a non-success status is not an error on this level.
// Implementations do not retry.
type IHTTPClientTransport interface {
	// Connect initializes the transport with the given configuration
	Connect(config common.ClientConfig) error
	// Get issues a GET request for the url
	Get(ctx context.Context, url string) (*Response, error)
	// Put issues a PUT request for the url with the given body
	Put(ctx context.Context, url string, body []byte) (*Response, error)
	// Delete issues a DELETE request for the url
	Delete(ctx context.Context, url string) (*Response, error)
	// Close closes the transport connection
	Close() error
}
