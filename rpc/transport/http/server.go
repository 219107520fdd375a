package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ValentinKolb/kvlock/rpc/common"
	"github.com/ValentinKolb/kvlock/rpc/transport"
	"github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("transport/http")

func NewHttpServerTransport() transport.IHTTPServerTransport {
	return &httpServerTransport{}
}

type httpServerTransport struct {
	handler transport.ServerHandleFunc
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IHTTPServerTransport)
// --------------------------------------------------------------------------

func (t *httpServerTransport) RegisterHandler(handler transport.ServerHandleFunc) {
	t.handler = handler
}

func (t *httpServerTransport) Handler(config common.ServerConfig) http.Handler {
	// Create a new HTTP server
	mux := http.NewServeMux()

	kvEndpoint := config.KVEndpoint
	if kvEndpoint == "" {
		kvEndpoint = common.DefaultKVEndpoint
	}

	// Register handler
	kvHandler := t.kvHandler(kvEndpoint)
	if config.LogLevel == "debug" {
		kvHandler = loggerMiddleware(kvHandler)
	}
	mux.HandleFunc("GET /metrics", func(w http.ResponseWriter, _ *http.Request) {
		metrics.WritePrometheus(w, true)
	})

	// Keys may contain empty or dot segments (a//b, x/../y), the mux would clean
	// and redirect those paths. KV requests therefore never go through the mux.
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.EscapedPath(), kvEndpoint) {
			kvHandler(w, r)
			return
		}
		mux.ServeHTTP(w, r)
	})
}

func (t *httpServerTransport) Listen(ctx context.Context, config common.ServerConfig) error {
	timeout := time.Duration(config.TimeoutSecond) * time.Second

	server := &http.Server{
		Addr:         config.Endpoint,
		Handler:      t.Handler(config),
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}

	Logger.Infof("Starting HTTP server on %s", config.Endpoint)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		Logger.Infof("Shutting down HTTP server on %s", config.Endpoint)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// kvHandler handles incoming requests for the KV endpoint and writes the response to the writer
func (t *httpServerTransport) kvHandler(kvEndpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t.handleRequest(w, r, strings.TrimPrefix(r.URL.EscapedPath(), kvEndpoint))
	}
}

// handleRequest passes one request with the still escaped key to the registered handler
func (t *httpServerTransport) handleRequest(w http.ResponseWriter, r *http.Request, escapedKey string) {
	if t.handler == nil {
		http.Error(w, "No handler registered", http.StatusServiceUnavailable)
		return
	}

	key, err := url.PathUnescape(escapedKey)
	if err != nil {
		http.Error(w, "Invalid key encoding", http.StatusBadRequest)
		return
	}

	// Read request body
	body, err := io.ReadAll(r.Body)
	defer r.Body.Close()

	// Check if body could be read
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusInternalServerError)
		return
	}

	// Send the handler
	resp := t.handler(&transport.Request{
		Method: r.Method,
		Key:    key,
		Query:  r.URL.Query(),
		Body:   body,
	})

	if resp == nil {
		http.Error(w, "Handler returned no response", http.StatusInternalServerError)
		return
	}

	// Write response
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	if _, err = w.Write(resp.Body); err != nil {
		Logger.Warningf("Failed to write response: %v", err)
	}
}

// --------------------------------------------------------------------------
// Middleware (logging)
// --------------------------------------------------------------------------

// responseWriter is a custom ResponseWriter that captures status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader captures the status code before writing it
func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// loggerMiddleware is a middleware that logs HTTP requests
func loggerMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Create custom response writer to capture status code
		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		// Process request
		next.ServeHTTP(rw, r)

		// Log the request
		duration := time.Since(start)
		Logger.Debugf("%s %s => %d took %s", r.Method, r.URL.RequestURI(), rw.statusCode, duration)
	}
}
