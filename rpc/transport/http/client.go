package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ValentinKolb/kvlock/rpc/common"
	"github.com/ValentinKolb/kvlock/rpc/transport"
	"github.com/VictoriaMetrics/metrics"
)

const tokenHeader = "X-Consul-Token"

func NewHttpClientTransport() transport.IHTTPClientTransport {
	return &httpClientTransport{}
}

type httpClientTransport struct {
	client *http.Client
	token  string
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IHTTPClientTransport)
// --------------------------------------------------------------------------

func (t *httpClientTransport) Connect(config common.ClientConfig) error {
	maxIdle := config.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = 10
	}

	// Create client with tuned transport
	t.client = &http.Client{
		Timeout: time.Duration(config.TimeoutSecond) * time.Second,
		// A redirect is returned as is, following it would turn a PUT or DELETE into a GET
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        maxIdle,
			MaxIdleConnsPerHost: maxIdle,
			IdleConnTimeout:     90 * time.Second,
		},
	}
	t.token = config.Token

	// No error
	return nil
}

func (t *httpClientTransport) Get(ctx context.Context, url string) (*transport.Response, error) {
	return t.do(ctx, http.MethodGet, url, nil)
}

func (t *httpClientTransport) Put(ctx context.Context, url string, body []byte) (*transport.Response, error) {
	return t.do(ctx, http.MethodPut, url, body)
}

func (t *httpClientTransport) Delete(ctx context.Context, url string) (*transport.Response, error) {
	return t.do(ctx, http.MethodDelete, url, nil)
}

func (t *httpClientTransport) Close() error {
	// Close the client
	if t.client != nil {
		t.client.CloseIdleConnections()
	}
	t.client = nil
	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// do sends one request and reads the complete response
func (t *httpClientTransport) do(ctx context.Context, method, url string, body []byte) (*transport.Response, error) {
	// Check if the transport is initialized
	if t.client == nil {
		return nil, fmt.Errorf("http transport not initialized")
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	// Create the request
	httpRequest, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	if t.token != "" {
		httpRequest.Header.Set(tokenHeader, t.token)
	}

	start := time.Now()
	httpResponse, err := t.client.Do(httpRequest)
	if err != nil {
		metrics.GetOrCreateCounter(fmt.Sprintf(`kvlock_client_requests_total{method=%q,outcome="io_error"}`, method)).Inc()
		return nil, err
	}
	defer func() {
		if err := httpResponse.Body.Close(); err != nil {
			Logger.Errorf("Failed to close response body: %v", err)
		}
	}()

	// Read the response body
	respBody, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		metrics.GetOrCreateCounter(fmt.Sprintf(`kvlock_client_requests_total{method=%q,outcome="io_error"}`, method)).Inc()
		return nil, err
	}

	metrics.GetOrCreateCounter(fmt.Sprintf(`kvlock_client_requests_total{method=%q,outcome="%dxx"}`, method, httpResponse.StatusCode/100)).Inc()
	Logger.Debugf("%s %s => %d took %s", method, url, httpResponse.StatusCode, time.Since(start))

	return &transport.Response{
		StatusCode: httpResponse.StatusCode,
		Body:       respBody,
	}, nil
}
