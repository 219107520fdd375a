package http_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ValentinKolb/kvlock/rpc/common"
	"github.com/ValentinKolb/kvlock/rpc/transport"
	httpTransport "github.com/ValentinKolb/kvlock/rpc/transport/http"
)

func TestClientTransport_NotConnected(t *testing.T) {
	t.Parallel()

	c := httpTransport.NewHttpClientTransport()
	_, err := c.Get(context.Background(), "http://localhost:1/v1/kv/a")
	require.Error(t, err)
}

func TestClientTransport_Requests(t *testing.T) {
	t.Parallel()

	var gotMethod, gotPath, gotQuery, gotToken, gotBody string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotMethod, gotPath, gotQuery, gotBody = r.Method, r.URL.Path, r.URL.RawQuery, string(b)
		gotToken = r.Header.Get("X-Consul-Token")
		if r.Method == http.MethodGet {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("true"))
	}))
	defer ts.Close()

	c := httpTransport.NewHttpClientTransport()
	require.NoError(t, c.Connect(common.ClientConfig{Address: ts.URL, TimeoutSecond: 5, Token: "tok"}))
	defer c.Close()

	ctx := context.Background()

	resp, err := c.Put(ctx, ts.URL+"/v1/kv/a?acquire=s1", []byte("v"))
	require.NoError(t, err)
	assert.True(t, resp.IsSuccess())
	assert.Equal(t, "true", string(resp.Body))
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/v1/kv/a", gotPath)
	assert.Equal(t, "acquire=s1", gotQuery)
	assert.Equal(t, "v", gotBody)
	assert.Equal(t, "tok", gotToken)

	resp, err = c.Get(ctx, ts.URL+"/v1/kv/a")
	require.NoError(t, err)
	assert.False(t, resp.IsSuccess())
	assert.True(t, resp.IsNotFound())

	resp, err = c.Delete(ctx, ts.URL+"/v1/kv/a")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestClientTransport_ConnectionRefused(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	c := httpTransport.NewHttpClientTransport()
	require.NoError(t, c.Connect(common.ClientConfig{Address: url, TimeoutSecond: 1}))

	_, err := c.Get(context.Background(), url+"/v1/kv/a")
	require.Error(t, err)
}

func TestServerTransport_Handler(t *testing.T) {
	t.Parallel()

	s := httpTransport.NewHttpServerTransport()

	var got *transport.Request
	s.RegisterHandler(func(req *transport.Request) *transport.Response {
		got = req
		return &transport.Response{StatusCode: http.StatusCreated, Body: []byte(`"ok"`)}
	})

	ts := httptest.NewServer(s.Handler(common.ServerConfig{KVEndpoint: "/v1/kv/", LogLevel: "debug"}))
	defer ts.Close()

	req, err := http.NewRequest(http.MethodPut, ts.URL+"/v1/kv/app/a%20b?release=s1", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	require.NotNil(t, got)
	assert.Equal(t, http.MethodPut, got.Method)
	assert.Equal(t, "app/a b", got.Key)
	assert.Equal(t, "s1", got.Query.Get("release"))
}

func TestServerTransport_NoHandler(t *testing.T) {
	t.Parallel()

	s := httpTransport.NewHttpServerTransport()
	ts := httptest.NewServer(s.Handler(common.ServerConfig{}))
	defer ts.Close()

	resp, err := http.Get(ts.URL + common.DefaultKVEndpoint + "a")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestClientTransport_DoesNotFollowRedirects(t *testing.T) {
	t.Parallel()

	methods := make(chan string, 2)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods <- r.Method
		if r.URL.Path == "/v1/kv/a//b" {
			http.Redirect(w, r, "/v1/kv/a/b", http.StatusMovedPermanently)
			return
		}
		_, _ = w.Write([]byte("[]"))
	}))
	defer ts.Close()

	c := httpTransport.NewHttpClientTransport()
	require.NoError(t, c.Connect(common.ClientConfig{Address: ts.URL, TimeoutSecond: 5}))
	defer c.Close()

	resp, err := c.Put(context.Background(), ts.URL+"/v1/kv/a//b", []byte("v"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusMovedPermanently, resp.StatusCode)
	assert.False(t, resp.IsSuccess())
	assert.Equal(t, http.MethodPut, <-methods)
	assert.Empty(t, methods)
}

func TestServerTransport_KeepsRawKey(t *testing.T) {
	t.Parallel()

	s := httpTransport.NewHttpServerTransport()

	keys := make(chan string, 3)
	s.RegisterHandler(func(req *transport.Request) *transport.Response {
		keys <- req.Key
		return &transport.Response{StatusCode: http.StatusOK, Body: []byte("true")}
	})

	ts := httptest.NewServer(s.Handler(common.ServerConfig{}))
	defer ts.Close()

	c := httpTransport.NewHttpClientTransport()
	require.NoError(t, c.Connect(common.ClientConfig{Address: ts.URL, TimeoutSecond: 5}))
	defer c.Close()

	for _, key := range []string{"a//b", "x/../a/b", "./k"} {
		resp, err := c.Put(context.Background(), ts.URL+common.DefaultKVEndpoint+key, []byte("v"))
		require.NoError(t, err, key)
		assert.Equal(t, http.StatusOK, resp.StatusCode, key)
		assert.Equal(t, key, <-keys)
	}
}
