package server_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ValentinKolb/kvlock/lib/lockmgr"
	"github.com/ValentinKolb/kvlock/lib/store/memstore"
	"github.com/ValentinKolb/kvlock/rpc/client"
	"github.com/ValentinKolb/kvlock/rpc/common"
	"github.com/ValentinKolb/kvlock/rpc/serializer"
	"github.com/ValentinKolb/kvlock/rpc/server"
	httpTransport "github.com/ValentinKolb/kvlock/rpc/transport/http"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	s, err := server.NewKVServer(
		common.ServerConfig{Endpoint: "127.0.0.1:0", LogLevel: "error"},
		httpTransport.NewHttpServerTransport(),
		serializer.NewJSONSerializer(),
		memstore.NewMemoryStore(),
	)
	require.NoError(t, err)

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url string, body []byte) (int, string) {
	t.Helper()

	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func TestNewKVServer_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := server.NewKVServer(
		common.ServerConfig{},
		httpTransport.NewHttpServerTransport(),
		serializer.NewJSONSerializer(),
		memstore.NewMemoryStore(),
	)
	require.Error(t, err)
}

func TestServer_Routes(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	base := ts.URL + common.DefaultKVEndpoint

	status, body := do(t, http.MethodGet, base+"cfg/lock", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Empty(t, body)

	status, body = do(t, http.MethodPut, base+"cfg/lock", []byte("1"))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "true", body)

	status, body = do(t, http.MethodGet, base+"cfg/lock", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"Key":"cfg/lock"`)
	assert.Contains(t, body, `"Value":"MQ=="`)
	assert.Equal(t, byte('['), body[0])

	status, body = do(t, http.MethodPut, base+"cfg/lock?acquire=sessA", []byte("2"))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "true", body)

	status, body = do(t, http.MethodPut, base+"cfg/lock?acquire=sessB", []byte("3"))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "false", body)

	status, body = do(t, http.MethodPut, base+"cfg/lock?release=sessB", []byte("3"))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "false", body)

	status, body = do(t, http.MethodPut, base+"cfg/lock?release=sessA", []byte("4"))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "true", body)

	status, body = do(t, http.MethodDelete, base+"cfg/lock", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "true", body)

	status, _ = do(t, http.MethodGet, base+"cfg/lock", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestServer_BadRequests(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	base := ts.URL + common.DefaultKVEndpoint

	status, _ := do(t, http.MethodPut, base+"k?acquire=a&release=a", []byte("v"))
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, http.MethodPost, base+"k", []byte("v"))
	assert.Equal(t, http.StatusMethodNotAllowed, status)
}

func TestServer_Metrics(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	do(t, http.MethodPut, ts.URL+common.DefaultKVEndpoint+"m", []byte("v"))

	status, body := do(t, http.MethodGet, ts.URL+"/metrics", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `kvlock_server_requests_total{method="PUT",status="200"}`)
}

func TestLockScenario_EndToEnd(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ctx := context.Background()

	kv, err := client.NewHTTPStore(
		common.ClientConfig{Address: ts.URL, TimeoutSecond: 5},
		httpTransport.NewHttpClientTransport(),
		serializer.NewJSONSerializer(),
	)
	require.NoError(t, err)
	locks := lockmgr.NewLockManager(kv)

	ok, err := locks.AcquireLock(ctx, "cfg/lock", []byte("1"), "sessA")
	require.NoError(t, err)
	assert.True(t, ok)

	record, err := kv.GetDetails(ctx, "cfg/lock")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "sessA", record.Session)
	assert.Equal(t, []byte("1"), record.Value)
	assert.Equal(t, uint64(1), record.LockIndex)

	// reentrant
	ok, err = locks.AcquireLock(ctx, "cfg/lock", []byte("1"), "sessA")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = locks.AcquireLock(ctx, "cfg/lock", []byte("2"), "sessB")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = locks.ReleaseLock(ctx, "cfg/lock", []byte("1"), "sessB")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = locks.ReleaseLock(ctx, "cfg/lock", []byte("1"), "sessA")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = locks.AcquireLock(ctx, "cfg/lock", []byte("2"), "sessB")
	require.NoError(t, err)
	assert.True(t, ok)

	value, loaded, err := kv.Get(ctx, "cfg/lock")
	require.NoError(t, err)
	assert.True(t, loaded)
	assert.Equal(t, []byte("2"), value)
}

func TestKVScenario_EndToEnd(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ctx := context.Background()

	kv, err := client.NewHTTPStore(
		common.ClientConfig{Address: ts.URL + "/", KVEndpoint: "v1/kv"},
		httpTransport.NewHttpClientTransport(),
		serializer.NewJSONSerializer(),
	)
	require.NoError(t, err)

	_, loaded, err := kv.Get(ctx, "app/a b")
	require.NoError(t, err)
	assert.False(t, loaded)

	ok, err := kv.Set(ctx, "app/a b", []byte("hello"))
	require.NoError(t, err)
	assert.True(t, ok)

	value, loaded, err := kv.Get(ctx, "app/a b")
	require.NoError(t, err)
	assert.True(t, loaded)
	assert.Equal(t, []byte("hello"), value)

	ok, err = kv.Delete(ctx, "app/a b")
	require.NoError(t, err)
	assert.True(t, ok)

	record, err := kv.GetDetails(ctx, "app/a b")
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestKeysWithEmptyAndDotSegments_EndToEnd(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ctx := context.Background()

	kv, err := client.NewHTTPStore(
		common.ClientConfig{Address: ts.URL, TimeoutSecond: 5},
		httpTransport.NewHttpClientTransport(),
		serializer.NewJSONSerializer(),
	)
	require.NoError(t, err)
	locks := lockmgr.NewLockManager(kv)

	ok, err := kv.Set(ctx, "a/b", []byte("old"))
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = kv.Set(ctx, "a//b", []byte("new"))
	require.NoError(t, err)
	assert.True(t, ok)

	value, loaded, err := kv.Get(ctx, "a//b")
	require.NoError(t, err)
	assert.True(t, loaded)
	assert.Equal(t, []byte("new"), value)

	value, _, err = kv.Get(ctx, "a/b")
	require.NoError(t, err)
	assert.Equal(t, []byte("old"), value)

	for _, key := range []string{"x/../a/b", "./k"} {
		ok, err = locks.AcquireLock(ctx, key, []byte("1"), "sessA")
		require.NoError(t, err, key)
		assert.True(t, ok, key)

		record, err := kv.GetDetails(ctx, key)
		require.NoError(t, err, key)
		require.NotNil(t, record, key)
		assert.Equal(t, key, record.Key)
		assert.Equal(t, "sessA", record.Session)
	}

	ok, err = kv.Delete(ctx, "a//b")
	require.NoError(t, err)
	assert.True(t, ok)

	_, loaded, err = kv.Get(ctx, "a//b")
	require.NoError(t, err)
	assert.False(t, loaded)

	// the sibling key is untouched
	_, loaded, err = kv.Get(ctx, "a/b")
	require.NoError(t, err)
	assert.True(t, loaded)
}
