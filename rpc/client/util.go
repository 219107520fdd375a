package client

import (
	"net/url"
	"strings"

	"github.com/ValentinKolb/kvlock/lib/store"
	"github.com/ValentinKolb/kvlock/rpc/common"
	"github.com/ValentinKolb/kvlock/rpc/serializer"
	"github.com/ValentinKolb/kvlock/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
)

var (
	Logger = logger.GetLogger("rpc")
)

// httpClientAdapter is a struct that stores all data needed to talk to the key-value API
type httpClientAdapter struct {
	config     common.ClientConfig
	transport  transport.IHTTPClientTransport
	serializer serializer.IKVSerializer
}

// keyURL builds <address><kv-endpoint><key>. Every path segment of the key is escaped,
// the slashes between segments are kept.
func (a *httpClientAdapter) keyURL(key string) string {
	segments := strings.Split(key, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return a.config.Address + a.config.KVEndpoint + strings.Join(segments, "/")
}

// lockURL builds <address><kv-endpoint><key>?<acquire|release>=<sessionID>
func (a *httpClientAdapter) lockURL(key string, op store.LockOperation, sessionID string) string {
	return a.keyURL(key) + "?" + op.QueryParam() + "=" + url.QueryEscape(sessionID)
}

// transportError wraps an I/O failure of the transport as client-level error
func transportError(op, key string, err error) error {
	return store.NewError(store.RetCTransportError, op, key, err)
}

// withContext fills in operation and key of a *store.Error created by the serializer
func withContext(op, key string, err error) error {
	if storeErr, ok := err.(*store.Error); ok && storeErr.Op == "" {
		storeErr.Op = op
		storeErr.Key = key
	}
	return err
}
