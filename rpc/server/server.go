package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ValentinKolb/kvlock/lib/store"
	"github.com/ValentinKolb/kvlock/rpc/common"
	"github.com/ValentinKolb/kvlock/rpc/serializer"
	"github.com/ValentinKolb/kvlock/rpc/transport"
	"github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("server")

// NewKVServer creates a new key-value server
// It takes a config, transport, serializer and the store that backs the API as parameters
//
// Usage:
//
//	s, err := server.NewKVServer(
//		*config,
//		http.NewHttpServerTransport(),
//		serializer.NewJSONSerializer(),
//		memstore.NewMemoryStore(),
//	)
//
//	if err := s.Serve(ctx); err != nil {
//		panic(err)
//	 }
func NewKVServer(
	config common.ServerConfig,
	transport transport.IHTTPServerTransport,
	serializer serializer.IKVSerializer,
	backend store.IStore,
) (*KVServer, error) {

	if err := config.Validate(); err != nil {
		return nil, err
	}

	s := &KVServer{
		config:     config,
		transport:  transport,
		serializer: serializer,
		store:      backend,
	}

	// Register the handler once, the transport calls it for every request on the KV endpoint
	s.transport.RegisterHandler(s.handle)

	Logger.Infof("Created KV Server")
	Logger.Infof(config.String())

	return s, nil
}

// KVServer serves the key-value API of a store over a server transport
type KVServer struct {
	config     common.ServerConfig
	transport  transport.IHTTPServerTransport
	serializer serializer.IKVSerializer
	store      store.IStore
}

// Serve starts the server and blocks until ctx is done or the transport fails
func (s *KVServer) Serve(ctx context.Context) error {
	return s.transport.Listen(ctx, s.config)
}

// Handler returns the http.Handler of the server without listening.
// It is used to mount the API in an existing server or in tests.
func (s *KVServer) Handler() http.Handler {
	return s.transport.Handler(s.config)
}

// --------------------------------------------------------------------------
// Request Handling
// --------------------------------------------------------------------------

// handle dispatches a request to the store
func (s *KVServer) handle(req *transport.Request) *transport.Response {
	var resp *transport.Response

	if store.IsBlank(req.Key) {
		resp = s.errorResponse(http.StatusBadRequest, "missing key")
	} else {
		switch req.Method {
		case http.MethodGet:
			resp = s.handleGet(req)
		case http.MethodPut:
			resp = s.handlePut(req)
		case http.MethodDelete:
			resp = s.handleDelete(req)
		default:
			resp = s.errorResponse(http.StatusMethodNotAllowed, fmt.Sprintf("method %s not allowed", req.Method))
		}
	}

	metrics.GetOrCreateCounter(fmt.Sprintf(`kvlock_server_requests_total{method=%q,status="%d"}`, req.Method, resp.StatusCode)).Inc()
	return resp
}

func (s *KVServer) handleGet(req *transport.Request) *transport.Response {
	record, err := s.store.GetDetails(context.Background(), req.Key)
	if err != nil {
		return s.storeError(req, err)
	}
	if record == nil {
		return &transport.Response{StatusCode: http.StatusNotFound}
	}

	payload, err := s.serializer.EncodeRecords(record)
	if err != nil {
		return s.storeError(req, err)
	}
	return &transport.Response{StatusCode: http.StatusOK, Body: payload}
}

func (s *KVServer) handlePut(req *transport.Request) *transport.Response {
	value := req.Body
	if value == nil {
		value = []byte{}
	}

	acquire := req.Query.Has(store.LockAcquire.QueryParam())
	release := req.Query.Has(store.LockRelease.QueryParam())

	var (
		ok  bool
		err error
	)

	switch {
	case acquire && release:
		return s.errorResponse(http.StatusBadRequest, "conflicting flags: acquire and release")
	case acquire:
		ok, err = s.lock(req, value, store.LockAcquire)
	case release:
		ok, err = s.lock(req, value, store.LockRelease)
	default:
		ok, err = s.store.Set(context.Background(), req.Key, value)
	}

	if err != nil {
		return s.storeError(req, err)
	}
	return &transport.Response{StatusCode: http.StatusOK, Body: s.serializer.EncodeBool(ok)}
}

func (s *KVServer) handleDelete(req *transport.Request) *transport.Response {
	ok, err := s.store.Delete(context.Background(), req.Key)
	if err != nil {
		return s.storeError(req, err)
	}
	return &transport.Response{StatusCode: http.StatusOK, Body: s.serializer.EncodeBool(ok)}
}

// lock runs a conditional write for the session named in the query
func (s *KVServer) lock(req *transport.Request, value []byte, op store.LockOperation) (bool, error) {
	sessionID := req.Query.Get(op.QueryParam())
	ok, err := s.store.Lock(context.Background(), req.Key, value, op, sessionID)
	Logger.Debugf("%s %q by session %q => %t", op, req.Key, sessionID, ok)
	return ok, err
}

func (s *KVServer) errorResponse(status int, msg string) *transport.Response {
	return &transport.Response{StatusCode: status, Body: []byte(msg)}
}

func (s *KVServer) storeError(req *transport.Request, err error) *transport.Response {
	Logger.Errorf("%s %q failed: %v", req.Method, req.Key, err)
	return s.errorResponse(http.StatusInternalServerError, err.Error())
}
