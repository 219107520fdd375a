package client

import (
	"context"

	"github.com/ValentinKolb/kvlock/lib/store"
	"github.com/ValentinKolb/kvlock/rpc/common"
	"github.com/ValentinKolb/kvlock/rpc/serializer"
	"github.com/ValentinKolb/kvlock/rpc/transport"
)

// NewHTTPStore creates a new store client for a key-value HTTP API
// The function takes a config, a transport and a serializer as parameters
// It returns a store.IStore and an error
func NewHTTPStore(
	config common.ClientConfig,
	transport transport.IHTTPClientTransport,
	serializer serializer.IKVSerializer,
) (store.IStore, error) {

	// Check the config
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Connect the transport
	if err := transport.Connect(config); err != nil {
		return nil, err
	}

	// Create a new HTTP store
	s := httpStore{
		httpClientAdapter{
			config:     config,
			transport:  transport,
			serializer: serializer,
		},
	}

	// Return the HTTP store
	return &s, nil
}

type httpStore struct {
	httpClientAdapter
}

// --------------------------------------------------------------------------
// Interface Methods (docu see the store package in interface.go)
// --------------------------------------------------------------------------

func (s *httpStore) Set(ctx context.Context, key string, value []byte) (bool, error) {
	// Give garbage, get garbage
	if store.IsBlank(key) || value == nil {
		return false, nil
	}

	resp, err := s.transport.Put(ctx, s.keyURL(key), value)
	if err != nil {
		return false, transportError("set", key, err)
	}
	return resp.IsSuccess(), nil
}

func (s *httpStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	record, err := s.GetDetails(ctx, key)
	if err != nil || record == nil {
		return nil, false, err
	}
	return record.Value, true, nil
}

func (s *httpStore) GetDetails(ctx context.Context, key string) (*store.Record, error) {
	// Give garbage, get garbage
	if store.IsBlank(key) {
		return nil, nil
	}

	resp, err := s.transport.Get(ctx, s.keyURL(key))
	if err != nil {
		return nil, transportError("get", key, err)
	}

	// A missing key is not an error
	if resp.IsNotFound() {
		Logger.Debugf("get %q: not found", key)
		return nil, nil
	}

	payload, err := s.serializer.CheckResponse(resp)
	if err != nil {
		return nil, withContext("get", key, err)
	}

	record, err := s.serializer.DecodeRecord(payload)
	if err != nil {
		return nil, withContext("get", key, err)
	}
	return record, nil
}

func (s *httpStore) Delete(ctx context.Context, key string) (bool, error) {
	// Give garbage, get garbage
	if store.IsBlank(key) {
		return false, nil
	}

	resp, err := s.transport.Delete(ctx, s.keyURL(key))
	if err != nil {
		return false, transportError("delete", key, err)
	}
	return resp.IsSuccess(), nil
}

func (s *httpStore) Lock(ctx context.Context, key string, value []byte, op store.LockOperation, sessionID string) (bool, error) {
	// Give garbage, get garbage
	if store.IsBlank(key) || store.IsBlank(sessionID) || value == nil {
		return false, nil
	}

	resp, err := s.transport.Put(ctx, s.lockURL(key, op, sessionID), value)
	if err != nil {
		return false, transportError(op.String(), key, err)
	}

	// The write itself failed, this is not a lost race
	if !resp.IsSuccess() {
		Logger.Warningf("%s %q: store answered status %d", op, key, resp.StatusCode)
		return false, nil
	}

	ok, err := s.serializer.DecodeBool(resp.Body)
	if err != nil {
		return false, withContext(op.String(), key, err)
	}
	return ok, nil
}
