// Package client implements the HTTP client of a Consul-compatible key-value store.
// It provides an implementation of the store.IStore interface that forwards every
// operation to a remote store through the configured transport and serializer.
// Combined with lockmgr.NewLockManager it gives session based locking against that store.
//
// The package focuses on:
//   - Building the request URLs of the key-value API
//   - Integration with the transport and serialization layers
//   - Keeping invalid input and operational failures apart
//
// Key Components:
//
//   - NewHTTPStore: Factory function that creates a client implementing the store.IStore
//     interface. The config is validated and the transport is connected once.
//
// Request Mapping:
//
//	Set        PUT    <address><kv-endpoint><key>                  true iff 2xx
//	GetDetails GET    <address><kv-endpoint><key>                  record, 404 = not found
//	Delete     DELETE <address><kv-endpoint><key>                  true iff 2xx
//	Lock       PUT    <address><kv-endpoint><key>?acquire=<s>      json bool, non-2xx = false
//	           PUT    <address><kv-endpoint><key>?release=<s>
//
// Error Handling:
//
//	Blank keys, blank sessions and nil values are answered with false / nil without a
//	request. An I/O failure of the transport is returned as *store.Error with
//	RetCTransportError. A non-success status on a read is returned as *store.Error with
//	RetCUnexpectedStatus, except 404 which means the key does not exist. On Set, Delete
//	and Lock a non-success status is reported as false.
//
// Usage Example:
//
//	config := common.ClientConfig{
//	  Address:       "http://localhost:8500",
//	  KVEndpoint:    common.DefaultKVEndpoint,
//	  TimeoutSecond: 5,
//	}
//
//	kv, err := client.NewHTTPStore(config, http.NewHttpClientTransport(), serializer.NewJSONSerializer())
//	if err != nil {
//	  // handle error
//	}
//
//	kv.Set(ctx, "mykey", []byte("myvalue"))
//	value, exists, _ := kv.Get(ctx, "mykey")
//
//	locks := lockmgr.NewLockManager(kv)
//	acquired, _ := locks.AcquireLock(ctx, "mylock", []byte("owner-info"), sessionID)
//	if acquired {
//	  locks.ReleaseLock(ctx, "mylock", []byte{}, sessionID)
//	}
//
// Thread Safety:
//
//	The store client holds no mutable state and can be used concurrently from
//	multiple goroutines as long as the transport can.
package client
