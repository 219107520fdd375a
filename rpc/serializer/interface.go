package serializer

import (
	"github.com/ValentinKolb/kvlock/lib/store"
	"github.com/ValentinKolb/kvlock/rpc/transport"
)

// IKVSerializer is the interface for the wire codec of the key-value API
type IKVSerializer interface {
	// CheckResponse returns the body of a success response.
	// It fails with a *store.Error (RetCUnexpectedStatus) if the status is not in the 2xx range.
	CheckResponse(resp *transport.Response) ([]byte, error)
	// DecodeRecord decodes a record payload. The payload may be a single object or an
	// array of objects, in which case only the first element is used.
	// An empty array or a null payload yields (nil, nil).
	DecodeRecord(payload []byte) (*store.Record, error)
	// DecodeBool decodes the bare boolean answer of a conditional write
	DecodeBool(payload []byte) (bool, error)

	// EncodeRecords encodes records as an array payload
	EncodeRecords(records ...*store.Record) ([]byte, error)
	// EncodeBool encodes the bare boolean answer of a write
	EncodeBool(b bool) []byte
}
