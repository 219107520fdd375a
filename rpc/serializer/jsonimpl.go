package serializer

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ValentinKolb/kvlock/lib/store"
	"github.com/ValentinKolb/kvlock/rpc/transport"
)

// NewJSONSerializer creates a new serializer using json encoding
func NewJSONSerializer() IKVSerializer {
	return &jsonSerializerImpl{}
}

// jsonSerializerImpl implements the IKVSerializer interface using json encoding
type jsonSerializerImpl struct {
}

// wireRecord is the json shape of a record. Value is base64 text (handled by
// encoding/json for []byte). SessionID accepts the alternative field name.
type wireRecord struct {
	Key         string `json:"Key"`
	Value       []byte `json:"Value"`
	Session     string `json:"Session,omitempty"`
	SessionID   string `json:"SessionId,omitempty"`
	Flags       uint64 `json:"Flags"`
	CreateIndex uint64 `json:"CreateIndex"`
	ModifyIndex uint64 `json:"ModifyIndex"`
	LockIndex   uint64 `json:"LockIndex"`
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.IKVSerializer)
// --------------------------------------------------------------------------

func (j jsonSerializerImpl) CheckResponse(resp *transport.Response) ([]byte, error) {
	if resp == nil {
		return nil, &store.Error{Code: store.RetCInternalError, Err: fmt.Errorf("no response")}
	}
	if !resp.IsSuccess() {
		return nil, &store.Error{
			Code: store.RetCUnexpectedStatus,
			Err:  fmt.Errorf("unexpected status %d: %s", resp.StatusCode, bytes.TrimSpace(resp.Body)),
		}
	}
	return resp.Body, nil
}

func (j jsonSerializerImpl) DecodeRecord(payload []byte) (*store.Record, error) {
	element, err := firstElement(payload)
	if err != nil || element == nil {
		return nil, err
	}

	var w wireRecord
	if err := json.Unmarshal(element, &w); err != nil {
		return nil, decodeError(err)
	}

	session := w.Session
	if session == "" {
		session = w.SessionID
	}

	return &store.Record{
		Key:         w.Key,
		Value:       w.Value,
		Session:     session,
		Flags:       w.Flags,
		CreateIndex: w.CreateIndex,
		ModifyIndex: w.ModifyIndex,
		LockIndex:   w.LockIndex,
	}, nil
}

func (j jsonSerializerImpl) DecodeBool(payload []byte) (bool, error) {
	var b bool
	if err := json.Unmarshal(bytes.TrimSpace(payload), &b); err != nil {
		return false, decodeError(err)
	}
	return b, nil
}

func (j jsonSerializerImpl) EncodeRecords(records ...*store.Record) ([]byte, error) {
	wire := make([]wireRecord, 0, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		wire = append(wire, wireRecord{
			Key:         r.Key,
			Value:       r.Value,
			Session:     r.Session,
			Flags:       r.Flags,
			CreateIndex: r.CreateIndex,
			ModifyIndex: r.ModifyIndex,
			LockIndex:   r.LockIndex,
		})
	}
	return json.Marshal(wire)
}

func (j jsonSerializerImpl) EncodeBool(b bool) []byte {
	if b {
		return []byte("true")
	}
	return []byte("false")
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// firstElement normalizes a payload to a single json object:
// if the payload is an array its first element is returned, otherwise the payload itself.
// Returns nil for null and empty arrays.
func firstElement(payload []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil, decodeError(fmt.Errorf("empty payload"))
	}
	if bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] != '[' {
		return trimmed, nil
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(trimmed, &elements); err != nil {
		return nil, decodeError(err)
	}
	if len(elements) == 0 || bytes.Equal(bytes.TrimSpace(elements[0]), []byte("null")) {
		return nil, nil
	}
	return elements[0], nil
}

func decodeError(err error) error {
	return &store.Error{Code: store.RetCDecodeError, Err: err}
}
